package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/analysis"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/report"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx context.Context
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, "CV Multi-File Plotter")
}

// FileRequest carries one file's path plus its per-file user inputs.
// Label and area are plain request parameters; the frontend owns the form
// state and sends the whole batch on every plot action.
type FileRequest struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Area  string `json:"area"`
}

// PlotRequest is the full plotting request sent from the frontend.
type PlotRequest struct {
	Files               []FileRequest `json:"files"`
	Title               string        `json:"title"`
	XLabel              string        `json:"xLabel"`
	YLabel              string        `json:"yLabel"`
	Smooth              bool          `json:"smooth"`
	ThresholdMultiplier float64       `json:"thresholdMultiplier"`
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	log.Println(message)
}

func (a *App) clearLog() {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "clearLog")
	}
}

// SelectDataFiles opens a multi-file picker and returns the chosen paths.
func (a *App) SelectDataFiles() ([]string, error) {
	paths, err := runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select CV data files",
		Filters: []runtime.FileFilter{
			{DisplayName: "CV Data Files (*.csv;*.txt;*.xlsx)", Pattern: "*.csv;*.txt;*.xlsx;*.xlsm"},
			{DisplayName: "All Files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("file dialog failed: %w", err)
	}
	return paths, nil
}

// buildCurves runs the full per-file pipeline: parse, optional jump filter,
// curve conversion. One file's failure is reported and skipped; the rest of
// the batch still plots.
func (a *App) buildCurves(req PlotRequest) []analysis.Curve {
	curves := make([]analysis.Curve, 0, len(req.Files))
	for _, fr := range req.Files {
		series, err := parser.ParseDataFile(fr.Path)
		if err != nil {
			a.sendStatus(fmt.Sprintf("Error processing %s: %v", fr.Path, err))
			continue
		}
		for _, w := range series.Warnings {
			a.sendStatus(fmt.Sprintf("%s: %s", filepath.Base(fr.Path), w))
		}

		if req.Smooth {
			before := series.Len()
			series = analysis.RemoveVoltageJumps(series, req.ThresholdMultiplier)
			if removed := before - series.Len(); removed > 0 {
				a.sendStatus(fmt.Sprintf("%s: removed %d voltage jump(s).", filepath.Base(fr.Path), removed))
			}
		}

		curve, err := analysis.BuildCurve(fr.Path, series, analysis.CurveOptions{Label: fr.Label, Area: fr.Area})
		if err != nil {
			var areaErr *analysis.InvalidAreaError
			if errors.As(err, &areaErr) {
				// Fall back to the raw-current curve BuildCurve already returned.
				a.sendStatus(fmt.Sprintf("Warning: %v", areaErr))
			} else {
				a.sendStatus(fmt.Sprintf("Error processing %s: %v", fr.Path, err))
				continue
			}
		}
		curves = append(curves, *curve)
	}
	return curves
}

// PlotCVs renders the requested files into one comparative plot and returns
// it as a data URI for the frontend <img> element.
func (a *App) PlotCVs(req PlotRequest) (string, error) {
	a.clearLog()
	if len(req.Files) == 0 {
		return "", fmt.Errorf("please add at least one file")
	}

	curves := a.buildCurves(req)
	if len(curves) == 0 {
		return "", fmt.Errorf("no files could be plotted")
	}

	png, err := report.CreateCVPlot(curves, report.PlotOptions{
		Title:  req.Title,
		XLabel: req.XLabel,
		YLabel: req.YLabel,
	})
	if err != nil {
		return "", fmt.Errorf("plot rendering failed: %w", err)
	}
	a.sendStatus(fmt.Sprintf("Plotted %d of %d file(s).", len(curves), len(req.Files)))
	return pngDataURI(png), nil
}

// PreviewSmoothing renders one file's raw trace against its jump-filtered
// version so the threshold multiplier can be tuned before a batch plot.
func (a *App) PreviewSmoothing(path string, thresholdMultiplier float64) (string, error) {
	series, err := parser.ParseDataFile(path)
	if err != nil {
		return "", fmt.Errorf("could not generate preview: %w", err)
	}
	filtered := analysis.RemoveVoltageJumps(series, thresholdMultiplier)
	a.sendStatus(fmt.Sprintf("Preview %s: %d of %d sample(s) retained.", filepath.Base(path), filtered.Len(), series.Len()))

	png, err := report.CreatePreviewPlot(series, filtered, path)
	if err != nil {
		return "", fmt.Errorf("preview rendering failed: %w", err)
	}
	return pngDataURI(png), nil
}

// SavePlotPDF renders the request like PlotCVs and writes a PDF report to a
// user-chosen location. Returns the chosen path, or "" when cancelled.
func (a *App) SavePlotPDF(req PlotRequest) (string, error) {
	a.clearLog()
	if len(req.Files) == 0 {
		return "", fmt.Errorf("please add at least one file")
	}

	curves := a.buildCurves(req)
	if len(curves) == 0 {
		return "", fmt.Errorf("no files could be plotted")
	}

	opts := report.PlotOptions{Title: req.Title, XLabel: req.XLabel, YLabel: req.YLabel}
	png, err := report.CreateCVPlot(curves, opts)
	if err != nil {
		return "", fmt.Errorf("plot rendering failed: %w", err)
	}

	pdfPath, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save plot as PDF",
		DefaultFilename: "cv_plot.pdf",
		Filters: []runtime.FileFilter{
			{DisplayName: "PDF Files (*.pdf)", Pattern: "*.pdf"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("file dialog failed: %w", err)
	}
	if pdfPath == "" { // user cancelled
		return "", nil
	}

	if err := report.ExportPDF(pdfPath, png, curves, opts); err != nil {
		return "", err
	}
	a.sendStatus(fmt.Sprintf("PDF report saved: %s", pdfPath))
	return pdfPath, nil
}

func pngDataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
