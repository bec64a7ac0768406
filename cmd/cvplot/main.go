// Package main provides a headless CLI for rendering CV plots without the GUI.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/analysis"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/report"
)

var (
	outputPath string
	pdfPath    string
	title      string
	xLabel     string
	yLabel     string
	smooth     bool
	threshold  float64
	labels     []string
	areas      []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cvplot [data files...]",
		Short: "Plot cyclic voltammetry data files",
		Long: `cvplot loads CV data files (CSV, TXT, or Excel), resolves the voltage and
current columns from the headers, optionally removes voltage-jump artifacts,
and renders a comparative plot to PNG and/or PDF.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "cv_plot.png", "Output PNG path")
	rootCmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write a PDF report to this path")
	rootCmd.Flags().StringVar(&title, "title", "", "Plot title")
	rootCmd.Flags().StringVar(&xLabel, "x-label", "", "X axis label")
	rootCmd.Flags().StringVar(&yLabel, "y-label", "", "Y axis label")
	rootCmd.Flags().BoolVar(&smooth, "smooth", false, "Remove voltage jumps before plotting")
	rootCmd.Flags().Float64Var(&threshold, "threshold", 2, "Jump filter threshold multiplier")
	rootCmd.Flags().StringArrayVar(&labels, "label", nil, "Legend label, repeatable, aligned with the file arguments")
	rootCmd.Flags().StringArrayVar(&areas, "area", nil, "Electrode area in cm2, repeatable, aligned with the file arguments")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log.SetFlags(0)

	curves := make([]analysis.Curve, 0, len(args))
	for i, path := range args {
		curve, err := buildCurve(path, optAt(labels, i), optAt(areas, i))
		if err != nil {
			// One bad file should not sink the batch.
			log.Printf("Error processing %s: %v", path, err)
			continue
		}
		curves = append(curves, *curve)
	}
	if len(curves) == 0 {
		return fmt.Errorf("no files could be plotted")
	}

	opts := report.PlotOptions{Title: title, XLabel: xLabel, YLabel: yLabel}
	png, err := report.CreateCVPlot(curves, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, png, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	log.Printf("Wrote %s (%d curves)", outputPath, len(curves))

	if pdfPath != "" {
		if err := report.ExportPDF(pdfPath, png, curves, opts); err != nil {
			return err
		}
		log.Printf("Wrote %s", pdfPath)
	}
	return nil
}

func buildCurve(path, label, area string) (*analysis.Curve, error) {
	series, err := parser.ParseDataFile(path)
	if err != nil {
		return nil, err
	}
	for _, w := range series.Warnings {
		log.Printf("%s: %s", path, w)
	}

	if smooth {
		before := series.Len()
		series = analysis.RemoveVoltageJumps(series, threshold)
		if removed := before - series.Len(); removed > 0 {
			log.Printf("%s: removed %d voltage jump(s)", path, removed)
		}
	}

	curve, err := analysis.BuildCurve(path, series, analysis.CurveOptions{Label: label, Area: area})
	if err != nil {
		var areaErr *analysis.InvalidAreaError
		if errors.As(err, &areaErr) {
			log.Printf("Warning: %v", areaErr)
			return curve, nil
		}
		return nil, err
	}
	return curve, nil
}

func optAt(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}
