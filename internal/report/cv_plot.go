package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/analysis"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default axis text, matching what the GUI pre-fills.
const (
	DefaultTitle  = "Cyclic Voltammograms"
	DefaultXLabel = "Voltage (V)"
	DefaultYLabel = "Current (mA) / Current Density (mA/cm2)"
)

// PlotOptions carries the user-editable plot text.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
}

func (o PlotOptions) withDefaults() PlotOptions {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.XLabel == "" {
		o.XLabel = DefaultXLabel
	}
	if o.YLabel == "" {
		o.YLabel = DefaultYLabel
	}
	return o
}

var plotColors = []color.Color{
	color.RGBA{R: 220, G: 50, B: 47, A: 255},   // Red
	color.RGBA{R: 38, G: 139, B: 210, A: 255},  // Blue
	color.RGBA{R: 133, G: 153, B: 0, A: 255},   // Green
	color.RGBA{R: 203, G: 75, B: 22, A: 255},   // Orange
	color.RGBA{R: 108, G: 113, B: 196, A: 255}, // Violet
	color.RGBA{R: 42, G: 161, B: 152, A: 255},  // Teal
	color.RGBA{R: 211, G: 54, B: 130, A: 255},  // Magenta
}

// CreateCVPlot renders the curves into a single PNG. The X axis is inverted,
// following the electrochemistry convention of sweeping from high to low
// potential left to right.
func CreateCVPlot(curves []analysis.Curve, opts PlotOptions) ([]byte, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("no curves to plot")
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	for i, curve := range curves {
		line, err := plotter.NewLine(curvePoints(curve.Voltage, curve.Y))
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %v", curve.Label, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(curve.Label, line)
	}

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	return renderPNG(p, vg.Points(800), vg.Points(600))
}

// CreatePreviewPlot overlays one file's raw trace with its jump-filtered
// version so the threshold multiplier can be tuned before plotting the batch.
func CreatePreviewPlot(original, filtered *parser.CVSeries, sourcePath string) ([]byte, error) {
	// BuildCurve only fails on a non-empty area string; none is passed here.
	origCurve, _ := analysis.BuildCurve(sourcePath, original, analysis.CurveOptions{Label: "Original"})
	filtCurve, _ := analysis.BuildCurve(sourcePath, filtered, analysis.CurveOptions{Label: "Filtered"})

	p := plot.New()
	p.Title.Text = "Smoothing Preview"
	p.X.Label.Text = "Voltage (V)"
	p.Y.Label.Text = "Current (mA)"
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	origLine, err := plotter.NewLine(curvePoints(origCurve.Voltage, origCurve.Y))
	if err != nil {
		return nil, fmt.Errorf("failed to create original line: %v", err)
	}
	origLine.Color = color.Gray{Y: 150}
	origLine.LineStyle.Width = vg.Points(1)
	p.Add(origLine)
	p.Legend.Add("Original", origLine)

	filtLine, err := plotter.NewLine(curvePoints(filtCurve.Voltage, filtCurve.Y))
	if err != nil {
		return nil, fmt.Errorf("failed to create filtered line: %v", err)
	}
	filtLine.Color = plotColors[1]
	filtLine.LineStyle.Width = vg.Points(2)
	p.Add(filtLine)
	p.Legend.Add("Filtered", filtLine)

	p.Legend.Top = true

	return renderPNG(p, vg.Points(600), vg.Points(400))
}

// curvePoints drops NaN samples; gonum's range calculation cannot place them.
func curvePoints(voltage, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(voltage))
	for i := range voltage {
		if math.IsNaN(voltage[i]) || math.IsNaN(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: voltage[i], Y: y[i]})
	}
	return pts
}

func renderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
