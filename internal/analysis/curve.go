package analysis

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"
)

// currentToMilliamps converts the instrument's exported current (A) to mA.
// The sign flip follows the lab's potentiostat convention so reduction
// currents plot upward.
const currentToMilliamps = -1000.0

// Curve is one plottable trace built from a resolved series.
type Curve struct {
	Label     string
	Source    string // source file path
	Voltage   []float64
	Y         []float64 // mA, or mA/cm2 when normalized by area
	IsDensity bool
	AreaCm2   float64 // 0 when not normalized
}

// CurveOptions carries the per-file user inputs.
type CurveOptions struct {
	Label string // legend label; the file's base name when empty
	Area  string // electrode area in cm2; empty plots raw current
}

// InvalidAreaError reports a non-numeric area entry. The curve it accompanies
// falls back to raw current, so callers warn and keep going.
type InvalidAreaError struct {
	Path string
	Area string
}

func (e *InvalidAreaError) Error() string {
	return fmt.Sprintf("invalid area %q for %s. Plotting raw current instead.", e.Area, e.Path)
}

// BuildCurve converts a resolved series into a plottable curve: current is
// scaled to mA and, when a numeric area is supplied, divided by it to give
// current density with a "(density)" legend suffix. A non-numeric area
// returns the raw-current curve together with an *InvalidAreaError.
func BuildCurve(path string, series *parser.CVSeries, opts CurveOptions) (*Curve, error) {
	label := strings.TrimSpace(opts.Label)
	if label == "" {
		label = filepath.Base(path)
	}

	y := make([]float64, series.Len())
	for i, c := range series.Current {
		y[i] = c * currentToMilliamps
	}
	curve := &Curve{
		Label:   label,
		Source:  path,
		Voltage: append([]float64(nil), series.Voltage...),
		Y:       y,
	}

	areaStr := strings.TrimSpace(opts.Area)
	if areaStr == "" {
		return curve, nil
	}
	area, err := strconv.ParseFloat(areaStr, 64)
	if err != nil {
		return curve, &InvalidAreaError{Path: path, Area: areaStr}
	}
	for i := range curve.Y {
		curve.Y[i] /= area
	}
	curve.IsDensity = true
	curve.AreaCm2 = area
	curve.Label = label + " (density)"
	return curve, nil
}
