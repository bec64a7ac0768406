package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"
)

func TestBuildCurveConvertsToMilliamps(t *testing.T) {
	series := &parser.CVSeries{
		Voltage: []float64{0.5, 0.6},
		Current: []float64{0.001, -0.002},
	}

	curve, err := BuildCurve("/data/sample1.csv", series, CurveOptions{})
	require.NoError(t, err)

	assert.Equal(t, []float64{-1, 2}, curve.Y)
	assert.Equal(t, []float64{0.5, 0.6}, curve.Voltage)
	assert.False(t, curve.IsDensity)
	// Label falls back to the file's base name.
	assert.Equal(t, "sample1.csv", curve.Label)
	// The input series is left untouched.
	assert.Equal(t, []float64{0.001, -0.002}, series.Current)
}

func TestBuildCurveAreaNormalization(t *testing.T) {
	series := &parser.CVSeries{
		Voltage: []float64{0.5},
		Current: []float64{0.004},
	}

	curve, err := BuildCurve("/data/sample1.csv", series, CurveOptions{Label: "electrode A", Area: "2"})
	require.NoError(t, err)

	assert.Equal(t, []float64{-2}, curve.Y) // 0.004 A -> -4 mA / 2 cm2
	assert.True(t, curve.IsDensity)
	assert.Equal(t, 2.0, curve.AreaCm2)
	assert.Equal(t, "electrode A (density)", curve.Label)
}

func TestBuildCurveInvalidAreaFallsBackToRawCurrent(t *testing.T) {
	series := &parser.CVSeries{
		Voltage: []float64{0.5},
		Current: []float64{0.001},
	}

	curve, err := BuildCurve("/data/sample1.csv", series, CurveOptions{Label: "electrode A", Area: "abc"})

	var areaErr *InvalidAreaError
	require.True(t, errors.As(err, &areaErr))
	assert.Equal(t, "abc", areaErr.Area)
	assert.Contains(t, areaErr.Error(), "raw current")

	// The curve is still usable: raw mA, no density suffix.
	require.NotNil(t, curve)
	assert.Equal(t, []float64{-1}, curve.Y)
	assert.False(t, curve.IsDensity)
	assert.Equal(t, "electrode A", curve.Label)
}

func TestBuildCurveBlankAreaIsNotAnError(t *testing.T) {
	series := &parser.CVSeries{
		Voltage: []float64{0.5},
		Current: []float64{0.001},
	}

	curve, err := BuildCurve("/data/sample1.csv", series, CurveOptions{Area: "   "})
	require.NoError(t, err)
	assert.False(t, curve.IsDensity)
}
