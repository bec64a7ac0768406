package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/analysis"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testCurves() []analysis.Curve {
	return []analysis.Curve{
		{
			Label:   "sample1.csv",
			Source:  "/data/sample1.csv",
			Voltage: []float64{0.0, 0.1, 0.2, 0.3},
			Y:       []float64{-1, -2, -1.5, -0.5},
		},
		{
			Label:     "sample2.csv (density)",
			Source:    "/data/sample2.csv",
			Voltage:   []float64{0.0, 0.1, 0.2, 0.3},
			Y:         []float64{-0.4, -0.9, -0.7, -0.2},
			IsDensity: true,
			AreaCm2:   2,
		},
	}
}

func TestCreateCVPlotProducesPNG(t *testing.T) {
	png, err := CreateCVPlot(testCurves(), PlotOptions{})
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:4])
}

func TestCreateCVPlotNoCurves(t *testing.T) {
	_, err := CreateCVPlot(nil, PlotOptions{Title: "empty"})
	assert.Error(t, err)
}

func TestCreateCVPlotSkipsNaNSamples(t *testing.T) {
	curves := testCurves()
	curves[0].Voltage[1] = math.NaN()
	curves[1].Y[2] = math.NaN()

	png, err := CreateCVPlot(curves, PlotOptions{Title: "with gaps"})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestCreatePreviewPlot(t *testing.T) {
	original := &parser.CVSeries{
		Voltage: []float64{0.0, 0.1, 0.2, 5.0},
		Current: []float64{0.001, 0.002, 0.003, 0.004},
	}
	filtered := analysis.RemoveVoltageJumps(original, 2)

	png, err := CreatePreviewPlot(original, filtered, "/data/sample1.csv")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestExportPDF(t *testing.T) {
	curves := testCurves()
	png, err := CreateCVPlot(curves, PlotOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, ExportPDF(path, png, curves, PlotOptions{Title: "Batch 7"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportPDFRequiresRenderedPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	assert.Error(t, ExportPDF(path, nil, testCurves(), PlotOptions{}))
}
