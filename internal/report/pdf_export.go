package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/analysis"
)

const (
	inchToMm        = 25.4
	pdfPageWidth    = 11 * inchToMm // Letter landscape
	pdfPageHeight   = 8.5 * inchToMm
	pdfMargin       = 0.5 * inchToMm
	pdfContentWidth = pdfPageWidth - (2 * pdfMargin)
	pdfLineHeight   = 6.0
	pdfPlotAspect   = 600.0 / 800.0 // matches CreateCVPlot render size
)

// pdfStyler holds reusable styling and Y-position state for the report.
type pdfStyler struct {
	pdf      *gofpdf.Fpdf
	styles   map[string]func()
	currentY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:      pdf,
		styles:   make(map[string]func()),
		currentY: pdfMargin,
	}
	s.styles["h1"] = func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["small"] = func() {
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
	}
	s.styles["tableHeader"] = func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > pdfPageHeight-pdfMargin {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) writeLine(text, style, align string) {
	s.applyStyle(style)
	s.checkAddPage(pdfLineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, pdfLineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addImage(imageBytes []byte, name string, width, height float64) {
	s.pdf.RegisterImageReader(name, "PNG", bytes.NewReader(imageBytes))
	s.checkAddPage(height)
	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(name, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height + 2
}

// ExportPDF writes a one-plot report: title, the rendered plot, and a table
// of per-curve metadata (label, source file, sample count, area).
func ExportPDF(path string, plotPNG []byte, curves []analysis.Curve, opts PlotOptions) error {
	if len(plotPNG) == 0 {
		return fmt.Errorf("no rendered plot to export")
	}
	opts = opts.withDefaults()

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.AddPage()
	s := newPDFStyler(pdf)

	s.writeLine(opts.Title, "h1", "C")
	s.writeLine(fmt.Sprintf("Generated %s - %d curve(s)", time.Now().Format("2006-01-02 15:04"), len(curves)), "small", "C")

	imgWidth := pdfContentWidth * 0.75
	s.addImage(plotPNG, "cv_plot", imgWidth, imgWidth*pdfPlotAspect)

	colWidths := []float64{70, 110, 25, 30}
	headers := []string{"Label", "Source File", "Points", "Area (cm2)"}

	s.checkAddPage(pdfLineHeight * float64(len(curves)+1))
	s.applyStyle("tableHeader")
	s.pdf.SetXY(pdfMargin, s.currentY)
	for i, h := range headers {
		s.pdf.CellFormat(colWidths[i], pdfLineHeight, h, "1", 0, "C", true, 0, "")
	}
	s.currentY += pdfLineHeight

	s.applyStyle("tableCell")
	for _, c := range curves {
		s.checkAddPage(pdfLineHeight)
		s.pdf.SetXY(pdfMargin, s.currentY)
		area := "-"
		if c.IsDensity {
			area = fmt.Sprintf("%.3g", c.AreaCm2)
		}
		cells := []string{c.Label, filepath.Base(c.Source), fmt.Sprintf("%d", len(c.Voltage)), area}
		for i, cell := range cells {
			s.pdf.CellFormat(colWidths[i], pdfLineHeight, cell, "1", 0, "L", false, 0, "")
		}
		s.currentY += pdfLineHeight
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return nil
}
