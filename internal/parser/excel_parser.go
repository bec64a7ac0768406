package parser

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// parseExcelFile reads the first sheet of an xlsx/xlsm workbook, treating the
// first row as the header row, and applies the same column resolution rules
// as the delimited reader. Some potentiostat export tools only emit Excel.
func parseExcelFile(path string) (*CVSeries, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FileParseError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &FileParseError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &FileParseError{Path: path, Err: errors.New("no header row found")}
	}
	return resolveSeries(path, rows[0], rows[1:])
}
