package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CleanColumnName normalizes a header label for role matching: lower-case,
// then strip every character outside [a-z0-9]. "Potential (V)", "potential_v"
// and "POTENTIAL-V" all normalize to "potentialv".
func CleanColumnName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDataFile reads a delimited text or Excel data file and pulls out the
// voltage and current columns using generalizable header attributes.
// Exports differ wildly between instruments ("Potential/V", "E (V)",
// "WE(1).Current (A)", ...), so columns are matched by normalized substring
// rather than a fixed schema.
func ParseDataFile(path string) (*CVSeries, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return parseExcelFile(path)
	default:
		return parseDelimitedFile(path)
	}
}

// sniffDelimiter picks the field delimiter from the first line only:
// comma wins over tab, anything else falls back to whitespace splitting
// (returned as 0). Subsequent lines are never examined.
func sniffDelimiter(firstLine string) rune {
	if strings.Contains(firstLine, ",") {
		return ','
	}
	if strings.Contains(firstLine, "\t") {
		return '\t'
	}
	return 0
}

func parseDelimitedFile(path string) (*CVSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileParseError{Path: path, Err: err}
	}

	firstLine := string(data)
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = string(data[:idx])
	}
	delim := sniffDelimiter(firstLine)

	var records [][]string
	if delim != 0 {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.TrimLeadingSpace = true
		reader.FieldsPerRecord = -1 // data rows may be ragged
		records, err = reader.ReadAll()
		if err != nil {
			return nil, &FileParseError{Path: path, Err: err}
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			records = append(records, fields)
		}
		if err := scanner.Err(); err != nil {
			return nil, &FileParseError{Path: path, Err: err}
		}
	}

	if len(records) == 0 {
		return nil, &FileParseError{Path: path, Err: errors.New("no header row found")}
	}
	return resolveSeries(path, records[0], records[1:])
}

// resolveSeries maps the header row to the voltage/current roles and extracts
// the two columns positionally. Both role scans take the first (left-most)
// matching column independently, so a single header can satisfy both roles.
func resolveSeries(path string, headers []string, rows [][]string) (*CVSeries, error) {
	voltageIdx := -1
	currentIdx := -1
	for i, h := range headers {
		cleaned := CleanColumnName(h)
		if voltageIdx < 0 && (strings.Contains(cleaned, "potent") || strings.Contains(cleaned, "volt")) {
			voltageIdx = i
		}
		if currentIdx < 0 && strings.Contains(cleaned, "curr") {
			currentIdx = i
		}
	}

	if voltageIdx < 0 || currentIdx < 0 {
		return nil, &ColumnNotFoundError{Path: path, Headers: headers}
	}

	series := &CVSeries{
		Voltage: make([]float64, 0, len(rows)),
		Current: make([]float64, 0, len(rows)),
		Headers: headers,
	}
	for rowNum, row := range rows {
		if len(row) == 0 {
			continue
		}
		series.Voltage = append(series.Voltage, parseCell(series, row, voltageIdx, headers[voltageIdx], rowNum))
		series.Current = append(series.Current, parseCell(series, row, currentIdx, headers[currentIdx], rowNum))
	}
	return series, nil
}

// parseCell converts one field to float64, falling back to NaN with a
// collected warning on short rows or non-numeric content.
func parseCell(series *CVSeries, row []string, idx int, header string, rowNum int) float64 {
	if idx >= len(row) {
		series.Warnings = append(series.Warnings,
			fmt.Sprintf("Warning: data row %d has no value for column '%s'. Using NaN.", rowNum+1, header))
		return math.NaN()
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		series.Warnings = append(series.Warnings,
			fmt.Sprintf("Warning: data row %d, column '%s' - could not convert '%s'. Using NaN.", rowNum+1, header, row[idx]))
		return math.NaN()
	}
	return val
}
