// Package importer turns input files into pieces for the packer. Manifests
// (CSV and Excel) list pieces by size and optional image path; image files
// and directories are decoded directly. Header detection is case-insensitive
// and tolerant of common column aliases and delimiters.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/FlagRing/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Row-level problems
// are collected rather than aborting the whole import.
type ImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Quantity int
	File     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "flag", "country", "title", "description", "item"},
	"width":    {"width", "w", "x", "cols"},
	"height":   {"height", "h", "y", "rows"},
	"quantity": {"quantity", "qty", "count", "copies", "pcs"},
	"file":     {"file", "path", "image", "source", "filename", "src"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries comma,
// semicolon, tab and pipe; the one producing the most consistent multi-column
// rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It returns
// a positional mapping (label, width, height, quantity, file) and false when
// no known header name is present.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Quantity: -1, File: -1}
	slots := map[string]*int{
		"label":    &mapping.Label,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"quantity": &mapping.Quantity,
		"file":     &mapping.File,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3, File: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a trimmed cell value. Out of range yields "".
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDimension parses an optional size cell. An empty cell is allowed only
// when the row names an image file, whose bounds then supply the size.
func parseDimension(cell, name, rowLabel string, hasFile bool) (float64, string) {
	if cell == "" {
		if hasFile {
			return 0, ""
		}
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, cell)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(name[:1])+name[1:])
	}
	return v, ""
}

// parseRow extracts the pieces described by one row. A quantity above one
// expands into numbered copies sharing the same image.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) ([]model.Piece, string, string) {
	file := getCell(row, mapping.File)
	hasFile := file != ""

	label := getCell(row, mapping.Label)
	if label == "" && hasFile {
		label = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	if label == "" {
		label = fmt.Sprintf("Flag %d", pieceCount+1)
	}

	width, errMsg := parseDimension(getCell(row, mapping.Width), "width", rowLabel, hasFile)
	if errMsg != "" {
		return nil, errMsg, ""
	}
	height, errMsg := parseDimension(getCell(row, mapping.Height), "height", rowLabel, hasFile)
	if errMsg != "" {
		return nil, errMsg, ""
	}

	var warning string
	if (width == 0) != (height == 0) {
		warning = fmt.Sprintf("%s: Only one dimension given, both will be taken from the image", rowLabel)
		width, height = 0, 0
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		if n <= 0 {
			return nil, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
		}
		qty = n
	}

	pieces := make([]model.Piece, 0, qty)
	for i := 0; i < qty; i++ {
		name := label
		if qty > 1 {
			name = fmt.Sprintf("%s #%d", label, i+1)
		}
		p := model.NewPiece(name, width, height)
		p.Source = file
		pieces = append(pieces, p)
	}
	return pieces, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// resolveSources makes relative image paths relative to the manifest location.
func resolveSources(pieces []model.Piece, baseDir string) {
	for i := range pieces {
		src := pieces[i].Source
		if src != "" && !filepath.IsAbs(src) {
			pieces[i].Source = filepath.Join(baseDir, src)
		}
	}
}

// ImportCSV imports pieces from a CSV manifest. The delimiter is detected
// automatically and image paths are resolved against the manifest directory.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	result = importFromRows(records, "Line", warnings)
	resolveSources(result.Pieces, filepath.Dir(path))
	return result
}

// ImportCSVFromReader imports pieces from a CSV reader with a known delimiter.
// Image paths are returned as written.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports pieces from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	result = importFromRows(rows, "Row", nil)
	resolveSources(result.Pieces, filepath.Dir(path))
	return result
}

// ImportManifest dispatches on the file extension.
func ImportManifest(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported manifest format %q", filepath.Ext(path))}}
	}
}

// importFromRows is the shared logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Size columns may be left out only when every row names its image
		if mapping.File == -1 {
			var missing []string
			if mapping.Width == -1 {
				missing = append(missing, "Width")
			}
			if mapping.Height == -1 {
				missing = append(missing, "Height")
			}
			if len(missing) > 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
				return result
			}
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep the positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pieces, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Pieces))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Pieces = append(result.Pieces, pieces...)
	}

	return result
}
