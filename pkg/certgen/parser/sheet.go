// Package parser reads recipient rows from Excel workbooks.
package parser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// ReadRows reads the named sheet of the workbook at path. An empty sheet name
// selects the first sheet. The first non-empty row is the header.
func ReadRows(path, sheet string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	return ExtractTable(f, sheet)
}

// ExtractTable extracts the header and data rows of a sheet.
func ExtractTable(f *excelize.File, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	table := &models.Table{SheetName: sheetName}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return table, nil
	}

	table.Columns = headerNames(rows[minRow], minCol, maxCol)

	dates := newDateDetector(f, sheetName)
	index := 0
	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		row := rows[rowIdx]
		cells := make(map[string]models.Cell, len(table.Columns))
		hasData := false

		for colIdx := minCol; colIdx <= maxCol; colIdx++ {
			column := table.Columns[colIdx-minCol]
			text := cellAt(row, colIdx)
			cell := models.Cell{Text: text}
			if text != "" {
				hasData = true
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if t, ok := dates.decode(cellName, cellAt(rowAt(raw, rowIdx), colIdx)); ok {
					cell.Date = &t
				}
			}
			cells[column] = cell
		}

		if !hasData {
			continue
		}
		table.Rows = append(table.Rows, models.Row{Index: index, Cells: cells})
		index++
	}

	return table, nil
}

// headerNames returns the header row within the column bounds.
// Blank headers are named after their zero-based position. Repeated headers
// get a numeric suffix, so "Name", "Name" becomes "Name", "Name.1".
func headerNames(header []string, minCol, maxCol int) []string {
	names := make([]string, 0, maxCol-minCol+1)
	used := make(map[string]bool, maxCol-minCol+1)
	suffix := make(map[string]int)
	for colIdx := minCol; colIdx <= maxCol; colIdx++ {
		name := cellAt(header, colIdx)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(colIdx-minCol)
		}
		unique := name
		for used[unique] {
			suffix[name]++
			unique = name + "." + strconv.Itoa(suffix[name])
		}
		used[unique] = true
		names = append(names, unique)
	}
	return names
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

func rowAt(rows [][]string, idx int) []string {
	if idx < len(rows) {
		return rows[idx]
	}
	return nil
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
