package models

import "time"

// Cell is a single spreadsheet value.
type Cell struct {
	// Text is the value as displayed by the spreadsheet.
	Text string
	// Date is set when the cell is formatted as a date.
	Date *time.Time
}

// Empty reports whether the cell holds no value.
func (c Cell) Empty() bool {
	return c.Text == "" && c.Date == nil
}

// Row is one recipient record.
type Row struct {
	// Index is the zero-based position among data rows.
	Index int
	// Cells maps column header to cell.
	Cells map[string]Cell
}

// Lookup returns the cell under column and whether the column exists.
func (r Row) Lookup(column string) (Cell, bool) {
	c, ok := r.Cells[column]
	return c, ok
}

// Table is the data read from a spreadsheet sheet.
type Table struct {
	// SheetName is the sheet the rows were read from.
	SheetName string
	// Columns lists header names in sheet order.
	Columns []string
	// Rows contains data rows in sheet order.
	Rows []Row
}
