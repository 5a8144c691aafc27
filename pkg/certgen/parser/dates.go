package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// builtInDateFormats lists the built-in number format ids that render a date.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true,
	32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true,
	55: true, 56: true, 57: true, 58: true,
}

// dateDetector decodes serial date values of cells styled with a date format.
type dateDetector struct {
	f         *excelize.File
	sheetName string
	date1904  bool
	styles    map[int]bool
}

func newDateDetector(f *excelize.File, sheetName string) *dateDetector {
	d := &dateDetector{
		f:         f,
		sheetName: sheetName,
		styles:    make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// decode returns the time held by cellName when it is date formatted and its
// raw value is a serial number.
func (d *dateDetector) decode(cellName, raw string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false
	}

	styleID, err := d.f.GetCellStyle(d.sheetName, cellName)
	if err != nil || styleID == 0 {
		return time.Time{}, false
	}
	if !d.isDateStyle(styleID) {
		return time.Time{}, false
	}

	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d *dateDetector) isDateStyle(styleID int) bool {
	if known, ok := d.styles[styleID]; ok {
		return known
	}

	isDate := false
	if style, err := d.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = IsDateFormat(*style.CustomNumFmt)
		} else {
			isDate = builtInDateFormats[style.NumFmt]
		}
	}

	d.styles[styleID] = isDate
	return isDate
}

// IsDateFormat reports whether a custom number format code renders a date.
// Quoted literals, escaped characters and bracketed sections are ignored.
func IsDateFormat(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false

	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			b.WriteByte(c)
		}
	}

	stripped := strings.ToLower(b.String())
	return strings.ContainsAny(stripped, "yd")
}
