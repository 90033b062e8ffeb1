package spreadsheet

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet holds the typed cell values of one worksheet
type Sheet struct {
	Name string
	Rows [][]CellValue
}

// Header returns the first row rendered as strings
func (s *Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	header := make([]string, len(s.Rows[0]))
	for i, cell := range s.Rows[0] {
		header[i] = cell.String()
	}
	return header
}

// IsBlankRow reports whether every cell in the row is empty
func IsBlankRow(row []CellValue) bool {
	for _, cell := range row {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}

// ReadActiveSheet opens a workbook and reads its active worksheet
func ReadActiveSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return nil, errors.New("workbook has no active sheet")
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	reader := &cellReader{f: f, sheet: name, date1904: date1904, dateStyles: map[int]bool{}}
	sheet := &Sheet{Name: name, Rows: make([][]CellValue, len(raw))}
	for i, values := range raw {
		row := make([]CellValue, len(values))
		for j, value := range values {
			cell, err := reader.read(j+1, i+1, value)
			if err != nil {
				return nil, err
			}
			row[j] = cell
		}
		sheet.Rows[i] = row
	}

	return sheet, nil
}

type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (r *cellReader) read(col, row int, value string) (CellValue, error) {
	if value == "" {
		return EmptyCell(), nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return CellValue{}, err
	}
	cellType, err := r.f.GetCellType(r.sheet, axis)
	if err != nil {
		return CellValue{}, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return TextCell(value), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODateTime(value); ok {
			return DateCell(t), nil
		}
		return OtherCell(value), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		isDate, err := r.hasDateFormat(axis)
		if err != nil {
			return CellValue{}, err
		}
		if isDate {
			if serial, err := strconv.ParseFloat(value, 64); err == nil {
				if t, err := excelize.ExcelDateToTime(serial, r.date1904); err == nil {
					return DateCell(t), nil
				}
			}
		}
		return OtherCell(value), nil
	default:
		return OtherCell(value), nil
	}
}

func (r *cellReader) hasDateFormat(axis string) (bool, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, axis)
	if err != nil {
		return false, err
	}
	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate, nil
	}

	isDate := false
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	r.dateStyles[styleID] = isDate
	return isDate, nil
}

// isBuiltInDateFormat reports built-in formats that carry a calendar date.
// Time-only formats (18-21, 45-47) are not dates.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

var formatLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func isDateFormatCode(code string) bool {
	code = strings.ToLower(formatLiterals.ReplaceAllString(code, ""))
	return strings.ContainsAny(code, "yd")
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODateTime(value string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
