package spreadsheet

import "time"

// CellKind tags the kind of value a cell holds
type CellKind int

const (
	CellEmpty CellKind = iota
	CellDate
	CellText
	CellOther
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellDate:
		return "date"
	case CellText:
		return "text"
	default:
		return "other"
	}
}

// CellValue is a single cell read from a worksheet.
// Only the field matching Kind is meaningful.
type CellValue struct {
	kind CellKind
	text string
	date time.Time
}

func EmptyCell() CellValue {
	return CellValue{kind: CellEmpty}
}

func DateCell(t time.Time) CellValue {
	return CellValue{kind: CellDate, date: t}
}

func TextCell(s string) CellValue {
	if s == "" {
		return EmptyCell()
	}
	return CellValue{kind: CellText, text: s}
}

// OtherCell holds numbers, booleans and errors as their raw text
func OtherCell(raw string) CellValue {
	if raw == "" {
		return EmptyCell()
	}
	return CellValue{kind: CellOther, text: raw}
}

func (c CellValue) Kind() CellKind {
	return c.kind
}

func (c CellValue) IsEmpty() bool {
	return c.kind == CellEmpty
}

// Date returns the date-time value when the cell is a date
func (c CellValue) Date() (time.Time, bool) {
	return c.date, c.kind == CellDate
}

// Text returns the string value when the cell is text
func (c CellValue) Text() (string, bool) {
	return c.text, c.kind == CellText
}

// String renders any cell kind for display and header comparison
func (c CellValue) String() string {
	switch c.kind {
	case CellEmpty:
		return ""
	case CellDate:
		return c.date.Format("2006-01-02 15:04:05")
	default:
		return c.text
	}
}
