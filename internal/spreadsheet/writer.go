package spreadsheet

import (
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of xlsx workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook writes rows sequentially into a single-sheet workbook
type Workbook struct {
	f     *excelize.File
	sheet string
	next  int
}

// NewWorkbook creates a workbook with one named sheet and a header row
func NewWorkbook(sheetName string, header []string) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	w := &Workbook{f: f, sheet: sheetName, next: 1}
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := w.AppendRow(values...); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// AppendRow writes values to the next free row
func (w *Workbook) AppendRow(values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	w.next++
	return nil
}

// Bytes serializes the workbook
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}
