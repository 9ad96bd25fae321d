package output

import (
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/xuri/excelize/v2"
)

const (
	minColumnWidth = 12
	maxColumnWidth = 80
)

// WriteReport writes md as a multi-sheet xlsx workbook to dest.
// The workbook is written to a temporary file in the same directory and renamed
// into place, so dest is either complete or untouched.
func WriteReport(md *models.Metadata, dest string) error {
	f, err := BuildWorkbook(md)
	if err != nil {
		return err
	}
	defer f.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".twbmeta-*.tmp")
	if err != nil {
		return &ReportWriteError{Dest: dest, Err: err}
	}
	tmpName := tmp.Name()
	published := false
	defer func() {
		if !published {
			os.Remove(tmpName)
		}
	}()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return &ReportWriteError{Dest: dest, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &ReportWriteError{Dest: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &ReportWriteError{Dest: dest, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return &ReportWriteError{Dest: dest, Err: err}
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return &ReportWriteError{Dest: dest, Err: err}
	}
	published = true
	return nil
}

// WriteReportTo writes md as an xlsx workbook to w.
func WriteReportTo(md *models.Metadata, w io.Writer) error {
	f, err := BuildWorkbook(md)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return &ReportWriteError{Dest: "stream", Err: err}
	}
	return nil
}

// BuildWorkbook lays out one sheet per non-empty collection, in report order.
// It returns ErrEmptyReport when there is nothing to write.
func BuildWorkbook(md *models.Metadata) (*excelize.File, error) {
	if md.Empty() {
		return nil, ErrEmptyReport
	}
	var tables []models.Table
	for _, t := range md.Tables() {
		if len(t.Rows) > 0 {
			tables = append(tables, t)
		}
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, t := range tables {
		if i == 0 {
			// reuse the default sheet so no empty sheet is left behind
			err = f.SetSheetName(f.GetSheetName(0), t.Name)
		} else {
			_, err = f.NewSheet(t.Name)
		}
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := writeTable(f, t, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

// writeTable writes the header row and records of t to the sheet named t.Name.
func writeTable(f *excelize.File, t models.Table, headerStyle int) error {
	header := make([]interface{}, len(t.Columns))
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
		widths[i] = utf8.RuneCountInString(c)
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return err
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, col, col, float64(clampWidth(w+2))); err != nil {
			return err
		}
	}
	return nil
}

func clampWidth(w int) int {
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}
