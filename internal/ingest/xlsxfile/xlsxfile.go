// Package xlsxfile parses spreadsheet sources. Unlike delimited text there
// is no encoding ambiguity, so parsing is a single attempt: an unreadable
// workbook is fatal for that source.
package xlsxfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/model"
)

func init() {
	ingest.Register(".xlsx", func() ingest.Reader { return &Reader{} })
}

// Reader parses one xlsx source, reading the first sheet.
type Reader struct{}

// Read parses the workbook at path.
func (r *Reader) Read(path, source string) (model.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.Frame{}, fmt.Errorf("open workbook %s: %w", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Frame{}, fmt.Errorf("workbook %s has no sheets", source)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return model.Frame{}, fmt.Errorf("read workbook %s: %w", source, err)
	}
	if len(rows) == 0 {
		return model.Frame{}, errors.New("empty workbook")
	}

	header := rows[0]
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	frame := model.Frame{Columns: header}
	for _, cells := range rows[1:] {
		rec := make(model.Record, len(header))
		for i, col := range header {
			if i < len(cells) {
				rec[col] = cells[i]
			} else {
				rec[col] = ""
			}
		}
		frame.Records = append(frame.Records, rec)
	}
	return frame, nil
}
