// Package report renders the aggregation result into a multi-sheet workbook
// and a preview summary. Sheet content is fixed; visual treatment is limited
// to a styled header row and sized columns.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/engine/aggregate"
)

// ArtifactName is the fixed workbook name; each run overwrites the last.
const ArtifactName = "adobe_college_stats.xlsx"

const (
	sheetStats  = "Overall Statistics"
	sheetMatrix = "College Distribution"
	sheetOthers = "Other Users"

	leadersHeading = "Highest Users per App"

	headerFillColor = "CCE5FF"
	maxColumnWidth  = 50
)

// Builder writes report artifacts into a fixed output directory.
type Builder struct {
	outputDir string
	log       *zap.Logger
}

// New creates a Builder writing under outputDir.
func New(outputDir string, log *zap.Logger) *Builder {
	return &Builder{outputDir: outputDir, log: log}
}

// Build writes the three-sheet workbook and returns its path plus the
// preview summary.
func (b *Builder) Build(res aggregate.Result) (string, Preview, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeStats(f, res.Stats); err != nil {
		return "", Preview{}, fmt.Errorf("statistics sheet: %w", err)
	}
	if err := writeMatrix(f, res); err != nil {
		return "", Preview{}, fmt.Errorf("distribution sheet: %w", err)
	}
	if err := writeOthers(f, res.Others); err != nil {
		return "", Preview{}, fmt.Errorf("other users sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", Preview{}, fmt.Errorf("drop default sheet: %w", err)
	}

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", Preview{}, fmt.Errorf("output dir: %w", err)
	}
	path := filepath.Join(b.outputDir, ArtifactName)
	if err := f.SaveAs(path); err != nil {
		return "", Preview{}, fmt.Errorf("save workbook: %w", err)
	}

	b.log.Info("report written",
		zap.String("path", path),
		zap.Int("total_users", res.Stats.TotalUsers))

	return path, buildPreview(res), nil
}

// writeSheet creates a sheet, writes its rows, styles the header, and sizes
// the columns.
func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	if err := styleHeader(f, name, len(rows[0])); err != nil {
		return err
	}
	return sizeColumns(f, name, rows)
}

func writeStats(f *excelize.File, s aggregate.Stats) error {
	rows := [][]any{
		{"Metric", "Count"},
		{"Total Unique Users", s.TotalUsers},
		{"UST Student Users", s.MemberUsers},
		{"Other Users", s.OtherUsers},
		{"Total Rows", s.TotalRows},
		{"Duplicate Rows", s.DuplicateRows},
	}
	return writeSheet(f, sheetStats, rows)
}

func writeMatrix(f *excelize.File, res aggregate.Result) error {
	m := res.Matrix
	width := 2 + len(m.Categories)

	header := make([]any, 0, width)
	header = append(header, "College", "Total Unique Users")
	for _, c := range m.Categories {
		header = append(header, c)
	}

	rows := [][]any{header}
	for _, row := range m.Rows {
		rows = append(rows, matrixRow(row, width))
	}
	rows = append(rows, matrixRow(m.Total, width))

	// Separator, section heading, then one row per leader.
	rows = append(rows, blankRow(width))
	heading := blankRow(width)
	heading[0] = leadersHeading
	rows = append(rows, heading)
	for _, l := range res.Leaders {
		r := blankRow(width)
		r[0] = l.Category + ":"
		r[1] = l.Unit
		r[2] = l.Count
		rows = append(rows, r)
	}

	return writeSheet(f, sheetMatrix, rows)
}

func writeOthers(f *excelize.File, others []aggregate.OtherUser) error {
	rows := [][]any{{"User Email", "First Adobe App Used"}}
	for _, o := range others {
		rows = append(rows, []any{o.Identity, o.Category})
	}
	return writeSheet(f, sheetOthers, rows)
}

func matrixRow(row aggregate.MatrixRow, width int) []any {
	r := make([]any, 0, width)
	r = append(r, row.Unit, row.Users)
	for _, n := range row.Counts {
		r = append(r, n)
	}
	return r
}

func blankRow(width int) []any {
	r := make([]any, width)
	for i := range r {
		r[i] = ""
	}
	return r
}

func styleHeader(f *excelize.File, sheet string, width int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// sizeColumns widens each column to its longest value plus padding, capped.
func sizeColumns(f *excelize.File, sheet string, rows [][]any) error {
	widths := make(map[int]int)
	for _, row := range rows {
		for i, v := range row {
			if n := len(fmt.Sprint(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		adjusted := w + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(adjusted)); err != nil {
			return err
		}
	}
	return nil
}
