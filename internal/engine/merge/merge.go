// Package merge concatenates ingested frames into one canonical dataset:
// source order preserved, schema validated, identities and paths normalized,
// duplicate rows counted, and every row annotated with its application
// category.
package merge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/engine/apppath"
	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/model"
)

const (
	IdentityColumn  = ingest.IdentityColumn
	PathColumn      = "Item Path"
	TimestampColumn = "Timestamp"

	// CategoryColumn is added to the merged rows for the audit copy.
	CategoryColumn = "Adobe App"
)

var requiredColumns = []string{IdentityColumn, PathColumn}

// Merger builds a Dataset from per-source frames.
type Merger struct {
	log *zap.Logger
}

// New creates a Merger.
func New(log *zap.Logger) *Merger {
	return &Merger{log: log}
}

// Merge concatenates frames in arrival order. rowsRead is the pre-merge row
// total from ingest; a mismatch with the merged count signals an upstream
// anomaly and is logged, not fatal. Missing required columns are fatal and
// user-facing.
func (m *Merger) Merge(frames []model.Frame, rowsRead int) (model.Dataset, error) {
	columns := unionColumns(frames)

	var raw []model.Record
	for _, f := range frames {
		raw = append(raw, f.Records...)
	}

	if len(raw) != rowsRead {
		m.log.Warn("row count mismatch after concatenation",
			zap.Int("before", rowsRead),
			zap.Int("after", len(raw)))
	}

	if missing := missingColumns(columns); len(missing) > 0 {
		return model.Dataset{}, &model.ValidationError{
			Msg: fmt.Sprintf("Required columns missing in input files: %s. Analysis requires columns: %s",
				strings.Join(missing, ", "), strings.Join(requiredColumns, ", ")),
		}
	}

	hasTimestamp := containsColumn(columns, TimestampColumn)

	entries := make([]model.Entry, 0, len(raw))
	distinct := make(map[string]struct{}, len(raw))
	for _, rec := range raw {
		identity := strings.TrimSpace(rec[IdentityColumn])
		itemPath := strings.TrimSpace(rec[PathColumn])

		entry := model.Entry{
			Identity: identity,
			Path:     itemPath,
			Category: apppath.Classify(itemPath),
		}
		if hasTimestamp {
			entry.Timestamp = rec[TimestampColumn]
		}
		entries = append(entries, entry)

		rec[CategoryColumn] = entry.Category
		distinct[identity+"\x00"+itemPath] = struct{}{}
	}

	ds := model.Dataset{
		Entries:       entries,
		Columns:       append(columns, CategoryColumn),
		Raw:           raw,
		HasTimestamp:  hasTimestamp,
		TotalRows:     len(raw),
		DuplicateRows: len(raw) - len(distinct),
	}
	return ds, nil
}

// unionColumns collects the source columns in first-seen order.
func unionColumns(frames []model.Frame) []string {
	var columns []string
	seen := make(map[string]struct{})
	for _, f := range frames {
		for _, col := range f.Columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}
	return columns
}

func missingColumns(columns []string) []string {
	var missing []string
	for _, req := range requiredColumns {
		if !containsColumn(columns, req) {
			missing = append(missing, req)
		}
	}
	return missing
}

func containsColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}
