// Package pipeline runs one batch of uploaded sources through ingest, merge,
// aggregation, and report construction. A run is strictly sequential and
// owns all of its data; nothing outlives it except the report artifact.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/engine/aggregate"
	"github.com/crimson-sun/collate/internal/engine/merge"
	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/model"
	"github.com/crimson-sun/collate/internal/report"
)

// auditName is the combined-log copy of each run's merged rows.
const auditName = "combined_adobe_logs.csv"

// Pipeline wires the stages together.
type Pipeline struct {
	ingestor  *ingest.Ingestor
	merger    *merge.Merger
	reporter  *report.Builder
	outputDir string
	log       *zap.Logger
}

// New creates a Pipeline.
func New(ing *ingest.Ingestor, m *merge.Merger, rep *report.Builder, outputDir string, log *zap.Logger) *Pipeline {
	return &Pipeline{
		ingestor:  ing,
		merger:    m,
		reporter:  rep,
		outputDir: outputDir,
		log:       log,
	}
}

// Run processes one batch of sources to completion and returns the artifact
// path and the preview summary.
func (p *Pipeline) Run(sources []ingest.Source) (string, report.Preview, error) {
	if len(sources) == 0 {
		return "", report.Preview{}, &model.ValidationError{Msg: "No files selected"}
	}

	ingRes, err := p.ingestor.Ingest(sources)
	if err != nil {
		return "", report.Preview{}, err
	}
	p.logSharedIdentities(ingRes.UsersPerSource)

	ds, err := p.merger.Merge(ingRes.Frames, ingRes.RowsRead)
	if err != nil {
		return "", report.Preview{}, err
	}
	p.writeAudit(ds)

	res, err := aggregate.Aggregate(ds)
	if err != nil {
		return "", report.Preview{}, fmt.Errorf("aggregate: %w", err)
	}

	path, preview, err := p.reporter.Build(res)
	if err != nil {
		return "", report.Preview{}, fmt.Errorf("build report: %w", err)
	}
	return path, preview, nil
}

// logSharedIdentities reports identities that appear in more than one
// source. Observability only; the merge handles the rows either way.
func (p *Pipeline) logSharedIdentities(usersPerSource map[string]map[string]struct{}) {
	sourcesByUser := make(map[string][]string)
	for label, users := range usersPerSource {
		for user := range users {
			sourcesByUser[user] = append(sourcesByUser[user], label)
		}
	}

	shared := 0
	for user, labels := range sourcesByUser {
		if len(labels) < 2 {
			continue
		}
		shared++
		p.log.Debug("identity appears in multiple sources",
			zap.String("identity", user),
			zap.Strings("sources", labels))
	}
	if shared > 0 {
		p.log.Info("identities shared across sources", zap.Int("count", shared))
	}
}

// writeAudit saves the merged, annotated rows as a combined CSV alongside
// the report. Failure is logged and does not abort the run.
func (p *Pipeline) writeAudit(ds model.Dataset) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		p.log.Warn("audit copy skipped", zap.Error(err))
		return
	}
	path := filepath.Join(p.outputDir, auditName)

	f, err := os.Create(path)
	if err != nil {
		p.log.Warn("audit copy skipped", zap.Error(err))
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		p.log.Warn("audit copy failed", zap.Error(err))
		return
	}
	fields := make([]string, len(ds.Columns))
	for _, rec := range ds.Raw {
		for i, col := range ds.Columns {
			fields[i] = rec[col]
		}
		if err := w.Write(fields); err != nil {
			p.log.Warn("audit copy failed", zap.Error(err))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		p.log.Warn("audit copy failed", zap.Error(err))
	}
}
