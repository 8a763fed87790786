// Package ingest reads uploaded tabular sources into frames. Each source is
// persisted to a scoped temporary file, parsed by the reader registered for
// its extension, and the temporary file is removed on every exit path.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/model"
)

// IdentityColumn is the column holding the acting user's identity.
const IdentityColumn = "User Email"

// Source is one uploaded file: its original name and a way to open its
// content. Open is called once per ingest.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Result carries the parsed frames plus ingest observability data.
type Result struct {
	Frames []model.Frame

	// RowsRead is the total row count across sources before merging,
	// used downstream for the concatenation discrepancy check.
	RowsRead int

	// UsersPerSource maps a source label ("File 1: name.csv") to the
	// distinct non-empty identities seen in that source. Used only for
	// cross-source duplicate-identity reporting.
	UsersPerSource map[string]map[string]struct{}
}

// Ingestor reads a batch of sources.
type Ingestor struct {
	tmpDir string // "" means the system default
	log    *zap.Logger
}

// New creates an Ingestor that stages uploads under tmpDir.
func New(tmpDir string, log *zap.Logger) *Ingestor {
	return &Ingestor{tmpDir: tmpDir, log: log}
}

// Ingest parses all sources in order. Any source that cannot be parsed
// aborts the whole batch with an error naming it.
func (in *Ingestor) Ingest(sources []Source) (Result, error) {
	res := Result{UsersPerSource: make(map[string]map[string]struct{})}

	for i, src := range sources {
		frame, err := in.ingestOne(src)
		if err != nil {
			return Result{}, fmt.Errorf("ingest %s: %w", src.Name, err)
		}
		frame.Source = src.Name
		res.RowsRead += len(frame.Records)

		label := fmt.Sprintf("File %d: %s", i+1, src.Name)
		if frame.HasColumn(IdentityColumn) {
			users := distinctIdentities(frame.Records)
			res.UsersPerSource[label] = users
			in.log.Info("source ingested",
				zap.String("source", src.Name),
				zap.Int("rows", len(frame.Records)),
				zap.Int("users", len(users)))
		} else {
			in.log.Info("source ingested without identity column",
				zap.String("source", src.Name),
				zap.Int("rows", len(frame.Records)))
		}

		res.Frames = append(res.Frames, frame)
	}
	return res, nil
}

func (in *Ingestor) ingestOne(src Source) (model.Frame, error) {
	ext := strings.ToLower(filepath.Ext(src.Name))
	ctor, err := Get(ext)
	if err != nil {
		return model.Frame{}, err
	}

	rc, err := src.Open()
	if err != nil {
		return model.Frame{}, fmt.Errorf("open upload: %w", err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(in.tmpDir, "collate-*"+ext)
	if err != nil {
		return model.Frame{}, fmt.Errorf("stage upload: %w", err)
	}
	// The staged copy is scoped to this source; remove it whether or not
	// parsing succeeds.
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return model.Frame{}, fmt.Errorf("stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return model.Frame{}, fmt.Errorf("stage upload: %w", err)
	}

	return ctor().Read(tmp.Name(), src.Name)
}

func distinctIdentities(records []model.Record) map[string]struct{} {
	users := make(map[string]struct{})
	for _, rec := range records {
		id := strings.TrimSpace(rec[IdentityColumn])
		if id == "" {
			continue
		}
		users[id] = struct{}{}
	}
	return users
}
