package ingest

import (
	"fmt"
	"sort"

	"github.com/crimson-sun/collate/internal/model"
)

// Reader parses one saved source file into a Frame.
type Reader interface {
	// Read parses the file at path. source is the upload's original name,
	// used in error messages.
	Read(path, source string) (model.Frame, error)
}

// Constructor is a function that creates a new Reader instance.
type Constructor func() Reader

var registry = map[string]Constructor{}

// Register adds a reader constructor under the given file extension
// (lower-case, with leading dot, e.g. ".csv").
func Register(ext string, ctor Constructor) {
	registry[ext] = ctor
}

// Get returns the reader constructor for the given file extension.
func Get(ext string) (Constructor, error) {
	ctor, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported source format: %s", ext)
	}
	return ctor, nil
}

// Extensions returns the registered file extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
