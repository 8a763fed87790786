// Package csvfile parses delimited-text sources. Exports in the wild arrive
// in a mix of encodings, so decoding tries a fixed preference order: strict
// UTF-8, then Windows-1252, then ISO-8859-1. If the strict CSV parse fails,
// a permissive re-parse skips malformed lines instead of failing the source.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/model"
)

func init() {
	ingest.Register(".csv", func() ingest.Reader { return &Reader{} })
}

// Reader parses one CSV source.
type Reader struct{}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacyEncodings are tried in order when the content is not valid UTF-8.
var legacyEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

// Read parses the CSV file at path.
func (r *Reader) Read(path, source string) (model.Frame, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Frame{}, fmt.Errorf("read %s: %w", source, err)
	}

	text := decode(raw)

	frame, strictErr := parse(text, false)
	if strictErr == nil {
		return frame, nil
	}

	frame, permissiveErr := parse(text, true)
	if permissiveErr != nil {
		return model.Frame{}, fmt.Errorf("parse %s: %w", source, strictErr)
	}
	return frame, nil
}

// decode converts raw bytes to text using the encoding preference chain.
func decode(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}
	for _, le := range legacyEncodings {
		out, err := le.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(out)
	}
	// Single-byte decoders above cannot fail, so this is unreachable in
	// practice; keep the raw bytes rather than dropping the source.
	return string(raw)
}

// parse reads the decoded text. In permissive mode, records that fail to
// parse or carry more fields than the header are skipped; short records are
// padded with empty values.
func parse(text string, permissive bool) (model.Frame, error) {
	cr := csv.NewReader(strings.NewReader(text))
	if permissive {
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
	}

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return model.Frame{}, errors.New("empty file")
		}
		return model.Frame{}, err
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	frame := model.Frame{Columns: header}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if permissive {
				var perr *csv.ParseError
				if errors.As(err, &perr) {
					continue
				}
			}
			return model.Frame{}, err
		}
		if permissive && len(fields) > len(header) {
			continue
		}

		rec := make(model.Record, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			} else {
				rec[col] = ""
			}
		}
		frame.Records = append(frame.Records, rec)
	}
	return frame, nil
}
