// Package apppath classifies logged file paths to the Adobe application
// that produced them. Paths encode the originating application redundantly
// (package identifier, application name, extension); the rule tables are
// evaluated most-specific-first so the redundant signals cannot conflict.
package apppath

import (
	"path"
	"strings"
)

// Classify maps a file path to its application category. It is a pure, total
// function: every input resolves to exactly one category and no input fails.
// An empty path returns Unknown; a path no rule recognizes returns OtherFiles.
func Classify(itemPath string) string {
	if itemPath == "" {
		return Unknown
	}

	p := strings.ToLower(itemPath)

	for _, r := range packageRules {
		if strings.Contains(p, r.pattern) {
			return r.category
		}
	}

	for _, r := range nameRules {
		if strings.Contains(p, r.pattern) {
			return r.category
		}
	}

	for _, m := range lightroomMarkers {
		if strings.Contains(p, m) {
			return Lightroom
		}
	}

	ext := path.Ext(p)
	for _, r := range extensionRules {
		if ext == r.pattern {
			return r.category
		}
	}

	if ext == ".pdf" {
		if strings.Contains(p, scanMarker) {
			return Scan
		}
		return PDFDocument
	}

	for _, m := range cloudMarkers {
		if strings.Contains(p, m) {
			return CloudStorage
		}
	}

	return OtherFiles
}
