// Package server is the thin HTTP surface over the pipeline: multipart
// upload in, JSON preview out, plus the artifact download. All pipeline
// errors are reduced to a single human-readable message here.
package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/config"
	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/model"
	"github.com/crimson-sun/collate/internal/pipeline"
	"github.com/crimson-sun/collate/internal/report"
)

// schemaHint replaces raw internal errors that mention the identity column.
const schemaHint = "Analysis requires files with 'User Email' and 'Item Path' columns. Your files don't match this format."

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// Server handles upload, preview, and download requests.
type Server struct {
	pipe           *pipeline.Pipeline
	maxUploadBytes int64
	log            *zap.Logger

	// artifactPath is the last run's report, overwritten per run.
	// Concurrent runs racing on it is an accepted limitation.
	artifactPath string
}

// New creates a Server around the pipeline.
func New(pipe *pipeline.Pipeline, cfg config.ServerConfig, log *zap.Logger) *Server {
	return &Server{
		pipe:           pipe,
		maxUploadBytes: cfg.MaxUploadBytes,
		log:            log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/", s.handleUpload)
	r.GET("/download", s.handleDownload)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		// The multipart reader may wrap the limit error without preserving
		// its type, so match the message as well.
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "The file(s) you tried to upload are too large. Please keep total size under 1GB.",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files selected"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 || files[0].Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files selected"})
		return
	}

	valid := make([]*multipart.FileHeader, 0, len(files))
	for _, fh := range files {
		if allowedExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
			valid = append(valid, fh)
		}
	}
	if len(valid) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid CSV or XLSX files selected"})
		return
	}

	sources := make([]ingest.Source, len(valid))
	for i, fh := range valid {
		fh := fh
		sources[i] = ingest.Source{
			Name: filepath.Base(fh.Filename),
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	path, preview, err := s.pipe.Run(sources)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.artifactPath = path

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"file_count": len(valid),
		"preview":    preview,
	})
}

// fail converts a pipeline error to the single user-facing message.
// Validation messages pass through; internal errors are logged in full and
// rewritten.
func (s *Server) fail(c *gin.Context, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
		return
	}

	s.log.Error("report run failed", zap.Error(err))
	msg := err.Error()
	if strings.Contains(msg, ingest.IdentityColumn) {
		msg = schemaHint
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": fmt.Sprintf("Error processing files: %s", msg),
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	path := s.artifactPath
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report has been generated yet"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report file not found"})
		return
	}
	c.FileAttachment(path, report.ArtifactName)
}
