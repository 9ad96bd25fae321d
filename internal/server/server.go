// Package server exposes workbook metadata extraction as an HTTP upload service.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/twbmeta-go/internal/config"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/output"
)

// AllowedExtension is the only accepted upload extension.
const AllowedExtension = ".twb"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>Workbook metadata</title></head>
<body>
  <h1>Workbook metadata report</h1>
  {{if .}}<p class="error">{{.}}</p>{{end}}
  <form method="post" action="/upload" enctype="multipart/form-data">
    <input type="file" name="file" accept=".twb">
    <button type="submit">Extract</button>
  </form>
</body>
</html>
`))

// Server handles workbook uploads and responds with the xlsx metadata report.
type Server struct {
	cfg    config.ServerConfig
	opts   twbmeta.Options
	logger *log.Logger
}

// New creates a Server. Upload and output directories are created if missing.
func New(cfg config.ServerConfig, opts twbmeta.Options, logger *log.Logger) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Server{cfg: cfg, opts: opts, logger: logger}, nil
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderIndex(w, http.StatusOK, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, message); err != nil {
		s.logger.WithError(err).Error("Failed to render index")
	}
}

func (s *Server) renderTooLarge(w http.ResponseWriter) {
	s.renderIndex(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the %d byte upload limit.", s.cfg.MaxUploadBytes))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.ContentLength > s.cfg.MaxUploadBytes {
		s.renderTooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.renderTooLarge(w)
		case errors.Is(err, http.ErrMissingFile):
			s.renderIndex(w, http.StatusBadRequest, "No file part in the request.")
		default:
			s.renderIndex(w, http.StatusBadRequest, "Malformed upload request.")
		}
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.renderIndex(w, http.StatusBadRequest, "No selected file.")
		return
	}
	if !AllowedFile(header.Filename) {
		s.renderIndex(w, http.StatusBadRequest, "Invalid file type. Please upload a .twb file.")
		return
	}

	name := SecureFilename(header.Filename)
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	inputPath := filepath.Join(s.cfg.UploadDir, id+"_"+name)
	outputPath := filepath.Join(s.cfg.OutputDir, id+"_metadata_report.xlsx")
	logger := s.logger.WithFields(log.Fields{"upload": id, "file": name})

	defer func() {
		if err := os.Remove(inputPath); err != nil && !os.IsNotExist(err) {
			logger.WithError(err).Warn("Failed to remove upload")
		}
		if s.cfg.RetainOutputs {
			return
		}
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			logger.WithError(err).Warn("Failed to remove report")
		}
	}()

	if err := saveUpload(file, inputPath); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderTooLarge(w)
			return
		}
		logger.WithError(err).Error("Failed to store upload")
		s.renderIndex(w, http.StatusInternalServerError, "Failed to store the uploaded file.")
		return
	}

	md, err := twbmeta.Extract(inputPath, s.opts)
	if err == nil {
		err = output.WriteReport(md, outputPath)
	}
	if err != nil {
		status := statusFor(err)
		entry := logger.WithError(err)
		if status >= http.StatusInternalServerError {
			entry.Error("Processing failed")
		} else {
			entry.Warn("Rejected upload")
		}
		s.renderIndex(w, status, "An error occurred while processing the file: "+clientMessage(err))
		return
	}

	logger.WithFields(log.Fields{
		"datasources":       len(md.Datasources),
		"worksheets":        len(md.Worksheets),
		"dashboards":        len(md.Dashboards),
		"calculated_fields": len(md.CalculatedFields),
		"parameters":        len(md.Parameters),
	}).Info("Report generated")

	report, err := os.Open(outputPath)
	if err != nil {
		logger.WithError(err).Error("Failed to open report")
		s.renderIndex(w, http.StatusInternalServerError, "Failed to read the generated report.")
		return
	}
	defer report.Close()
	info, err := report.Stat()
	if err != nil {
		logger.WithError(err).Error("Failed to stat report")
		s.renderIndex(w, http.StatusInternalServerError, "Failed to read the generated report.")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": DownloadName(name),
	}))
	http.ServeContent(w, r, "", info.ModTime(), report)
}

// statusFor maps extraction and report errors to HTTP status codes.
func statusFor(err error) int {
	var (
		pe *twbmeta.ParseError
		ee *twbmeta.ExtractionError
	)
	switch {
	case errors.As(err, &pe), errors.As(err, &ee), errors.Is(err, output.ErrEmptyReport):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage describes err without server-side paths.
func clientMessage(err error) string {
	var pe *twbmeta.ParseError
	switch {
	case errors.As(err, &pe):
		return pe.Err.Error()
	case statusFor(err) >= http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
