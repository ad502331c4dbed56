package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/shagunnguptaa/DocSumm/internal/config"
	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
	"github.com/shagunnguptaa/DocSumm/internal/core/ports"
	"github.com/shagunnguptaa/DocSumm/internal/observability/metrics"
)

const (
	serviceName = "api"

	// multipartMemory is kept in memory before parts spill to temp files.
	multipartMemory = 8 << 20
)

type Router struct {
	cfg        config.Config
	summarizer ports.DocumentSummarizer
	metrics    *metrics.HTTPServerMetrics
}

// NewRouter builds the API. httpMetrics may be nil, which disables
// instrumentation and the /metrics endpoint.
func NewRouter(cfg config.Config, summarizer ports.DocumentSummarizer, httpMetrics *metrics.HTTPServerMetrics) *Router {
	return &Router{
		cfg:        cfg,
		summarizer: summarizer,
		metrics:    httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.json", rt.openAPI)
	mux.Handle("/api/summarize", rt.trafficControl(http.HandlerFunc(rt.summarize)))
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) trafficControl(next http.Handler) http.Handler {
	handler := backpressureMiddleware(next, rt.cfg.APIMaxInFlight, rt.cfg.BackpressureWait())
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	return rejectionCounter(handler, rt.metrics)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) summarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		if _, emptyName := r.MultipartForm.Value["file"]; emptyName {
			writeError(w, http.StatusBadRequest, "Empty filename")
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		writeError(w, http.StatusBadRequest, "Empty filename")
		return
	}
	if !strings.Contains(header.Filename, ".") {
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}
	kind, err := domain.ParseDocumentKind(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}
	filename := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}

	result, err := rt.summarizer.Summarize(r.Context(), domain.DocumentBytes{
		Name: filename,
		Kind: kind,
		Data: data,
	}, domain.ParseLengthTier(r.FormValue("length")))
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("summarize_failed", "request_id", requestIDFromContext(r.Context()), "document", filename, "error", err)
		}
		writeError(w, status, errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// sanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	base = strings.TrimLeft(base, ".")
	if base == "" {
		return "upload"
	}
	return base
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
