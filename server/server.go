package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"go.uber.org/zap"

	"instagram_copywriter/copywriter"
	"instagram_copywriter/report"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// Server is the HTTP shell around the generator: upload management,
// campaign runs, schedule previews and report rendering. The generator
// may be nil when no API key is configured; only /api/generate needs it.
type Server struct {
	gen    *copywriter.Generator
	cfg    copywriter.Config
	logger *zap.Logger
}

func New(gen *copywriter.Generator, cfg copywriter.Config, logger *zap.Logger) (*Server, error) {
	if cfg.UploadDir == "" {
		return nil, errors.New("upload dir is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	return &Server{gen: gen, cfg: cfg, logger: logger}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/upload-multiple", s.handleUploadMultiple)
	mux.HandleFunc("/api/uploads", s.handleUploadList)
	mux.HandleFunc("/api/uploads/", s.handleUploadByName)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/schedule-preview", s.handleSchedulePreview)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.UploadDir))))
	mux.HandleFunc("/", s.handleRoot)
	return s.logMiddleware(mux)
}

// --- Handlers ---

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	status := "ready"
	if s.gen == nil {
		status = "api_key_missing"
	}
	writeJSON(w, map[string]string{
		"message": "Instagram Copywriter API",
		"status":  status,
	})
}

type uploadResp struct {
	Filename         string `json:"filename"`
	Path             string `json:"path"`
	FullPath         string `json:"full_path,omitempty"`
	InferredTemplate string `json:"inferred_template"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	resp, err := s.storeUpload(file, header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) handleUploadMultiple(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(100 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	uploaded := make([]uploadResp, 0)
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			continue
		}
		resp, err := s.storeUpload(file, header)
		file.Close()
		if err != nil {
			// Non-images are skipped rather than failing the batch.
			continue
		}
		uploaded = append(uploaded, *resp)
	}
	writeJSON(w, map[string]any{"uploaded": uploaded})
}

func (s *Server) storeUpload(file multipart.File, header *multipart.FileHeader) (*uploadResp, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown || kind.MIME.Type != "image" {
		return nil, errors.New("file must be an image")
	}

	name := filepath.Base(header.Filename)
	dst := filepath.Join(s.cfg.UploadDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dst)
	if err != nil {
		abs = dst
	}
	return &uploadResp{
		Filename:         name,
		Path:             "/uploads/" + name,
		FullPath:         abs,
		InferredTemplate: inferredTemplate(name),
	}, nil
}

func (s *Server) handleUploadList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := os.ReadDir(s.cfg.UploadDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	files := make([]uploadResp, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		files = append(files, uploadResp{
			Filename:         e.Name(),
			Path:             "/uploads/" + e.Name(),
			InferredTemplate: inferredTemplate(e.Name()),
		})
	}
	writeJSON(w, map[string]any{"files": files})
}

func (s *Server) handleUploadByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := filepath.Base(strings.TrimPrefix(r.URL.Path, "/api/uploads/"))
	if name == "" || name == "." || name == "/" {
		http.NotFound(w, r)
		return
	}
	if err := os.Remove(filepath.Join(s.cfg.UploadDir, name)); err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"deleted": name})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.gen == nil {
		http.Error(w, "llm api key not configured", http.StatusInternalServerError)
		return
	}
	var req copywriter.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i, img := range req.Images {
		if strings.HasPrefix(img, "/uploads/") {
			req.Images[i] = filepath.Join(s.cfg.UploadDir, filepath.Base(img))
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()
	res, err := s.gen.Run(ctx, req)
	if err != nil {
		s.logger.Warn("campaign run failed", zap.Error(err))
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleSchedulePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	nPosts := 6
	if v := r.URL.Query().Get("n_posts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "n_posts must be an integer", http.StatusBadRequest)
			return
		}
		nPosts = n
	}
	schedule, err := copywriter.BuildSchedule(nPosts)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	type previewSlot struct {
		Index      int                   `json:"index"`
		DayCode    string                `json:"day_code"`
		DayName    string                `json:"day_name"`
		TemplateID copywriter.TemplateID `json:"template_id"`
		PostRole   string                `json:"post_role"`
		CTAEnabled bool                  `json:"cta_enabled"`
	}
	slots := make([]previewSlot, len(schedule))
	for i, slot := range schedule {
		slots[i] = previewSlot{
			Index:      i,
			DayCode:    slot.DayName,
			DayName:    report.DayTitle(slot.DayName),
			TemplateID: slot.TemplateID,
			PostRole:   slot.PostRole,
			CTAEnabled: slot.CTAEnabled,
		}
	}
	writeJSON(w, map[string]any{"n_posts": nPosts, "schedule": slots})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var res copywriter.RunResult
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	md := report.Markdown(&res)
	html, err := report.HTML(&res)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"markdown": md, "html": html})
}

// --- Helpers ---

func inferredTemplate(name string) string {
	if tid, ok := copywriter.TemplateForFilename(name); ok {
		return string(tid)
	}
	return "unknown"
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, copywriter.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, copywriter.ErrInvalidArgument),
		errors.Is(err, copywriter.ErrUnknownPrefix),
		errors.Is(err, copywriter.ErrMissingImages),
		errors.Is(err, copywriter.ErrExhausted):
		return http.StatusBadRequest
	case errors.Is(err, copywriter.ErrPolicyViolation),
		errors.Is(err, copywriter.ErrSchemaViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, copywriter.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
