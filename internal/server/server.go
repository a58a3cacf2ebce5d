// Package server provides the HTTP server that exposes a local collection
// tree over the collections API.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/storage"
)

// maxUploadMemory bounds the in-memory portion of a parsed multipart upload.
const maxUploadMemory = 16 << 20

// Server serves the collections API over a storage tree.
type Server struct {
	logger *logrus.Entry
	store  *storage.Store
	server *http.Server
}

// New creates a server over store.
func New(store *storage.Store) *Server {
	return &Server{
		logger: logging.NewLogger("server"),
		store:  store,
	}
}

// Handler builds the API handler. Exposed separately so tests can drive it
// through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/collections", s.handleListing)
	mux.HandleFunc("/api/collections/list/", s.handleCategory)
	mux.HandleFunc("/api/collections/shared", s.handleShared)
	mux.HandleFunc("/api/collections/file/", s.handleFile)
	mux.HandleFunc(nav.MoveEndpoint, s.handleMove)
	mux.HandleFunc(nav.UploadEndpoint, s.handleUpload)
	mux.HandleFunc(nav.FolderEndpoint, s.handleFolder)
	mux.HandleFunc(nav.RenameEndpoint, s.handleRename)
	mux.HandleFunc(nav.DeleteEndpoint, s.handleDelete)
	mux.HandleFunc(nav.FavoriteEndpoint, s.handleFavorite)
	mux.HandleFunc(nav.TrashEndpoint, s.handleTrash)

	return s.logRequests(mux)
}

// ListenAndServe starts the server on addr and blocks until it stops. The
// handler is wrapped for h2c so HTTP/2 clients work without TLS.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to listen").
			WithDetail("addr", addr)
	}

	s.server = &http.Server{
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{}),
	}

	go s.store.WatchInvalidate(ctx)

	s.logger.WithField("addr", listener.Addr().String()).Info("Collections server listening")
	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).Round(time.Microsecond).String(),
		}).Debug("Request handled")
	})
}

// handleListing serves GET /api/collections?path=...
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := nav.Canonicalize(r.URL.Query().Get("path"))
	items, err := s.store.List(path)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"collections": items,
		"path":        path,
	}
	if path == "" {
		resp["parent"] = nil
	} else {
		resp["parent"] = nav.ParentPath(path)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCategory serves GET /api/collections/list/{category}.
func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/collections/list/")
	target := nav.ParseTarget(name)
	if !target.IsCategory() {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown category").
			WithDetail("category", name))
		return
	}

	items, err := s.store.ListCategory(target.Category())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

// handleShared serves GET /api/collections/shared, an alias kept for
// clients that predate the list/{category} route.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := s.store.ListCategory(nav.CategoryShared)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

// handleFile serves GET /api/collections/file/{path}.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/collections/file/")
	rc, err := s.store.Open(path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("Failed streaming file")
	}
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if err := s.store.Move(req); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{Success: true})
}

func (s *Server) handleFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
		Name string `json:"name"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	if err := s.store.CreateFolder(req.Path, req.Name); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{Success: true})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string `json:"path"`
		NewName string `json:"new_name"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	newPath, err := s.store.Rename(req.Path, req.NewName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"new_path": newPath,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	if err := s.store.Delete(req.Path); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{Success: true})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	isFavorite, err := s.store.ToggleFavorite(req.Path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.FavoriteResponse{Success: true, IsFavorite: isFavorite})
}

func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !s.decodePost(w, r, &req) {
		return
	}
	if err := s.store.Trash(req.Path); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{Success: true})
}

// handleUpload serves POST /api/collections/upload. The body is multipart:
// a "path" field naming the target folder (created when missing) and one or
// more files under "files[]" (or "files"). Files that fail validation are
// reported individually; the request succeeds when at least one file landed.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid multipart body"))
		return
	}

	folderPath := r.FormValue("path")
	files := r.MultipartForm.File["files[]"]
	if len(files) == 0 {
		files = r.MultipartForm.File["files"]
	}
	if len(files) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "no files provided"))
		return
	}

	result := models.UploadResponse{Uploaded: []models.CollectionItem{}}
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			result.Failed = append(result.Failed, models.UploadFailure{Name: header.Filename, Error: "unreadable file part"})
			continue
		}
		item, err := s.store.Upload(folderPath, header.Filename, f)
		f.Close()
		if err != nil {
			result.Failed = append(result.Failed, models.UploadFailure{Name: header.Filename, Error: errors.GetMessage(err)})
			continue
		}
		result.Uploaded = append(result.Uploaded, item)
	}
	result.Success = len(result.Uploaded) > 0

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

// decodePost enforces POST with a JSON body. Returns false after writing the
// error response.
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.writeError(w, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid request body"))
		return false
	}
	return true
}

// writeError maps an error to a status code and the API's standard error
// body. Rejections keep their reason so clients can show it verbatim.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeValidationRejected, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeItemNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeItemExists:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed")
	}
	writeJSON(w, status, models.StatusResponse{Success: false, Error: errors.GetMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
