package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	applog "berdoz/internal/log"
	"berdoz/internal/services"
	"berdoz/internal/upload"
)

// searchLimit caps the matches returned per module.
const searchLimit = 50

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, &upload.Error{
				StatusCode: http.StatusBadRequest,
				Code:       upload.CodeFileTooLarge,
				Message:    "file too large",
			})
			return
		}
		writeError(w, r, upload.NoFile())
		return
	}
	defer file.Close()

	att, err := s.uploads.Upload(r.Context(), upload.File{
		Folder:       sanitizeInput(r.FormValue("folder")),
		OriginalName: sanitizeInput(header.Filename),
		ContentType:  header.Header.Get("Content-Type"),
		Body:         file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Write(w, att)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := sanitizeInput(r.URL.Query().Get("q"))
	found, err := s.catalog.Search(r.Context(), query, searchLimit)
	if errors.Is(err, services.ErrEmptyQuery) {
		NewJSONResponse().Status(http.StatusBadRequest).Write(w, errorBody{Error: "search query is required"})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Write(w, found)
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := s.catalog.Backup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := "berdoz-backup-" + time.Now().UTC().Format("20060102-150405") + ".json"
	NewJSONResponse().
		Header("Content-Disposition", `attachment; filename="`+filename+`"`).
		Write(w, backup)
}

type restoreResponse struct {
	Message  string         `json:"message"`
	Restored map[string]int `json:"restored"`
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	var backup services.Backup
	if err := decodeJSON(w, r, maxRestoreBody, &backup); err != nil {
		writeError(w, r, err)
		return
	}
	counts, err := s.catalog.Restore(r.Context(), backup)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Restore stopped",
			applog.FieldOperation, applog.OpRestore, "restored", counts, applog.FieldError, err.Error())
		writeError(w, r, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Backup restored",
		applog.FieldOperation, applog.OpRestore, "restored", counts)
	NewJSONResponse().Write(w, restoreResponse{Message: "backup restored", Restored: counts})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", applog.FieldError, err.Error())
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
