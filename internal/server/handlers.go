package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cv-analyzer/internal/pipeline"
	"github.com/jonathan/cv-analyzer/internal/present"
	"github.com/jonathan/cv-analyzer/internal/session"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// maxUploadBytes bounds the total size of one upload batch.
const maxUploadBytes = 64 << 20

// handleCreateBatch accepts a multipart upload of CV documents, runs the
// analysis pipeline, stores the result, and returns the full view.
func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		err := &ErrInvalidUpload{Reason: "at least one file is required (field name: files)"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	docs := make([]types.Document, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to open uploaded file: "+err.Error())
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file: "+err.Error())
			return
		}

		docs = append(docs, types.Document{
			Name:      header.Filename,
			MediaType: declaredMediaType(header.Header.Get("Content-Type"), header.Filename),
			Data:      data,
		})
	}

	result, err := pipeline.Run(r.Context(), docs, pipeline.Options{
		Classifier:  s.classifier,
		Weights:     s.weights,
		MaxTokens:   s.maxTokens,
		Concurrency: s.concurrency,
		Extract:     s.extractFn,
		Logger:      s.logger,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	batch := &session.Batch{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		View:      nil,
	}
	batch.View = present.BuildView(batch.ID, result)
	s.store.Put(batch)

	if s.db != nil {
		if err := s.db.SaveBatch(r.Context(), batch.ID, batch.CreatedAt, result.Ranked); err != nil {
			// History is best-effort; the computed view is already served.
			s.logger.Error("failed to persist batch", zap.String("batch", batch.ID.String()), zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, batch.View)
}

// handleGetBatch returns a previously computed analysis view.
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := s.batchID(w, r)
	if !ok {
		return
	}

	batch, found := s.store.Get(id)
	if !found {
		err := &ErrBatchNotFound{BatchID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, batch.View)
}

// handleGetChart returns the bar-chart dataset of one batch.
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id, ok := s.batchID(w, r)
	if !ok {
		return
	}

	batch, found := s.store.Get(id)
	if !found {
		err := &ErrBatchNotFound{BatchID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if batch.View.Chart == nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{"message": present.NoCandidatesMessage})
		return
	}
	s.jsonResponse(w, http.StatusOK, batch.View.Chart)
}

// handleListBatches returns stored batch summaries.
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		batches, err := s.db.ListBatches(r.Context(), 100)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"batches": batches})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"batches": s.store.List()})
}

// handleDeleteBatch is the reset action for one batch: it discards the
// stored documents' results wholesale.
func (s *Server) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := s.batchID(w, r)
	if !ok {
		return
	}

	existed := s.store.Delete(id)
	if s.db != nil {
		if err := s.db.DeleteBatch(r.Context(), id); err != nil {
			s.logger.Error("failed to delete persisted batch", zap.String("batch", id.String()), zap.Error(err))
		}
	}
	if !existed {
		err := &ErrBatchNotFound{BatchID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleClearBatches resets the whole session store to its initial empty
// state.
func (s *Server) handleClearBatches(w http.ResponseWriter, _ *http.Request) {
	s.store.Clear()
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// batchID parses the path's batch ID, writing a 400 on failure.
func (s *Server) batchID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid batch ID")
		return uuid.Nil, false
	}
	return id, true
}

// declaredMediaType returns the uploaded part's content type, falling back
// to the file extension when the client sent none or the generic
// octet-stream type.
func declaredMediaType(contentType, filename string) string {
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return types.MediaTypePDF
	case ".docx":
		return types.MediaTypeDOCX
	default:
		return contentType
	}
}
