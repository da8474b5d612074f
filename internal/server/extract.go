package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/idocr/idocr/constants"
	"github.com/idocr/idocr/internal/common"
	"github.com/idocr/idocr/internal/pipeline"
)

// maxUploadBytes caps in-memory multipart parsing at 32 MiB.
const maxUploadBytes = 32 << 20

type extractFn func(ctx context.Context, data []byte) (pipeline.Result, error)

func (s *Server) handleExtractImage(w http.ResponseWriter, r *http.Request) {
	s.handleExtract(w, r, constants.IsImageMediaType, s.pipeline.ExtractImage)
}

func (s *Server) handleExtractPDF(w http.ResponseWriter, r *http.Request) {
	s.handleExtract(w, r, constants.IsPDFMediaType, s.pipeline.ExtractPDF)
}

// handleExtract validates the upload, then hands the bytes to the pipeline.
// Input validation failures are 400s and never touch a pipeline stage; every
// mid-pipeline failure becomes a 500 carrying the error's message.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request, acceptType func(string) bool, extract extractFn) {
	rid := uuid.New().String()
	start := time.Now()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Warn("server.upload_close_failed", "req_id", rid, "error", err)
		}
	}()

	mediaType := header.Header.Get("Content-Type")
	if !acceptType(mediaType) {
		s.writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}

	s.logger.Info("server.extract.start",
		"req_id", rid,
		"path", r.URL.Path,
		"filename", header.Filename,
		"media_type", mediaType,
		"bytes", len(data),
	)

	result, err := extract(r.Context(), data)
	if err != nil {
		s.logger.Error("server.extract.failed",
			"req_id", rid,
			"path", r.URL.Path,
			"stage", stageName(err),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("server.extract.ok",
		"req_id", rid,
		"path", r.URL.Path,
		"execution_time", result.ExecutionTime,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	s.writeJSON(w, http.StatusOK, result)
}

// stageName maps a pipeline error to its stage kind for logs.
func stageName(err error) string {
	switch {
	case errors.Is(err, common.ErrDecode):
		return "decode"
	case errors.Is(err, common.ErrOCR):
		return "ocr"
	case errors.Is(err, common.ErrLLM):
		return "llm"
	case errors.Is(err, common.ErrParse):
		return "parse"
	default:
		return "unknown"
	}
}
