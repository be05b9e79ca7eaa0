package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/expertlens/internal/app"
)

// multipart overhead allowed on top of the file size limit.
const multipartSlack = 64 << 10

// UploadDependencies defines the interface for upload processing.
type UploadDependencies interface {
	Upload(ctx context.Context, filename string, raw []byte) (service.UploadResult, error)
}

// UploadHandler handles identifier file uploads.
type UploadHandler struct {
	deps     UploadDependencies
	maxBytes int64
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(deps UploadDependencies, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultLimits().MaxUploadBytes
	}
	return &UploadHandler{deps: deps, maxBytes: maxBytes}
}

// HandleUpload handles POST /api/upload with a multipart "file" field.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartSlack)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeKindError(w, WrapKind(op, ErrTooLarge, err))
		case errors.Is(err, http.ErrMissingFile):
			writeKindError(w, NewKind(op, ErrMissingFile))
		default:
			writeKindError(w, WrapKind(op, ErrBadRequest, err))
		}
		return
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if int64(len(raw)) > h.maxBytes {
		writeKindError(w, NewKind(op, ErrTooLarge))
		return
	}

	res, err := h.deps.Upload(r.Context(), header.Filename, raw)
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:     true,
		Message:     fmt.Sprintf("uploaded %d talent ids", res.TalentCount),
		TalentCount: res.TalentCount,
		SessionID:   res.SessionID,
	})
}
