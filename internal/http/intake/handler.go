package intake

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/http/respond"
	"github.com/flowquote/flowquote/internal/media"
	"github.com/flowquote/flowquote/internal/request"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=intake
type Service interface {
	Submit(ctx context.Context, params request.SubmitParams) (*request.Request, error)
}

type Handler struct {
	svc      Service
	maxBytes int64
}

// NewHandler builds the public intake handler. maxBytes caps the whole
// multipart body, files included.
func NewHandler(svc Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submit)
}

type submitResponse struct {
	Success   bool      `json:"success"`
	RequestID uuid.UUID `json:"requestId"`
}

// memoryLimit is how much of the form is held in memory before spilling
// file parts to disk.
const memoryLimit = 10 << 20

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBytes {
		respond.Message(w, http.StatusRequestEntityTooLarge, "Upload too large")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Message(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}

		respond.Message(w, http.StatusBadRequest, "Invalid form data")

		return
	}
	defer r.MultipartForm.RemoveAll()

	businessID, err := uuid.Parse(r.FormValue("businessId"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Business is required")
		return
	}

	files, closeAll, err := openFiles(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid file upload")
		return
	}
	defer closeAll()

	req, err := h.svc.Submit(r.Context(), request.SubmitParams{
		BusinessID:    businessID,
		ClientName:    r.FormValue("clientName"),
		ClientEmail:   r.FormValue("clientEmail"),
		ClientPhone:   r.FormValue("clientPhone"),
		ClientAddress: r.FormValue("clientAddress"),
		ProblemDesc:   r.FormValue("problemDesc"),
		Files:         files,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, submitResponse{Success: true, RequestID: req.ID})
}

// openFiles opens the "files" parts in the order the client sent them.
// Empty parts, as sent by a blank file input, are skipped.
func openFiles(r *http.Request) ([]media.File, func(), error) {
	headers := r.MultipartForm.File["files"]

	var (
		files   = make([]media.File, 0, len(headers))
		closers = make([]io.Closer, 0, len(headers))
	)

	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close upload", "error", err)
			}
		}
	}

	for _, fh := range headers {
		if fh.Size == 0 && fh.Filename == "" {
			continue
		}

		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}

		closers = append(closers, f)
		files = append(files, media.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	return files, closeAll, nil
}
