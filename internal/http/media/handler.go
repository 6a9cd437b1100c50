package media

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flowquote/flowquote/internal/http/respond"
)

type Resolver interface {
	Resolve(ctx context.Context, refs []string) []*string
}

type Handler struct {
	resolver Resolver
}

func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/resolve", h.resolve)
}

type resolveRequest struct {
	Refs json.RawMessage `json:"refs"`
}

type resolveResponse struct {
	URLs []*string `json:"urls"`
}

// resolve turns stored media references into loadable URLs. Entries that are
// not strings resolve to null so the response stays index aligned.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	var raw []any
	if err := json.Unmarshal(req.Refs, &raw); err != nil || raw == nil {
		respond.Message(w, http.StatusBadRequest, "refs must be an array")
		return
	}

	refs := make([]string, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			refs[i] = s
		}
	}

	respond.JSON(w, http.StatusOK, resolveResponse{URLs: h.resolver.Resolve(r.Context(), refs)})
}
