package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/fitjournal/internal/auth"
	"example.com/fitjournal/internal/domain"
	"example.com/fitjournal/internal/observability"
)

// resourceBinding supplies the kind-specific pieces of a CRUD endpoint:
// request parsing/validation and the response shape.
type resourceBinding[T any, P any] struct {
	kind string
	// create parses and validates the POST body into a new domain record.
	create func(r *http.Request) (T, error)
	// patch parses and validates the PATCH body.
	patch func(r *http.Request) (P, error)
	// view converts a stored record to its response shape.
	view func(T) any
}

// resourceHandler serves the uniform CRUD contract for one resource kind.
// The ownership scope comes exclusively from the authenticated user on the
// request context; client input never chooses the owner.
type resourceHandler[T any, P any] struct {
	repo    domain.OwnedRepository[T, P]
	binding resourceBinding[T, P]
}

func newResourceHandler[T any, P any](repo domain.OwnedRepository[T, P], binding resourceBinding[T, P]) *resourceHandler[T, P] {
	return &resourceHandler[T, P]{repo: repo, binding: binding}
}

// register wires the collection and item endpoints under prefix, which must
// end in a slash (e.g. "/api/exercises/").
func (h *resourceHandler[T, P]) register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, prefix)
		if rest == "" {
			h.collection(w, r)
			return
		}
		h.item(w, r, rest)
	})
}

func (h *resourceHandler[T, P]) collection(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.create(w, r, owner.ID)
	case http.MethodGet:
		h.list(w, r, owner.ID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *resourceHandler[T, P]) item(w http.ResponseWriter, r *http.Request, rawID string) {
	owner, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid resource id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, owner.ID, id)
	case http.MethodPatch:
		h.update(w, r, owner.ID, id)
	case http.MethodDelete:
		h.delete(w, r, owner.ID, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *resourceHandler[T, P]) create(w http.ResponseWriter, r *http.Request, ownerID int64) {
	item, err := h.binding.create(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	created, err := h.repo.Create(r.Context(), ownerID, item)
	if err != nil {
		serverError(w, err)
		return
	}

	observability.RecordResourceWrite(h.binding.kind, "create")
	writeJSON(w, http.StatusCreated, h.binding.view(*created))
}

func (h *resourceHandler[T, P]) list(w http.ResponseWriter, r *http.Request, ownerID int64) {
	items, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		serverError(w, err)
		return
	}

	views := make([]any, 0, len(items))
	for _, item := range items {
		views = append(views, h.binding.view(item))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *resourceHandler[T, P]) get(w http.ResponseWriter, r *http.Request, ownerID, id int64) {
	item, err := h.repo.Get(r.Context(), ownerID, id)
	if err != nil {
		notFoundOrServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.binding.view(*item))
}

func (h *resourceHandler[T, P]) update(w http.ResponseWriter, r *http.Request, ownerID, id int64) {
	patch, err := h.binding.patch(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	updated, err := h.repo.Update(r.Context(), ownerID, id, patch)
	if err != nil {
		notFoundOrServerError(w, err)
		return
	}

	observability.RecordResourceWrite(h.binding.kind, "update")
	writeJSON(w, http.StatusOK, h.binding.view(*updated))
}

func (h *resourceHandler[T, P]) delete(w http.ResponseWriter, r *http.Request, ownerID, id int64) {
	if err := h.repo.Delete(r.Context(), ownerID, id); err != nil {
		notFoundOrServerError(w, err)
		return
	}

	observability.RecordResourceWrite(h.binding.kind, "delete")
	w.WriteHeader(http.StatusNoContent)
}

func badRequest(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadBody) {
		writeError(w, http.StatusBadRequest, "invalid_request", errBadBody.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
}

func notFoundOrServerError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	serverError(w, err)
}
