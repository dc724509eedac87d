package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"pedidos/internal/log"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("List categories failed", "error", err)
		writeStoreError(w, err)
		return
	}

	out := make([]categoryPayload, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryPayload(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := payload.toDomain(uuid.NewString(), false, time.Now().UnixMilli())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateCategory(r.Context(), category); err != nil {
		log.FromContext(r.Context()).Error("Create category failed", "error", err, "label", category.Label)
		writeStoreError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusCreated, toCategoryPayload(category))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	var existing *categoryPayload
	for _, c := range categories {
		if c.ID == id {
			p := toCategoryPayload(c)
			existing = &p
			break
		}
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := payload.toDomain(id, existing.IsDefault, existing.CreatedAt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpdateCategory(r.Context(), category); err != nil {
		log.FromContext(r.Context()).Error("Update category failed", "error", err, "id", id)
		writeStoreError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusOK, toCategoryPayload(category))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteCategory(r.Context(), id); err != nil {
		log.FromContext(r.Context()).Error("Delete category failed", "error", err, "id", id)
		writeStoreError(w, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
