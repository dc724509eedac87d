package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"pedidos/internal/log"
)

func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := s.store.ListPurchases(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("List purchases failed", "error", err)
		writeStoreError(w, err)
		return
	}

	now := time.Now()
	out := make([]purchasePayload, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchasePayload(p, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var payload purchasePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	purchase, err := payload.toDomain(uuid.NewString(), time.Now().UnixMilli())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreatePurchase(r.Context(), purchase); err != nil {
		log.FromContext(r.Context()).Error("Create purchase failed", "error", err, "dish", purchase.Dish)
		writeStoreError(w, err)
		return
	}

	s.invalidateStats()
	s.publishSync(r, purchase.ID, 1)

	writeJSON(w, http.StatusCreated, toPurchasePayload(purchase, time.Now()))
}

func (s *Server) handleUpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := s.store.GetPurchase(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var payload purchasePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Full replace; creation timestamp survives the rewrite.
	purchase, err := payload.toDomain(id, existing.CreatedAt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpdatePurchase(r.Context(), purchase); err != nil {
		log.FromContext(r.Context()).Error("Update purchase failed", "error", err, "id", id)
		writeStoreError(w, err)
		return
	}

	s.invalidateStats()
	// Version is unknown here; the reconciliation scan exports the exact
	// version and settles the sync status.
	s.publishSync(r, id, 0)

	writeJSON(w, http.StatusOK, toPurchasePayload(purchase, time.Now()))
}

func (s *Server) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeletePurchase(r.Context(), id); err != nil {
		log.FromContext(r.Context()).Error("Delete purchase failed", "error", err, "id", id)
		writeStoreError(w, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}

// publishSync is best-effort: a down broker never fails the mutation.
func (s *Server) publishSync(r *http.Request, id string, version int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPurchaseSync(r.Context(), id, version); err != nil {
		log.FromContext(r.Context()).Warn("Failed to publish sync message", "error", err, "id", id)
	}
}
