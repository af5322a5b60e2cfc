package vendorhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sellora/marketplace-backend/internal/modules/auth"
	"github.com/sellora/marketplace-backend/internal/modules/quota"
	"github.com/sellora/marketplace-backend/internal/modules/vendor"
)

// QuotaReader is the decision surface the dashboard renders. Satisfied by
// *quota.Gate.
type QuotaReader interface {
	CanAdd(ctx context.Context, vendorID uuid.UUID) (bool, error)
	CanEdit(ctx context.Context, vendorID uuid.UUID) (quota.Decision, error)
	CanDelete(ctx context.Context, vendorID uuid.UUID) (quota.Decision, error)
}

type Handler struct {
	service vendor.Service
	gate    QuotaReader
}

func NewHandler(service vendor.Service, gate QuotaReader) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(router *chi.Mux, requireVendor func(http.Handler) http.Handler) {
	router.Group(func(r chi.Router) {
		r.Use(requireVendor)
		r.Get("/vendor/me", h.getProfile)
		r.Put("/vendor/profile", h.updateProfile)
		r.Get("/vendor/quota", h.getQuota)
	})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	actor := auth.VendorFrom(r.Context())
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	v, err := h.service.GetProfile(r.Context(), actor.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, vendor.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	actor := auth.VendorFrom(r.Context())
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req vendor.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.service.UpdateProfile(r.Context(), actor.ID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) getQuota(w http.ResponseWriter, r *http.Request) {
	actor := auth.VendorFrom(r.Context())
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	type response struct {
		CanAdd bool           `json:"can_add"`
		Edit   quota.Decision `json:"edit"`
		Delete quota.Decision `json:"delete"`
	}

	canAdd, err := h.gate.CanAdd(r.Context(), actor.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	edit, err := h.gate.CanEdit(r.Context(), actor.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	del, err := h.gate.CanDelete(r.Context(), actor.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response{CanAdd: canAdd, Edit: edit, Delete: del})
}
