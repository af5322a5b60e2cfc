package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sellora/marketplace-backend/internal/modules/quota"
	"github.com/sellora/marketplace-backend/internal/modules/vendor"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux, requireAdmin func(http.Handler) http.Handler) {
	router.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/admin/vendors", h.listVendors)
		r.Get("/admin/vendors/{id}", h.getVendor)
		r.Put("/admin/vendors/{id}", h.updateVendor)
		r.Post("/admin/vendors/{id}/reset-edit-counter", h.resetEditCounter)
		r.Post("/admin/vendors/{id}/reset-delete-counter", h.resetDeleteCounter)
		r.Post("/admin/vendors/{id}/reset-password", h.resetPassword)
		r.Post("/admin/vendors/{id}/sync-products", h.syncVendor)
		r.Post("/admin/sync-products", h.syncAll)
		r.Post("/admin/migrate-slugs", h.migrateSlugs)
		r.Get("/admin/actions", h.listActions)
	})
}

func vendorID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, vendor.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidLimit), errors.Is(err, ErrWeakPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.service.ListVendors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendors)
}

func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	id, err := vendorID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.service.GetVendor(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := vendorID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req UpdateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.service.UpdateVendor(r.Context(), id, req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) resetEditCounter(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.service.ResetEditCounter)
}

func (h *Handler) resetDeleteCounter(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.service.ResetDeleteCounter)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) error) {
	id, err := vendorID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := fn(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, quota.ErrVendorNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := vendorID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	type request struct {
		NewPassword string `json:"new_password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) syncVendor(w http.ResponseWriter, r *http.Request) {
	id, err := vendorID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.SyncVendorProducts(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) syncAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.SyncAllVendorProducts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *Handler) migrateSlugs(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.MigrateSlugs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *Handler) listActions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	actions, err := h.service.ListActions(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(actions)
}
