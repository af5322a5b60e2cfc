package product

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sellora/marketplace-backend/internal/modules/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux, requireVendor, requireAdmin func(http.Handler) http.Handler) {
	// Public storefront listing.
	router.Get("/products", h.listAll)

	router.Group(func(r chi.Router) {
		r.Use(requireVendor)
		r.Get("/vendor/products", h.listOwn)
		r.Post("/vendor/products", h.add)
		r.Put("/vendor/products/{id}", h.edit)
		r.Delete("/vendor/products/{id}", h.delete)
	})

	router.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Delete("/admin/products/{id}", h.adminDelete)
	})
}

func statusFor(err error) int {
	var qe *QuotaError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOwnershipViolation):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrProductLimitReached), errors.As(err, &qe):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListVendorProducts(r.Context(), auth.VendorFrom(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.service.AddProduct(r.Context(), auth.VendorFrom(r.Context()), req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.service.EditProduct(r.Context(), auth.VendorFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// delete requires confirm=true. Without it the handler answers with the
// confirmation prompt: the product's name and the counter value the delete
// will reach.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.VendorFrom(r.Context())
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("confirm") != "true" {
		preview, err := h.service.PreviewDelete(r.Context(), actor, id)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPreconditionRequired)
		json.NewEncoder(w).Encode(preview)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), actor, id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.AdminDeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
