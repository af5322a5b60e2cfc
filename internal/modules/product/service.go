package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sellora/marketplace-backend/internal/modules/quota"
	"github.com/sellora/marketplace-backend/internal/modules/vendor"
	"github.com/sellora/marketplace-backend/internal/pkg/metrics"
)

// Gate is the quota decision surface the orchestrator consults before every
// vendor mutation. Satisfied by *quota.Gate.
type Gate interface {
	CanAdd(ctx context.Context, vendorID uuid.UUID) (bool, error)
	CanEdit(ctx context.Context, vendorID uuid.UUID) (quota.Decision, error)
	CanDelete(ctx context.Context, vendorID uuid.UUID) (quota.Decision, error)
}

// UsageCounter is the write side of the counter store the orchestrator bumps
// after a successful edit or delete. Satisfied by quota.CounterStore.
type UsageCounter interface {
	IncrementEditUsed(ctx context.Context, vendorID uuid.UUID) error
	IncrementDeleteUsed(ctx context.Context, vendorID uuid.UUID) error
}

// Service defines product business logic. Vendor-facing mutations take the
// acting vendor from the session, never from the request payload.
type Service interface {
	AddProduct(ctx context.Context, actor *vendor.Vendor, req CreateProductRequest) (*Product, error)
	EditProduct(ctx context.Context, actor *vendor.Vendor, productID string, req CreateProductRequest) (*Product, error)
	PreviewDelete(ctx context.Context, actor *vendor.Vendor, productID string) (*DeletePreview, error)
	DeleteProduct(ctx context.Context, actor *vendor.Vendor, productID string) error
	ListVendorProducts(ctx context.Context, actor *vendor.Vendor) ([]*Product, error)

	ListProducts(ctx context.Context) ([]*Product, error)
	AdminDeleteProduct(ctx context.Context, productID string) error
}

// CreateProductRequest holds the vendor-supplied product fields. Vendor
// identity and the denormalized vendor display fields are stamped by the
// service, not taken from the request.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// DeletePreview is shown to the vendor before a delete is confirmed: which
// product, and the counter value the delete will reach.
type DeletePreview struct {
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	Used               int       `json:"used"`
	Limit              int       `json:"limit"`
	CounterAfterDelete int       `json:"counter_after_delete"`
}

type service struct {
	repo     Repository
	gate     Gate
	counters UsageCounter
	logger   *zap.Logger
	metrics  *metrics.PortalMetrics
}

// NewService creates a new product service. metrics may be nil in tests.
func NewService(repo Repository, gate Gate, counters UsageCounter, logger *zap.Logger, m *metrics.PortalMetrics) Service {
	return &service{repo: repo, gate: gate, counters: counters, logger: logger, metrics: m}
}

// AddProduct creates a product for the acting vendor. The product limit is
// re-checked against the store at call time; add has no usage counter, only
// a capacity ceiling, so nothing is incremented on success.
func (s *service) AddProduct(ctx context.Context, actor *vendor.Vendor, req CreateProductRequest) (*Product, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	ok, err := s.gate.CanAdd(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !ok {
		s.countDenial("add")
		return nil, ErrProductLimitReached
	}

	currency := req.Currency
	if currency == "" {
		currency = "IQD"
	}
	p := &Product{
		ID:             uuid.New(),
		VendorID:       actor.ID,
		VendorName:     actor.Name,
		VendorLogoURL:  actor.LogoURL,
		VendorLocation: actor.StoreLocation,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       currency,
		ImageURL:       req.ImageURL,
		Category:       req.Category,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.countMutation("add", "error")
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.countMutation("add", "ok")
	return p, nil
}

// EditProduct updates a product owned by the acting vendor. Ownership is
// checked before the quota gate; the edit counter is incremented only after
// the update succeeds, and an increment failure never rolls the edit back.
func (s *service) EditProduct(ctx context.Context, actor *vendor.Vendor, productID string, req CreateProductRequest) (*Product, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.VendorID != actor.ID {
		s.countOwnershipViolation()
		return nil, ErrOwnershipViolation
	}

	dec, err := s.gate.CanEdit(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !dec.Allowed {
		s.countDenial("edit")
		return nil, &QuotaError{Action: "edit", Used: dec.Used, Limit: dec.Limit}
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	if req.Currency != "" {
		p.Currency = req.Currency
	}
	p.ImageURL = req.ImageURL
	p.Category = req.Category

	// Re-stamp the vendor snapshot so the record cannot drift away from its
	// owner on update.
	p.VendorName = actor.Name
	if actor.LogoURL != "" {
		p.VendorLogoURL = actor.LogoURL
	}
	if actor.StoreLocation != "" {
		p.VendorLocation = actor.StoreLocation
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.countMutation("edit", "error")
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.countMutation("edit", "ok")

	if err := s.counters.IncrementEditUsed(ctx, actor.ID); err != nil {
		// The edit is already durable; the counter drift is tolerated.
		s.countSyncFailure("edit")
		s.logger.Warn("edit counter increment failed after successful update",
			zap.String("vendor_id", actor.ID.String()),
			zap.String("product_id", p.ID.String()),
			zap.Error(err),
		)
	}
	return p, nil
}

// PreviewDelete resolves the confirmation prompt for a delete: it performs
// the same ownership and quota reads as the delete itself but mutates nothing.
func (s *service) PreviewDelete(ctx context.Context, actor *vendor.Vendor, productID string) (*DeletePreview, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.VendorID != actor.ID {
		s.countOwnershipViolation()
		return nil, ErrOwnershipViolation
	}

	dec, err := s.gate.CanDelete(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !dec.Allowed {
		s.countDenial("delete")
		return nil, &QuotaError{Action: "delete", Used: dec.Used, Limit: dec.Limit}
	}

	return &DeletePreview{
		ProductID:          p.ID,
		ProductName:        p.Name,
		Used:               dec.Used,
		Limit:              dec.Limit,
		CounterAfterDelete: dec.Used + 1,
	}, nil
}

// DeleteProduct removes a product owned by the acting vendor. The delete
// counter moves only after the delete succeeds; if the increment itself
// fails the product stays deleted and the operation still reports success.
func (s *service) DeleteProduct(ctx context.Context, actor *vendor.Vendor, productID string) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return ErrNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.VendorID != actor.ID {
		s.countOwnershipViolation()
		return ErrOwnershipViolation
	}

	dec, err := s.gate.CanDelete(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("quota check: %w", err)
	}
	if !dec.Allowed {
		s.countDenial("delete")
		return &QuotaError{Action: "delete", Used: dec.Used, Limit: dec.Limit}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.countMutation("delete", "error")
		return fmt.Errorf("delete product: %w", err)
	}
	s.countMutation("delete", "ok")

	if err := s.counters.IncrementDeleteUsed(ctx, actor.ID); err != nil {
		s.countSyncFailure("delete")
		s.logger.Warn("delete counter increment failed after successful delete",
			zap.String("vendor_id", actor.ID.String()),
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (s *service) ListVendorProducts(ctx context.Context, actor *vendor.Vendor) ([]*Product, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByVendor(ctx, actor.ID)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// AdminDeleteProduct removes any product without consulting the quota gate;
// the administrative surface is unrestricted.
func (s *service) AdminDeleteProduct(ctx context.Context, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) countMutation(action, outcome string) {
	if s.metrics != nil {
		s.metrics.MutationsTotal.WithLabelValues(action, outcome).Inc()
	}
}

func (s *service) countDenial(action string) {
	if s.metrics != nil {
		s.metrics.QuotaDenialsTotal.WithLabelValues(action).Inc()
	}
}

func (s *service) countSyncFailure(action string) {
	if s.metrics != nil {
		s.metrics.CounterSyncFailures.WithLabelValues(action).Inc()
	}
}

func (s *service) countOwnershipViolation() {
	if s.metrics != nil {
		s.metrics.OwnershipViolations.Inc()
	}
}
