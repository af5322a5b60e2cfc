package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellora/marketplace-backend/internal/modules/auth"
	"github.com/sellora/marketplace-backend/internal/modules/quota"
	"github.com/sellora/marketplace-backend/internal/modules/vendor"
	"github.com/sellora/marketplace-backend/internal/pkg/slug"
)

var (
	// ErrInvalidLimit is returned when an admin submits a negative limit.
	ErrInvalidLimit = errors.New("limits must be non-negative")

	// ErrWeakPassword mirrors the signup rule for admin-set passwords.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// Service defines the administrative surface: vendor limits and credentials,
// counter resets, denormalized-field sync, and slug backfill.
type Service interface {
	ListVendors(ctx context.Context) ([]*vendor.Vendor, error)
	GetVendor(ctx context.Context, vendorID uuid.UUID) (*vendor.Vendor, error)
	UpdateVendor(ctx context.Context, vendorID uuid.UUID, req UpdateVendorRequest) (*vendor.Vendor, error)

	ResetEditCounter(ctx context.Context, vendorID uuid.UUID) error
	ResetDeleteCounter(ctx context.Context, vendorID uuid.UUID) error
	ResetPassword(ctx context.Context, vendorID uuid.UUID, newPassword string) error

	SyncVendorProducts(ctx context.Context, vendorID uuid.UUID) (*SyncResult, error)
	SyncAllVendorProducts(ctx context.Context) (*SyncReport, error)
	MigrateSlugs(ctx context.Context) (*SlugMigrationReport, error)

	ListActions(ctx context.Context, limit int) ([]*AdminAction, error)
}

// UpdateVendorRequest holds the vendor fields an administrator may change.
// Nil pointers leave the current value untouched.
type UpdateVendorRequest struct {
	Name          string  `json:"name"`
	PhoneNumber   string  `json:"phone_number"`
	StoreLocation string  `json:"store_location"`
	Username      string  `json:"username"`
	GmailAccount  string  `json:"gmail_account"`
	LogoURL       *string `json:"logo_url"`

	ProductLimit       *int `json:"product_limit"`
	EditProductLimit   *int `json:"edit_product_limit"`
	DeleteProductLimit *int `json:"delete_product_limit"`
}

// SyncResult reports the outcome of re-stamping one vendor's products.
type SyncResult struct {
	VendorID        uuid.UUID `json:"vendor_id"`
	VendorName      string    `json:"vendor_name,omitempty"`
	Status          string    `json:"status"` // success, skipped, error
	ProductsUpdated int       `json:"products_updated"`
	Reason          string    `json:"reason,omitempty"`
}

// SyncReport aggregates sync results across vendors.
type SyncReport struct {
	VendorsProcessed int           `json:"vendors_processed"`
	Results          []*SyncResult `json:"results"`
}

// SlugMigrationReport summarizes a slug backfill pass.
type SlugMigrationReport struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type service struct {
	vendors  vendor.Repository
	counters quota.CounterStore
	accounts auth.AccountRepository
	syncer   vendor.ProductSyncer
	audit    AuditRepository
	logger   *zap.Logger
}

// NewService creates a new admin service.
func NewService(vendors vendor.Repository, counters quota.CounterStore, accounts auth.AccountRepository, syncer vendor.ProductSyncer, audit AuditRepository, logger *zap.Logger) Service {
	return &service{
		vendors:  vendors,
		counters: counters,
		accounts: accounts,
		syncer:   syncer,
		audit:    audit,
		logger:   logger,
	}
}

func (s *service) ListVendors(ctx context.Context) ([]*vendor.Vendor, error) {
	vendors, err := s.vendors.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		count, err := s.counters.CountVendorProducts(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.ProductsCount = count
	}
	return vendors, nil
}

func (s *service) GetVendor(ctx context.Context, vendorID uuid.UUID) (*vendor.Vendor, error) {
	v, err := s.vendors.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	count, err := s.counters.CountVendorProducts(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	v.ProductsCount = count
	return v, nil
}

// UpdateVendor applies profile and limit changes. Changing a limit never
// touches the corresponding used counter; lowering a limit below historical
// usage just reads as blocked at the gate until a reset.
func (s *service) UpdateVendor(ctx context.Context, vendorID uuid.UUID, req UpdateVendorRequest) (*vendor.Vendor, error) {
	for _, l := range []*int{req.ProductLimit, req.EditProductLimit, req.DeleteProductLimit} {
		if l != nil && *l < 0 {
			return nil, ErrInvalidLimit
		}
	}

	v, err := s.vendors.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		v.Name = req.Name
		v.Slug = slug.Make(req.Name)
	}
	if req.PhoneNumber != "" {
		v.PhoneNumber = req.PhoneNumber
	}
	if req.StoreLocation != "" {
		v.StoreLocation = req.StoreLocation
	}
	if req.Username != "" {
		v.Username = req.Username
	}
	if req.GmailAccount != "" {
		v.GmailAccount = req.GmailAccount
	}
	if req.LogoURL != nil {
		v.LogoURL = *req.LogoURL
	}
	if req.ProductLimit != nil {
		v.ProductLimit = *req.ProductLimit
	}
	if req.EditProductLimit != nil {
		v.EditProductLimit = *req.EditProductLimit
	}
	if req.DeleteProductLimit != nil {
		v.DeleteProductLimit = *req.DeleteProductLimit
	}

	if err := s.vendors.UpdateVendor(ctx, v); err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}

	if _, err := s.syncer.RestampVendorProducts(ctx, v.ID, v.Name, v.LogoURL, v.StoreLocation); err != nil {
		s.logger.Warn("product restamp failed after admin vendor update",
			zap.String("vendor_id", v.ID.String()),
			zap.Error(err),
		)
	}

	count, err := s.counters.CountVendorProducts(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.ProductsCount = count
	return v, nil
}

// ResetEditCounter zeroes edit_product_used; the limit is untouched.
func (s *service) ResetEditCounter(ctx context.Context, vendorID uuid.UUID) error {
	if err := s.counters.ResetEditUsed(ctx, vendorID); err != nil {
		return err
	}
	s.record(ctx, "reset_edit_counter", vendorID, "edit_product_used set to 0")
	return nil
}

// ResetDeleteCounter zeroes delete_product_used; the limit is untouched.
func (s *service) ResetDeleteCounter(ctx context.Context, vendorID uuid.UUID) error {
	if err := s.counters.ResetDeleteUsed(ctx, vendorID); err != nil {
		return err
	}
	s.record(ctx, "reset_delete_counter", vendorID, "delete_product_used set to 0")
	return nil
}

// ResetPassword sets a vendor's password without requiring the old one.
func (s *service) ResetPassword(ctx context.Context, vendorID uuid.UUID, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	v, err := s.vendors.GetVendorByID(ctx, vendorID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, v.AccountID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.record(ctx, "password_reset", vendorID, "")
	return nil
}

func (s *service) SyncVendorProducts(ctx context.Context, vendorID uuid.UUID) (*SyncResult, error) {
	v, err := s.vendors.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return s.syncOne(ctx, v), nil
}

func (s *service) SyncAllVendorProducts(ctx context.Context) (*SyncReport, error) {
	vendors, err := s.vendors.ListVendors(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{VendorsProcessed: len(vendors)}
	for _, v := range vendors {
		report.Results = append(report.Results, s.syncOne(ctx, v))
	}
	return report, nil
}

func (s *service) syncOne(ctx context.Context, v *vendor.Vendor) *SyncResult {
	result := &SyncResult{VendorID: v.ID, VendorName: v.Name}

	updated, err := s.syncer.RestampVendorProducts(ctx, v.ID, v.Name, v.LogoURL, v.StoreLocation)
	if err != nil {
		result.Status = "error"
		result.Reason = err.Error()
		s.logger.Warn("vendor product sync failed", zap.String("vendor_id", v.ID.String()), zap.Error(err))
		return result
	}
	if updated == 0 {
		result.Status = "skipped"
		result.Reason = "no products"
		return result
	}

	result.Status = "success"
	result.ProductsUpdated = updated
	return result
}

// MigrateSlugs backfills slugs for vendors missing one or whose slug is
// stale relative to the current name.
func (s *service) MigrateSlugs(ctx context.Context) (*SlugMigrationReport, error) {
	vendors, err := s.vendors.ListVendors(ctx)
	if err != nil {
		return nil, err
	}

	report := &SlugMigrationReport{}
	for _, v := range vendors {
		want := slug.Make(v.Name)
		if v.Slug == want {
			report.Skipped++
			continue
		}
		v.Slug = want
		if err := s.vendors.UpdateVendor(ctx, v); err != nil {
			return report, fmt.Errorf("update vendor %s: %w", v.ID, err)
		}
		report.Updated++
	}
	return report, nil
}

func (s *service) ListActions(ctx context.Context, limit int) ([]*AdminAction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.audit.ListActions(ctx, limit)
}

// record writes an audit row; audit failures are logged, not propagated, so
// the underlying admin action stands.
func (s *service) record(ctx context.Context, action string, vendorID uuid.UUID, detail string) {
	err := s.audit.RecordAction(ctx, &AdminAction{
		ID:       uuid.New(),
		Action:   action,
		VendorID: vendorID,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("audit record failed",
			zap.String("action", action),
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err),
		)
	}
}
