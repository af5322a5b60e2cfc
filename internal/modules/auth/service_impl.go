package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellora/marketplace-backend/internal/modules/vendor"
	"github.com/sellora/marketplace-backend/internal/pkg/metrics"
	"github.com/sellora/marketplace-backend/internal/pkg/slug"
)

// ProductCounter reads the live owned-product count for a vendor.
// Satisfied by quota.CounterStore.
type ProductCounter interface {
	CountVendorProducts(ctx context.Context, vendorID uuid.UUID) (int, error)
}

// Defaults are the limits applied to newly registered vendors.
type Defaults struct {
	ProductLimit int
	EditLimit    int
	DeleteLimit  int
}

type service struct {
	accounts AccountRepository
	vendors  vendor.Repository
	counts   ProductCounter
	defaults Defaults
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
	metrics  *metrics.PortalMetrics
}

// NewService creates a new auth service. metrics may be nil in tests.
func NewService(accounts AccountRepository, vendors vendor.Repository, counts ProductCounter, defaults Defaults, secret string, tokenTTL time.Duration, logger *zap.Logger, m *metrics.PortalMetrics) Service {
	return &service{
		accounts: accounts,
		vendors:  vendors,
		counts:   counts,
		defaults: defaults,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		metrics:  m,
	}
}

// Signup registers a login account and its vendor record in one flow. The
// vendor's account linkage is written exactly once here and never updated.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*Session, string, error) {
	if len(req.Password) < 6 {
		return nil, "", ErrWeakPassword
	}

	if _, err := s.accounts.GetAccountByEmail(ctx, req.GmailAccount); err == nil {
		return nil, "", ErrEmailInUse
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, "", fmt.Errorf("lookup account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	account := &Account{
		ID:           uuid.New(),
		Email:        req.GmailAccount,
		PasswordHash: string(hashed),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, "", fmt.Errorf("create account: %w", err)
	}

	productLimit := s.defaults.ProductLimit
	if req.ProductLimit != nil && *req.ProductLimit >= 0 {
		productLimit = *req.ProductLimit
	}

	v := &vendor.Vendor{
		ID:                 uuid.New(),
		AccountID:          account.ID,
		Name:               req.Name,
		PhoneNumber:        req.PhoneNumber,
		StoreLocation:      req.StoreLocation,
		Username:           req.Username,
		GmailAccount:       req.GmailAccount,
		LogoURL:            req.LogoURL,
		Slug:               slug.Make(req.Name),
		ProductLimit:       productLimit,
		EditProductLimit:   s.defaults.EditLimit,
		DeleteProductLimit: s.defaults.DeleteLimit,
	}
	if err := s.vendors.CreateVendor(ctx, v); err != nil {
		// The account row is already durable; flag the orphan for cleanup.
		s.logger.Warn("vendor creation failed after account creation",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("create vendor: %w", err)
	}

	if s.metrics != nil {
		s.metrics.VendorSignupsTotal.Inc()
	}

	token, err := s.signToken(account.ID)
	if err != nil {
		return nil, "", err
	}
	return &Session{Account: account, Vendor: v}, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, string, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	v, err := s.vendors.GetVendorByAccountID(ctx, account.ID)
	if errors.Is(err, vendor.ErrNotFound) {
		return nil, "", ErrNoVendorAccount
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.signToken(account.ID)
	if err != nil {
		return nil, "", err
	}
	return &Session{Account: account, Vendor: v}, token, nil
}

func (s *service) VerifyToken(ctx context.Context, token string) (*Session, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	v, err := s.vendors.GetVendorByAccountID(ctx, account.ID)
	if errors.Is(err, vendor.ErrNotFound) {
		return nil, ErrNoVendorAccount
	}
	if err != nil {
		return nil, err
	}
	return &Session{Account: account, Vendor: v}, nil
}

// ChangePassword reauthenticates with the old password before accepting the
// new one.
func (s *service) ChangePassword(ctx context.Context, accountID uuid.UUID, oldPassword, newPassword string) error {
	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, accountID, string(hashed))
}

func (s *service) Refresh(ctx context.Context, vendorID uuid.UUID) (*vendor.Vendor, error) {
	v, err := s.vendors.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	count, err := s.counts.CountVendorProducts(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	v.ProductsCount = count
	return v, nil
}

func (s *service) signToken(accountID uuid.UUID) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   accountID.String(),
		ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
