package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sellora/marketplace-backend/internal/modules/vendor"
)

var (
	// ErrInvalidCredentials is returned on a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailInUse is returned when signup hits an already registered email.
	ErrEmailInUse = errors.New("email already in use")

	// ErrNoVendorAccount is returned when a login identity has no linked
	// vendor record.
	ErrNoVendorAccount = errors.New("no vendor linked to this account")

	// ErrWeakPassword is returned when a password is shorter than 6 characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// Session is the acting identity for a request: the login account and the
// vendor record it is bound to. All vendor-scoped operations derive the
// vendor id from here, never from request payloads.
type Session struct {
	Account *Account       `json:"account"`
	Vendor  *vendor.Vendor `json:"vendor"`
}

// SignupRequest holds the fields for registering a vendor together with its
// login account.
type SignupRequest struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	StoreLocation string `json:"store_location"`
	Username      string `json:"username"`
	GmailAccount  string `json:"gmail_account"`
	Password      string `json:"password"`
	LogoURL       string `json:"logo_url"`
	ProductLimit  *int   `json:"product_limit"`
}

// Service defines the interface for authentication and session business logic.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Session, string, error)
	Login(ctx context.Context, email, password string) (*Session, string, error)
	VerifyToken(ctx context.Context, token string) (*Session, error)
	ChangePassword(ctx context.Context, accountID uuid.UUID, oldPassword, newPassword string) error

	// Refresh re-reads the vendor record, with a live product count, so
	// displayed counters reconcile with the store after mutations.
	Refresh(ctx context.Context, vendorID uuid.UUID) (*vendor.Vendor, error)
}

type sessionCtxKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFrom extracts the session from the context, or nil.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}

// VendorFrom extracts the acting vendor from the context, or nil when the
// request is unauthenticated.
func VendorFrom(ctx context.Context) *vendor.Vendor {
	if s := SessionFrom(ctx); s != nil {
		return s.Vendor
	}
	return nil
}
