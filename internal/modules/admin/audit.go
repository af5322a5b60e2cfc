package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdminAction is an audit record for an administrative operation against a
// vendor (password reset, counter reset).
type AdminAction struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditRepository defines the interface for admin action storage.
type AuditRepository interface {
	RecordAction(ctx context.Context, action *AdminAction) error
	ListActions(ctx context.Context, limit int) ([]*AdminAction, error)
}
