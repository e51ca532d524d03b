// Package models provides GORM model definitions for the MSLS database.
package models

import (
	"time"

	"github.com/google/uuid"
)

// BridgeCode is a single-use numeric login code issued for an email address, mirroring the
// original source's login_tokens rows of purpose "web_bridge_code": no
// account needs to exist ahead of time, the email address is the identity.
type BridgeCode struct {
	BaseModel
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Email      string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Name       string     `gorm:"type:varchar(150)" json:"name,omitempty"`
	CodeHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"type:timestamptz;not null;index" json:"expires_at"`
	ConsumedAt *time.Time `gorm:"type:timestamptz" json:"consumed_at,omitempty"`
}

// TableName returns the table name for BridgeCode.
func (BridgeCode) TableName() string { return "bridge_codes" }

// IsExpired returns true if the code has expired.
func (b *BridgeCode) IsExpired() bool { return time.Now().After(b.ExpiresAt) }

// IsConsumed returns true if the code has already been exchanged for a session.
func (b *BridgeCode) IsConsumed() bool { return b.ConsumedAt != nil }

// IsValid returns true if the code can still be exchanged for a session.
func (b *BridgeCode) IsValid() bool { return !b.IsExpired() && !b.IsConsumed() }

// MarkConsumed marks the code as exchanged.
func (b *BridgeCode) MarkConsumed() {
	now := time.Now()
	b.ConsumedAt = &now
}

// BridgeRefreshToken is the refresh-token half of a bridge-code session,
// hashed at rest like the teacher's RefreshToken, but keyed by tenant+email
// instead of a user row since this flow has no account registration step.
type BridgeRefreshToken struct {
	BaseModel
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Email     string     `gorm:"type:varchar(255);not null;index" json:"email"`
	TokenHash string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"type:timestamptz;not null;index" json:"expires_at"`
	RevokedAt *time.Time `gorm:"type:timestamptz" json:"revoked_at,omitempty"`
}

// TableName returns the table name for BridgeRefreshToken.
func (BridgeRefreshToken) TableName() string { return "bridge_refresh_tokens" }

// IsExpired returns true if the refresh token has expired.
func (r *BridgeRefreshToken) IsExpired() bool { return time.Now().After(r.ExpiresAt) }

// IsRevoked returns true if the refresh token has been revoked.
func (r *BridgeRefreshToken) IsRevoked() bool { return r.RevokedAt != nil }

// IsValid returns true if the refresh token is valid (not expired, not revoked).
func (r *BridgeRefreshToken) IsValid() bool { return !r.IsExpired() && !r.IsRevoked() }

// Revoke marks the refresh token as revoked.
func (r *BridgeRefreshToken) Revoke() {
	now := time.Now()
	r.RevokedAt = &now
}
