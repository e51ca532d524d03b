package models

import "time"

// SubscriptionStatus is the lifecycle state of a Subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// SubscriptionProvider identifies how a Subscription was created.
type SubscriptionProvider string

const (
	SubscriptionProviderTrial SubscriptionProvider = "trial"
)

// Subscription gates access to subscription-only operations such as schedule
// generation. Tenants start on a free trial; a real payment provider can be
// layered in later behind the same Provider/RawReceipt fields.
type Subscription struct {
	TenantModel
	Provider   SubscriptionProvider `gorm:"type:varchar(30);not null" json:"provider"`
	StartAt    time.Time            `gorm:"type:timestamptz;not null" json:"startAt"`
	ExpiresAt  time.Time            `gorm:"type:timestamptz;not null;index" json:"expiresAt"`
	Status     SubscriptionStatus   `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
	RawReceipt []byte               `gorm:"type:jsonb" json:"-"`
}

// TableName returns the table name for Subscription.
func (Subscription) TableName() string { return "subscriptions" }

// IsActive returns true if the subscription is marked active and unexpired.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive && time.Now().Before(s.ExpiresAt)
}
