package subscription

import (
	"context"
	"errors"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists subscriptions via gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscription Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByTenantID returns the most recent subscription record for a tenant.
func (r *Repository) GetByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Create inserts a new subscription record.
func (r *Repository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}
