package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
)

const trialDuration = 14 * 24 * time.Hour

// Store is the persistence seam the subscription service depends on,
// satisfied by both the gorm Repository and a JSON-file implementation.
type Store interface {
	GetByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
}

// Service manages per-tenant trial and entitlement state.
type Service struct {
	store Store
}

// NewService creates a new subscription Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// StartTrial creates a 14-day trial subscription for a tenant. A tenant may
// only ever have one trial.
func (s *Service) StartTrial(ctx context.Context, tenantID uuid.UUID) (*StatusResponse, error) {
	if _, err := s.store.GetByTenantID(ctx, tenantID); err == nil {
		return nil, ErrTrialAlreadyStarted
	} else if !errors.Is(err, ErrSubscriptionNotFound) {
		return nil, err
	}

	now := time.Now()
	sub := &models.Subscription{
		TenantModel: models.TenantModel{TenantID: tenantID},
		Provider:    models.SubscriptionProviderTrial,
		StartAt:     now,
		ExpiresAt:   now.Add(trialDuration),
		Status:      models.SubscriptionStatusActive,
	}
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, err
	}
	resp := statusFromModel(sub)
	return &resp, nil
}

// Status reports a tenant's current subscription state.
func (s *Service) Status(ctx context.Context, tenantID uuid.UUID) (*StatusResponse, error) {
	sub, err := s.store.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return &StatusResponse{OK: false, Reason: "no-subscription"}, nil
		}
		return nil, err
	}
	resp := statusFromModel(sub)
	return &resp, nil
}

// IsEntitled reports whether a tenant currently has an active subscription
// or trial, used to gate subscription-only operations like schedule
// generation.
func (s *Service) IsEntitled(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	sub, err := s.store.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActive(), nil
}
