package auth

import (
	"context"
	"errors"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists bridge codes and bridge refresh tokens via gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new auth Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateCode inserts a new bridge code.
func (r *Repository) CreateCode(ctx context.Context, code *models.BridgeCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// FindActiveCodeByEmail returns the most recently issued, still-valid code
// for the given tenant+email, used to enforce a resend cooldown.
func (r *Repository) FindActiveCodeByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.BridgeCode, error) {
	var code models.BridgeCode
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ? AND consumed_at IS NULL AND expires_at > ?", tenantID, email, time.Now()).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

// FindCodeByHash looks up a bridge code by its hashed value, scoped to a
// tenant so the same numeric code can't be guessed across tenants.
func (r *Repository) FindCodeByHash(ctx context.Context, tenantID uuid.UUID, codeHash string) (*models.BridgeCode, error) {
	var code models.BridgeCode
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code_hash = ?", tenantID, codeHash).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

// ConsumeCode marks a bridge code as used.
func (r *Repository) ConsumeCode(ctx context.Context, code *models.BridgeCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

// CreateRefreshToken inserts a new bridge refresh token.
func (r *Repository) CreateRefreshToken(ctx context.Context, token *models.BridgeRefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindRefreshTokenByHash looks up a bridge refresh token by its hashed value.
func (r *Repository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*models.BridgeRefreshToken, error) {
	var token models.BridgeRefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshToken persists a revoked refresh token (rotation on use).
func (r *Repository) RevokeRefreshToken(ctx context.Context, token *models.BridgeRefreshToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}

// RevokeAllRefreshTokens revokes every live refresh token for a tenant+email,
// used on logout to end all sessions for that identity.
func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, tenantID uuid.UUID, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.BridgeRefreshToken{}).
		Where("tenant_id = ? AND email = ? AND revoked_at IS NULL", tenantID, email).
		Update("revoked_at", time.Now()).Error
}
