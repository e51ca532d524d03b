package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"
	svcauth "github.com/AloneRunner/DersTimeTable/internal/services/auth"

	"github.com/google/uuid"
)

const (
	codeLength   = 6
	codeTTL      = 10 * time.Minute
	resendCooldown = 60 * time.Second
)

// identityNamespace is a fixed namespace used to derive a stable, deterministic
// UserID for a bridge-code identity (tenant+email), since this flow has no
// pre-existing user row to carry a real one. The same email always maps to
// the same UserID within a tenant.
var identityNamespace = uuid.MustParse("6f6d0e4d-6f7f-4f6b-9a7a-9d6b7c9f2c41")

// tenantPermissions are granted to every bridge-code session. This domain has
// no per-role distinction: anyone who can complete the emailed-code flow for a
// tenant administers that tenant's whole timetable.
var tenantPermissions = []string{"catalog:view", "catalog:manage", "schedule:view", "schedule:manage"}

// Store is the persistence seam the auth service depends on, satisfied by
// both the gorm Repository and a JSON-file implementation.
type Store interface {
	CreateCode(ctx context.Context, code *models.BridgeCode) error
	FindActiveCodeByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.BridgeCode, error)
	FindCodeByHash(ctx context.Context, tenantID uuid.UUID, codeHash string) (*models.BridgeCode, error)
	ConsumeCode(ctx context.Context, code *models.BridgeCode) error

	CreateRefreshToken(ctx context.Context, token *models.BridgeRefreshToken) error
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*models.BridgeRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token *models.BridgeRefreshToken) error
	RevokeAllRefreshTokens(ctx context.Context, tenantID uuid.UUID, email string) error
}

// Service implements the bridge-code email login flow: a one-time numeric
// code is issued for an email address, then exchanged for a JWT session.
// Sessions are stateless JWTs minted by the shared JWTService, so a bridge
// session authenticates against the same middleware stack protecting every
// other module.
type Service struct {
	store Store
	jwt   *svcauth.JWTService
}

// NewService creates a new auth Service.
func NewService(store Store, jwt *svcauth.JWTService) *Service {
	return &Service{store: store, jwt: jwt}
}

// RequestCode issues a new bridge code for an email address. If a valid
// code was already issued within the resend cooldown, that request is
// rejected rather than issuing a second live code.
func (s *Service) RequestCode(ctx context.Context, tenantID uuid.UUID, req RequestCodeRequest) (*RequestCodeResponse, error) {
	if existing, err := s.store.FindActiveCodeByEmail(ctx, tenantID, req.Email); err == nil {
		if time.Since(existing.CreatedAt) < resendCooldown {
			return nil, fmt.Errorf("a code was already sent, try again shortly")
		}
	}

	code, err := generateNumericCode(codeLength)
	if err != nil {
		return nil, err
	}

	record := &models.BridgeCode{
		TenantID:  tenantID,
		Email:     req.Email,
		Name:      req.Name,
		CodeHash:  hashSecret(code),
		ExpiresAt: time.Now().Add(codeTTL),
	}
	if err := s.store.CreateCode(ctx, record); err != nil {
		return nil, err
	}

	return &RequestCodeResponse{Code: code, ExpiresAt: record.ExpiresAt}, nil
}

// VerifyCode exchanges a bridge code for a new JWT session.
func (s *Service) VerifyCode(ctx context.Context, tenantID uuid.UUID, req VerifyCodeRequest) (*SessionResponse, error) {
	code, err := s.store.FindCodeByHash(ctx, tenantID, hashSecret(req.Code))
	if err != nil {
		return nil, err
	}
	if code.Email != req.Email {
		return nil, ErrCodeNotFound
	}
	if code.IsConsumed() {
		return nil, ErrCodeAlreadyConsumed
	}
	if code.IsExpired() {
		return nil, ErrCodeExpired
	}

	code.MarkConsumed()
	if err := s.store.ConsumeCode(ctx, code); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, tenantID, code.Email)
}

// Refresh exchanges a live refresh token for a new session, rotating it.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*SessionResponse, error) {
	tokenHash := s.jwt.HashRefreshToken(req.RefreshToken)
	stored, err := s.store.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if !stored.IsValid() {
		return nil, ErrRefreshTokenInvalid
	}

	stored.Revoke()
	if err := s.store.RevokeRefreshToken(ctx, stored); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, stored.TenantID, stored.Email)
}

// Logout revokes every live refresh token for a tenant+email, ending all
// bridge sessions for that identity.
func (s *Service) Logout(ctx context.Context, tenantID uuid.UUID, email string) error {
	return s.store.RevokeAllRefreshTokens(ctx, tenantID, email)
}

func (s *Service) issueSession(ctx context.Context, tenantID uuid.UUID, email string) (*SessionResponse, error) {
	userID := identityUserID(tenantID, email)

	accessToken, _, err := s.jwt.GenerateAccessToken(userID, tenantID, email, tenantPermissions)
	if err != nil {
		return nil, err
	}
	refreshToken, expiresAt, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	record := &models.BridgeRefreshToken{
		TenantID:  tenantID,
		Email:     email,
		TokenHash: s.jwt.HashRefreshToken(refreshToken),
		ExpiresAt: expiresAt,
	}
	if err := s.store.CreateRefreshToken(ctx, record); err != nil {
		return nil, err
	}

	return &SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Email:        email,
	}, nil
}

// identityUserID derives a stable UserID for a tenant+email bridge identity.
func identityUserID(tenantID uuid.UUID, email string) uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(tenantID.String()+":"+email))
}

func hashSecret(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func generateNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
