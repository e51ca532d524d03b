// Package jsonstore is a JSON-file-backed implementation of auth.Store, used
// when no DATABASE_URL is configured, mirroring the original source's
// storage.py-driven login_tokens persistence.
package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/modules/auth"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
)

type document struct {
	Codes          []models.BridgeCode         `json:"bridge_codes"`
	RefreshTokens  []models.BridgeRefreshToken `json:"bridge_refresh_tokens"`
}

// Store is the JSON-file auth.Store implementation.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

var _ auth.Store = (*Store)(nil)

func (s *Store) read() (document, error) {
	var doc document
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return doc, err
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return document{}, nil
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *Store) CreateCode(_ context.Context, code *models.BridgeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	now := time.Now()
	code.CreatedAt, code.UpdatedAt = now, now
	doc.Codes = append(doc.Codes, *code)
	return s.write(doc)
}

func (s *Store) FindActiveCodeByEmail(_ context.Context, tenantID uuid.UUID, email string) (*models.BridgeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var best *models.BridgeCode
	for i := range doc.Codes {
		c := &doc.Codes[i]
		if c.TenantID != tenantID || c.Email != email || c.IsConsumed() || c.IsExpired() {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) {
			best = c
		}
	}
	if best == nil {
		return nil, auth.ErrCodeNotFound
	}
	return best, nil
}

func (s *Store) FindCodeByHash(_ context.Context, tenantID uuid.UUID, codeHash string) (*models.BridgeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var best *models.BridgeCode
	for i := range doc.Codes {
		c := &doc.Codes[i]
		if c.TenantID != tenantID || c.CodeHash != codeHash {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) {
			best = c
		}
	}
	if best == nil {
		return nil, auth.ErrCodeNotFound
	}
	return best, nil
}

func (s *Store) ConsumeCode(_ context.Context, code *models.BridgeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Codes {
		if doc.Codes[i].ID == code.ID {
			code.UpdatedAt = time.Now()
			doc.Codes[i] = *code
			return s.write(doc)
		}
	}
	return auth.ErrCodeNotFound
}

func (s *Store) CreateRefreshToken(_ context.Context, token *models.BridgeRefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	now := time.Now()
	token.CreatedAt, token.UpdatedAt = now, now
	doc.RefreshTokens = append(doc.RefreshTokens, *token)
	return s.write(doc)
}

func (s *Store) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*models.BridgeRefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.RefreshTokens {
		if doc.RefreshTokens[i].TokenHash == tokenHash {
			return &doc.RefreshTokens[i], nil
		}
	}
	return nil, auth.ErrRefreshTokenInvalid
}

func (s *Store) RevokeRefreshToken(_ context.Context, token *models.BridgeRefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.RefreshTokens {
		if doc.RefreshTokens[i].ID == token.ID {
			token.UpdatedAt = time.Now()
			doc.RefreshTokens[i] = *token
			return s.write(doc)
		}
	}
	return auth.ErrRefreshTokenInvalid
}

func (s *Store) RevokeAllRefreshTokens(_ context.Context, tenantID uuid.UUID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range doc.RefreshTokens {
		t := &doc.RefreshTokens[i]
		if t.TenantID == tenantID && t.Email == email && !t.IsRevoked() {
			t.RevokedAt = &now
			t.UpdatedAt = now
		}
	}
	return s.write(doc)
}
