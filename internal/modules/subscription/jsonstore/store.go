// Package jsonstore is a JSON-file-backed implementation of
// subscription.Store, mirroring the original source's storage.json
// "subscriptions" array.
package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/modules/subscription"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
)

type document struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// Store is the JSON-file subscription.Store implementation.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

var _ subscription.Store = (*Store)(nil)

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

func (s *Store) GetByTenantID(_ context.Context, tenantID uuid.UUID) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var best *models.Subscription
	for i := range doc.Subscriptions {
		sub := &doc.Subscriptions[i]
		if sub.TenantID != tenantID {
			continue
		}
		if best == nil || sub.CreatedAt.After(best.CreatedAt) {
			best = sub
		}
	}
	if best == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return best, nil
}

func (s *Store) Create(_ context.Context, sub *models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now()
	sub.CreatedAt, sub.UpdatedAt = now, now
	doc.Subscriptions = append(doc.Subscriptions, *sub)
	return s.write(doc)
}
