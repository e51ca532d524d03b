// Package jsonstore is a JSON-file-backed implementation of schedule.Store,
// used when no DATABASE_URL is configured.
package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/modules/schedule"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
)

type document struct {
	Schedules []models.GeneratedSchedule `json:"schedules"`
}

// Store is the JSON-file schedule.Store implementation.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

var _ schedule.Store = (*Store)(nil)

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

func (s *Store) ListSchedules(_ context.Context, filter schedule.ScheduleFilter) ([]models.GeneratedSchedule, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, 0, err
	}
	var out []models.GeneratedSchedule
	for _, sched := range doc.Schedules {
		if sched.TenantID != filter.TenantID {
			continue
		}
		if filter.Status != nil && sched.Status != *filter.Status {
			continue
		}
		out = append(out, sched)
	}
	return out, int64(len(out)), nil
}

func (s *Store) GetScheduleByID(_ context.Context, tenantID, id uuid.UUID) (*models.GeneratedSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Schedules {
		if doc.Schedules[i].TenantID == tenantID && doc.Schedules[i].ID == id {
			return &doc.Schedules[i], nil
		}
	}
	return nil, schedule.ErrScheduleNotFound
}

func (s *Store) GetPublishedSchedule(_ context.Context, tenantID uuid.UUID) (*models.GeneratedSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Schedules {
		sched := &doc.Schedules[i]
		if sched.TenantID == tenantID && sched.Status == models.ScheduleStatusPublished {
			return sched, nil
		}
	}
	return nil, schedule.ErrScheduleNotFound
}

func (s *Store) CreateSchedule(_ context.Context, sched *models.GeneratedSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if sched.ID == uuid.Nil {
		sched.ID = uuid.New()
	}
	now := time.Now()
	sched.CreatedAt, sched.UpdatedAt = now, now
	doc.Schedules = append(doc.Schedules, *sched)
	return s.write(doc)
}

func (s *Store) UpdateSchedule(_ context.Context, sched *models.GeneratedSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Schedules {
		if doc.Schedules[i].ID == sched.ID {
			sched.UpdatedAt = time.Now()
			doc.Schedules[i] = *sched
			return s.write(doc)
		}
	}
	return schedule.ErrScheduleNotFound
}

func (s *Store) DeleteSchedule(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Schedules {
		if doc.Schedules[i].TenantID == tenantID && doc.Schedules[i].ID == id {
			doc.Schedules = append(doc.Schedules[:i], doc.Schedules[i+1:]...)
			return s.write(doc)
		}
	}
	return schedule.ErrScheduleNotFound
}

func (s *Store) ArchiveOtherSchedules(_ context.Context, tenantID, excludeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Schedules {
		sched := &doc.Schedules[i]
		if sched.TenantID == tenantID && sched.ID != excludeID && sched.Status == models.ScheduleStatusPublished {
			sched.Status = models.ScheduleStatusArchived
			sched.UpdatedAt = time.Now()
		}
	}
	return s.write(doc)
}

func (s *Store) ReplaceEntries(_ context.Context, scheduleID uuid.UUID, entries []models.ScheduleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Schedules {
		if doc.Schedules[i].ID == scheduleID {
			doc.Schedules[i].Entries = entries
			return s.write(doc)
		}
	}
	return schedule.ErrScheduleNotFound
}
