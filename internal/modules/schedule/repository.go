package schedule

import (
	"context"
	"errors"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles database operations for generated schedules.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new schedule repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ScheduleFilter narrows ListSchedules results.
type ScheduleFilter struct {
	TenantID uuid.UUID
	Status   *models.ScheduleStatus
}

func (r *Repository) ListSchedules(ctx context.Context, filter ScheduleFilter) ([]models.GeneratedSchedule, int64, error) {
	var schedules []models.GeneratedSchedule
	var total int64

	query := r.db.WithContext(ctx).Model(&models.GeneratedSchedule{}).Where("tenant_id = ?", filter.TenantID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Find(&schedules).Error; err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func (r *Repository) GetScheduleByID(ctx context.Context, tenantID, id uuid.UUID) (*models.GeneratedSchedule, error) {
	var s models.GeneratedSchedule
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	return &s, err
}

// GetPublishedSchedule returns the tenant's currently published schedule, if any.
func (r *Repository) GetPublishedSchedule(ctx context.Context, tenantID uuid.UUID) (*models.GeneratedSchedule, error) {
	var s models.GeneratedSchedule
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Where("tenant_id = ? AND status = ?", tenantID, models.ScheduleStatusPublished).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	return &s, err
}

func (r *Repository) CreateSchedule(ctx context.Context, s *models.GeneratedSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) UpdateSchedule(ctx context.Context, s *models.GeneratedSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *Repository) DeleteSchedule(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.GeneratedSchedule{}).Error
}

// ArchiveOtherSchedules archives every other published schedule for the
// tenant, so at most one schedule stays published at a time.
func (r *Repository) ArchiveOtherSchedules(ctx context.Context, tenantID, excludeID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.GeneratedSchedule{}).
		Where("tenant_id = ? AND status = ? AND id <> ?", tenantID, models.ScheduleStatusPublished, excludeID).
		Update("status", models.ScheduleStatusArchived).Error
}

// ReplaceEntries deletes a schedule's existing entries and inserts the new set in one transaction.
func (r *Repository) ReplaceEntries(ctx context.Context, scheduleID uuid.UUID, entries []models.ScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}
