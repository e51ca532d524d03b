package catalog

import (
	"context"
	"errors"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles database operations for catalog entities.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ========================================
// Teacher
// ========================================

type TeacherFilter struct {
	TenantID uuid.UUID
	IsActive *bool
}

func (r *Repository) ListTeachers(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error) {
	var teachers []models.Teacher
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Teacher{}).Where("tenant_id = ?", filter.TenantID)
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Find(&teachers).Error; err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

func (r *Repository) GetTeacherByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Teacher, error) {
	var t models.Teacher
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeacherNotFound
	}
	return &t, err
}

func (r *Repository) CreateTeacher(ctx context.Context, t *models.Teacher) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *Repository) UpdateTeacher(ctx context.Context, t *models.Teacher) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *Repository) DeleteTeacher(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Teacher{}).Error
}

// ========================================
// Classroom
// ========================================

type ClassroomFilter struct {
	TenantID uuid.UUID
	Level    *models.Level
	IsActive *bool
}

func (r *Repository) ListClassrooms(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, int64, error) {
	var classrooms []models.Classroom
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Classroom{}).Where("tenant_id = ?", filter.TenantID)
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Find(&classrooms).Error; err != nil {
		return nil, 0, err
	}
	return classrooms, total, nil
}

func (r *Repository) GetClassroomByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Classroom, error) {
	var c models.Classroom
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassroomNotFound
	}
	return &c, err
}

func (r *Repository) CreateClassroom(ctx context.Context, c *models.Classroom) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) UpdateClassroom(ctx context.Context, c *models.Classroom) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *Repository) DeleteClassroom(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Classroom{}).Error
}

// ========================================
// Subject
// ========================================

type SubjectFilter struct {
	TenantID uuid.UUID
	IsActive *bool
}

func (r *Repository) ListSubjects(ctx context.Context, filter SubjectFilter) ([]models.Subject, int64, error) {
	var subjects []models.Subject
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Subject{}).Where("tenant_id = ?", filter.TenantID)
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, 0, err
	}
	return subjects, total, nil
}

func (r *Repository) GetSubjectByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Subject, error) {
	var s models.Subject
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubjectNotFound
	}
	return &s, err
}

func (r *Repository) CreateSubject(ctx context.Context, s *models.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) UpdateSubject(ctx context.Context, s *models.Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *Repository) DeleteSubject(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Subject{}).Error
}

// ========================================
// Location
// ========================================

func (r *Repository) ListLocations(ctx context.Context, tenantID uuid.UUID) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *Repository) GetLocationByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Location, error) {
	var l models.Location
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLocationNotFound
	}
	return &l, err
}

func (r *Repository) CreateLocation(ctx context.Context, l *models.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repository) UpdateLocation(ctx context.Context, l *models.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *Repository) DeleteLocation(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Location{}).Error
}

// ========================================
// FixedAssignment
// ========================================

func (r *Repository) ListFixedAssignments(ctx context.Context, tenantID uuid.UUID) ([]models.FixedAssignment, error) {
	var assignments []models.FixedAssignment
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&assignments).Error
	return assignments, err
}

func (r *Repository) GetFixedAssignmentByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FixedAssignment, error) {
	var f models.FixedAssignment
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFixedAssignmentNotFound
	}
	return &f, err
}

func (r *Repository) CreateFixedAssignment(ctx context.Context, f *models.FixedAssignment) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *Repository) DeleteFixedAssignment(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.FixedAssignment{}).Error
}

// ========================================
// LessonGroup
// ========================================

func (r *Repository) ListLessonGroups(ctx context.Context, tenantID uuid.UUID) ([]models.LessonGroup, error) {
	var groups []models.LessonGroup
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *Repository) GetLessonGroupByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LessonGroup, error) {
	var g models.LessonGroup
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLessonGroupNotFound
	}
	return &g, err
}

func (r *Repository) CreateLessonGroup(ctx context.Context, g *models.LessonGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *Repository) UpdateLessonGroup(ctx context.Context, g *models.LessonGroup) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *Repository) DeleteLessonGroup(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.LessonGroup{}).Error
}

// ========================================
// Duty
// ========================================

func (r *Repository) ListDuties(ctx context.Context, tenantID uuid.UUID) ([]models.Duty, error) {
	var duties []models.Duty
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("day_index ASC, hour_index ASC").Find(&duties).Error
	return duties, err
}

func (r *Repository) CreateDuty(ctx context.Context, d *models.Duty) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) DeleteDuty(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Duty{}).Error
}

// ========================================
// SchoolSettings
// ========================================

func (r *Repository) GetSchoolSettings(ctx context.Context, tenantID uuid.UUID) (*models.SchoolSettings, error) {
	var s models.SchoolSettings
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSchoolSettingsNotFound
	}
	return &s, err
}

func (r *Repository) UpsertSchoolSettings(ctx context.Context, s *models.SchoolSettings) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", s.TenantID).
		Assign(map[string]interface{}{
			"school_name":             s.SchoolName,
			"ortaokul_hours":          s.OrtaokulHours,
			"lise_hours":              s.LiseHours,
			"allow_same_day_split":    s.AllowSameDaySplit,
			"max_teacher_gap_hours":   s.MaxTeacherGapHours,
			"teacher_gap_weight":      s.TeacherGapWeight,
			"teacher_daily_max_hours": s.TeacherDailyMaxHours,
			"edge_weight":             s.EdgeWeight,
			"nogap_weight":            s.NogapWeight,
			"default_max_consec":      s.DefaultMaxConsec,
		}).
		FirstOrCreate(s).Error
}
