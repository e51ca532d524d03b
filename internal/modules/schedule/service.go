package schedule

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/modules/catalog"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"
	"github.com/AloneRunner/DersTimeTable/internal/solver"

	"github.com/google/uuid"
)

// Store is the persistence seam the schedule service depends on, satisfied
// by both the gorm Repository and the JSON-file jsonstore.Store.
type Store interface {
	ListSchedules(ctx context.Context, filter ScheduleFilter) ([]models.GeneratedSchedule, int64, error)
	GetScheduleByID(ctx context.Context, tenantID, id uuid.UUID) (*models.GeneratedSchedule, error)
	GetPublishedSchedule(ctx context.Context, tenantID uuid.UUID) (*models.GeneratedSchedule, error)
	CreateSchedule(ctx context.Context, s *models.GeneratedSchedule) error
	UpdateSchedule(ctx context.Context, s *models.GeneratedSchedule) error
	DeleteSchedule(ctx context.Context, tenantID, id uuid.UUID) error
	ArchiveOtherSchedules(ctx context.Context, tenantID, excludeID uuid.UUID) error
	ReplaceEntries(ctx context.Context, scheduleID uuid.UUID, entries []models.ScheduleEntry) error
}

// CatalogSnapshot is the seam into the catalog module: the schedule service
// never touches catalog storage directly, it only reads a materialized
// solver.Input through this interface (§6 "the schedule module consumes an
// already-materialized snapshot; the core never touches the store").
type CatalogSnapshot interface {
	Snapshot(ctx context.Context, tenantID uuid.UUID) (solver.Input, solver.SchoolHours, solver.Preferences, int, error)
}

// Service generates, persists, and publishes weekly schedules.
type Service struct {
	store                   Store
	catalog                 CatalogSnapshot
	defaultTimeLimitSeconds int
}

// NewService creates a new schedule Service. defaultTimeLimitSeconds comes
// from config.SolverConfig.DefaultTimeLimitSeconds and is used whenever a
// GenerateScheduleRequest doesn't override it.
func NewService(store Store, catalogSvc *catalog.Service, defaultTimeLimitSeconds int) *Service {
	return &Service{store: store, catalog: catalogSvc, defaultTimeLimitSeconds: defaultTimeLimitSeconds}
}

func (s *Service) ListSchedules(ctx context.Context, tenantID uuid.UUID) ([]ScheduleResponse, int64, error) {
	schedules, total, err := s.store.ListSchedules(ctx, ScheduleFilter{TenantID: tenantID})
	if err != nil {
		return nil, 0, err
	}
	out := make([]ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, scheduleToResponse(&schedules[i]))
	}
	return out, total, nil
}

func (s *Service) GetSchedule(ctx context.Context, tenantID, id uuid.UUID) (*ScheduleDetailResponse, error) {
	sched, err := s.store.GetScheduleByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toDetailResponse(sched)
}

func (s *Service) GetPublishedEntries(ctx context.Context, tenantID uuid.UUID) ([]EntryResponse, error) {
	sched, err := s.store.GetPublishedSchedule(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, 0, len(sched.Entries))
	for i := range sched.Entries {
		out = append(out, entryToResponse(&sched.Entries[i]))
	}
	return out, nil
}

// GenerateSchedule builds the tenant's solver.Input from the catalog
// snapshot, runs the core solve, and persists the result as a new draft.
func (s *Service) GenerateSchedule(ctx context.Context, tenantID, userID uuid.UUID, req GenerateScheduleRequest) (*ScheduleDetailResponse, error) {
	input, hours, prefs, defaultMaxConsec, err := s.catalog.Snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	timeLimit := s.defaultTimeLimitSeconds
	if req.TimeLimitSeconds != nil {
		timeLimit = *req.TimeLimitSeconds
	}

	result, err := solver.Solve(&input, hours, timeLimit, &defaultMaxConsec, prefs, req.StopAtFirst)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	record := &models.GeneratedSchedule{
		TenantModel: models.TenantModel{
			AuditModel: models.AuditModel{CreatedBy: &userID, UpdatedBy: &userID},
			TenantID:   tenantID,
		},
		Name:   req.Name,
		Status: models.ScheduleStatusDraft,
		Data:   data,
	}
	if err := s.store.CreateSchedule(ctx, record); err != nil {
		return nil, err
	}

	entries := entriesFromResult(record.ID, result)
	if err := s.store.ReplaceEntries(ctx, record.ID, entries); err != nil {
		return nil, err
	}
	record.Entries = entries

	return toDetailResponse(record)
}

// PublishSchedule publishes a draft schedule, archiving any schedule
// currently published for the tenant.
func (s *Service) PublishSchedule(ctx context.Context, tenantID, id, userID uuid.UUID) (*ScheduleResponse, error) {
	sched, err := s.store.GetScheduleByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if sched.Status != models.ScheduleStatusDraft {
		return nil, ErrScheduleAlreadyPublished
	}

	if err := s.store.ArchiveOtherSchedules(ctx, tenantID, id); err != nil {
		return nil, err
	}

	now := time.Now()
	sched.Status = models.ScheduleStatusPublished
	sched.PublishedAt = &now
	sched.PublishedBy = &userID
	if err := s.store.UpdateSchedule(ctx, sched); err != nil {
		return nil, err
	}

	resp := scheduleToResponse(sched)
	return &resp, nil
}

// ArchiveSchedule archives a published schedule.
func (s *Service) ArchiveSchedule(ctx context.Context, tenantID, id uuid.UUID) (*ScheduleResponse, error) {
	sched, err := s.store.GetScheduleByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	sched.Status = models.ScheduleStatusArchived
	if err := s.store.UpdateSchedule(ctx, sched); err != nil {
		return nil, err
	}
	resp := scheduleToResponse(sched)
	return &resp, nil
}

// DeleteSchedule deletes a draft schedule. Published/archived schedules are
// kept for audit purposes and cannot be deleted through this method.
func (s *Service) DeleteSchedule(ctx context.Context, tenantID, id uuid.UUID) error {
	sched, err := s.store.GetScheduleByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if sched.Status != models.ScheduleStatusDraft {
		return ErrScheduleNotDraft
	}
	return s.store.DeleteSchedule(ctx, tenantID, id)
}

func toDetailResponse(sched *models.GeneratedSchedule) (*ScheduleDetailResponse, error) {
	var result solver.Result
	if err := json.Unmarshal(sched.Data, &result); err != nil {
		return nil, err
	}
	return &ScheduleDetailResponse{
		ScheduleResponse: scheduleToResponse(sched),
		Result:           result,
	}, nil
}

// entriesFromResult flattens a solver.Result's Schedule grid into the
// denormalized row-per-placement form used for querying.
func entriesFromResult(scheduleID uuid.UUID, result *solver.Result) []models.ScheduleEntry {
	var entries []models.ScheduleEntry
	for classroomID, grid := range result.Schedule {
		classroomUUID, err := uuid.Parse(classroomID)
		if err != nil {
			continue
		}
		for dayIndex, day := range grid {
			for hourIndex, assignment := range day {
				if assignment == nil {
					continue
				}
				entry := models.ScheduleEntry{
					ScheduleID:  scheduleID,
					ClassroomID: classroomUUID,
					DayIndex:    dayIndex,
					HourIndex:   hourIndex,
				}
				if subjectID, err := uuid.Parse(assignment.SubjectID); err == nil {
					entry.SubjectID = subjectID
				}
				if teacherID, err := uuid.Parse(assignment.TeacherID); err == nil {
					entry.TeacherID = teacherID
				}
				if assignment.LocationID != "" {
					if locationID, err := uuid.Parse(assignment.LocationID); err == nil {
						entry.LocationID = &locationID
					}
				}
				entries = append(entries, entry)
			}
		}
	}
	return entries
}
