package schedule

import (
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"
	"github.com/AloneRunner/DersTimeTable/internal/solver"

	"github.com/google/uuid"
)

// GenerateScheduleRequest triggers a solve against the tenant's current
// catalog snapshot. Name is required; TimeLimitSeconds and StopAtFirst are
// optional overrides of the configured solver defaults.
type GenerateScheduleRequest struct {
	Name             string `json:"name" binding:"required,not_blank,max=150"`
	TimeLimitSeconds *int   `json:"timeLimitSeconds,omitempty" binding:"omitempty,gt=0"`
	StopAtFirst      bool   `json:"stopAtFirst,omitempty"`
}

// ScheduleResponse summarizes a persisted GeneratedSchedule without its
// full entry list (see ScheduleDetailResponse for that).
type ScheduleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	PublishedAt *string    `json:"publishedAt,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// ScheduleDetailResponse includes the full solver result for one schedule.
type ScheduleDetailResponse struct {
	ScheduleResponse
	Result solver.Result `json:"result"`
}

func scheduleToResponse(s *models.GeneratedSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:        s.ID,
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.PublishedAt != nil {
		formatted := s.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &formatted
	}
	return resp
}

// EntryResponse is one placed lesson cell, used by the published-schedule
// lookup endpoints (e.g. "what is this teacher teaching this week").
type EntryResponse struct {
	ClassroomID uuid.UUID  `json:"classroomId"`
	SubjectID   uuid.UUID  `json:"subjectId"`
	TeacherID   uuid.UUID  `json:"teacherId"`
	LocationID  *uuid.UUID `json:"locationId,omitempty"`
	DayIndex    int        `json:"dayIndex"`
	HourIndex   int        `json:"hourIndex"`
}

func entryToResponse(e *models.ScheduleEntry) EntryResponse {
	return EntryResponse{
		ClassroomID: e.ClassroomID,
		SubjectID:   e.SubjectID,
		TeacherID:   e.TeacherID,
		LocationID:  e.LocationID,
		DayIndex:    e.DayIndex,
		HourIndex:   e.HourIndex,
	}
}
