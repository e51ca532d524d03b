package catalog

import (
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------- Teacher

type TeacherResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Branches             []string  `json:"branches"`
	Availability         [5][]bool `json:"availability"`
	CanTeachMiddleSchool bool      `json:"canTeachMiddleSchool"`
	CanTeachHighSchool   bool      `json:"canTeachHighSchool"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            string    `json:"createdAt"`
	UpdatedAt            string    `json:"updatedAt"`
}

func teacherToResponse(t *models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		Branches:             []string(t.Branches),
		Availability:         [5][]bool(t.Availability),
		CanTeachMiddleSchool: t.CanTeachMiddleSchool,
		CanTeachHighSchool:   t.CanTeachHighSchool,
		IsActive:             t.IsActive,
		CreatedAt:            t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            t.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateTeacherRequest struct {
	Name                 string    `json:"name" binding:"required,not_blank,max=150"`
	Branches             []string  `json:"branches"`
	Availability         [5][]bool `json:"availability" binding:"required"`
	CanTeachMiddleSchool bool      `json:"canTeachMiddleSchool"`
	CanTeachHighSchool   bool      `json:"canTeachHighSchool"`
}

type UpdateTeacherRequest struct {
	Name                 *string    `json:"name,omitempty" binding:"omitempty,not_blank,max=150"`
	Branches             *[]string  `json:"branches,omitempty"`
	Availability         *[5][]bool `json:"availability,omitempty"`
	CanTeachMiddleSchool *bool      `json:"canTeachMiddleSchool,omitempty"`
	CanTeachHighSchool   *bool      `json:"canTeachHighSchool,omitempty"`
	IsActive             *bool      `json:"isActive,omitempty"`
}

// ---------------------------------------------------------------- Classroom

type ClassroomResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Level             string `json:"level"`
	GroupName         string `json:"groupName,omitempty"`
	HomeroomTeacherID string `json:"homeroomTeacherId,omitempty"`
	SessionType       string `json:"sessionType,omitempty"`
	IsActive          bool   `json:"isActive"`
}

func classroomToResponse(c *models.Classroom) ClassroomResponse {
	r := ClassroomResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Level:       string(c.Level),
		GroupName:   c.GroupName,
		SessionType: c.SessionType,
		IsActive:    c.IsActive,
	}
	if c.HomeroomTeacherID != nil {
		r.HomeroomTeacherID = c.HomeroomTeacherID.String()
	}
	return r
}

type CreateClassroomRequest struct {
	Name              string  `json:"name" binding:"required,not_blank,max=100"`
	Level             string  `json:"level" binding:"required,oneof=Ortaokul Lise"`
	GroupName         string  `json:"groupName"`
	HomeroomTeacherID *string `json:"homeroomTeacherId"`
	SessionType       string  `json:"sessionType"`
}

type UpdateClassroomRequest struct {
	Name              *string `json:"name,omitempty" binding:"omitempty,not_blank,max=100"`
	Level             *string `json:"level,omitempty" binding:"omitempty,oneof=Ortaokul Lise"`
	GroupName         *string `json:"groupName,omitempty"`
	HomeroomTeacherID *string `json:"homeroomTeacherId,omitempty"`
	SessionType       *string `json:"sessionType,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
}

// ---------------------------------------------------------------- Subject

type SubjectResponse struct {
	ID                       string            `json:"id"`
	Name                     string            `json:"name"`
	WeeklyHours              int               `json:"weeklyHours"`
	BlockHours               int               `json:"blockHours"`
	TripleBlockHours         int               `json:"tripleBlockHours"`
	MaxConsec                *int              `json:"maxConsec,omitempty"`
	LocationID               string            `json:"locationId,omitempty"`
	RequiredTeacherCount     int               `json:"requiredTeacherCount"`
	AssignedClassroomIDs     []string          `json:"assignedClassroomIds"`
	PinnedTeacherByClassroom map[string]string `json:"pinnedTeacherByClassroom"`
	IsActive                 bool              `json:"isActive"`
}

func subjectToResponse(s *models.Subject) SubjectResponse {
	r := SubjectResponse{
		ID:                       s.ID.String(),
		Name:                     s.Name,
		WeeklyHours:              s.WeeklyHours,
		BlockHours:               s.BlockHours,
		TripleBlockHours:         s.TripleBlockHours,
		MaxConsec:                s.MaxConsec,
		RequiredTeacherCount:     s.RequiredTeacherCount,
		AssignedClassroomIDs:     []string(s.AssignedClassroomIDs),
		PinnedTeacherByClassroom: map[string]string(s.PinnedTeacherByClassroom),
		IsActive:                 s.IsActive,
	}
	if s.LocationID != nil {
		r.LocationID = s.LocationID.String()
	}
	return r
}

type CreateSubjectRequest struct {
	Name                     string            `json:"name" binding:"required,not_blank,max=150"`
	WeeklyHours              int               `json:"weeklyHours" binding:"gte=0"`
	BlockHours               int               `json:"blockHours" binding:"gte=0"`
	TripleBlockHours         int               `json:"tripleBlockHours" binding:"gte=0"`
	MaxConsec                *int              `json:"maxConsec"`
	LocationID               *string           `json:"locationId"`
	RequiredTeacherCount     int               `json:"requiredTeacherCount" binding:"gte=0"`
	AssignedClassroomIDs     []string          `json:"assignedClassroomIds"`
	PinnedTeacherByClassroom map[string]string `json:"pinnedTeacherByClassroom"`
}

type UpdateSubjectRequest struct {
	Name                     *string           `json:"name,omitempty" binding:"omitempty,not_blank,max=150"`
	WeeklyHours              *int              `json:"weeklyHours,omitempty" binding:"omitempty,gte=0"`
	BlockHours               *int              `json:"blockHours,omitempty" binding:"omitempty,gte=0"`
	TripleBlockHours         *int              `json:"tripleBlockHours,omitempty" binding:"omitempty,gte=0"`
	MaxConsec                *int              `json:"maxConsec,omitempty"`
	LocationID               *string           `json:"locationId,omitempty"`
	RequiredTeacherCount     *int              `json:"requiredTeacherCount,omitempty" binding:"omitempty,gte=0"`
	AssignedClassroomIDs     *[]string         `json:"assignedClassroomIds,omitempty"`
	PinnedTeacherByClassroom map[string]string `json:"pinnedTeacherByClassroom,omitempty"`
	IsActive                 *bool             `json:"isActive,omitempty"`
}

// ---------------------------------------------------------------- Location

type LocationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func locationToResponse(l *models.Location) LocationResponse {
	return LocationResponse{ID: l.ID.String(), Name: l.Name, IsActive: l.IsActive}
}

type CreateLocationRequest struct {
	Name string `json:"name" binding:"required,not_blank,max=100"`
}

// ---------------------------------------------------------------- FixedAssignment

type FixedAssignmentResponse struct {
	ID          string `json:"id"`
	ClassroomID string `json:"classroomId"`
	SubjectID   string `json:"subjectId"`
	DayIndex    int    `json:"dayIndex"`
	HourIndex   int    `json:"hourIndex"`
}

func fixedAssignmentToResponse(f *models.FixedAssignment) FixedAssignmentResponse {
	return FixedAssignmentResponse{
		ID:          f.ID.String(),
		ClassroomID: f.ClassroomID.String(),
		SubjectID:   f.SubjectID.String(),
		DayIndex:    f.DayIndex,
		HourIndex:   f.HourIndex,
	}
}

type CreateFixedAssignmentRequest struct {
	ClassroomID string `json:"classroomId" binding:"required,uuid"`
	SubjectID   string `json:"subjectId" binding:"required,uuid"`
	DayIndex    int    `json:"dayIndex" binding:"weekday"`
	HourIndex   int    `json:"hourIndex" binding:"hour_index"`
}

// ---------------------------------------------------------------- LessonGroup

type LessonGroupResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SubjectIDs []string `json:"subjectIds"`
}

func lessonGroupToResponse(g *models.LessonGroup) LessonGroupResponse {
	return LessonGroupResponse{ID: g.ID.String(), Name: g.Name, SubjectIDs: []string(g.SubjectIDs)}
}

type CreateLessonGroupRequest struct {
	Name       string   `json:"name" binding:"required,not_blank,max=150"`
	SubjectIDs []string `json:"subjectIds"`
}

// ---------------------------------------------------------------- Duty

type DutyResponse struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacherId"`
	DayIndex  int    `json:"dayIndex"`
	HourIndex int    `json:"hourIndex"`
	Label     string `json:"label"`
}

func dutyToResponse(d *models.Duty) DutyResponse {
	return DutyResponse{
		ID:        d.ID.String(),
		TeacherID: d.TeacherID.String(),
		DayIndex:  d.DayIndex,
		HourIndex: d.HourIndex,
		Label:     d.Label,
	}
}

type CreateDutyRequest struct {
	TeacherID string `json:"teacherId" binding:"required,uuid"`
	DayIndex  int    `json:"dayIndex" binding:"weekday"`
	HourIndex int    `json:"hourIndex" binding:"hour_index"`
	Label     string `json:"label" binding:"required,not_blank,max=100"`
}

// ---------------------------------------------------------------- SchoolSettings

type SchoolSettingsResponse struct {
	SchoolName           string `json:"schoolName"`
	OrtaokulHours        [5]int `json:"ortaokulHours"`
	LiseHours            [5]int `json:"liseHours"`
	AllowSameDaySplit    bool   `json:"allowSameDaySplit"`
	MaxTeacherGapHours   *int   `json:"maxTeacherGapHours,omitempty"`
	TeacherGapWeight     int    `json:"teacherGapWeight"`
	TeacherDailyMaxHours *int   `json:"teacherDailyMaxHours,omitempty"`
	EdgeWeight           *int   `json:"edgeWeight,omitempty"`
	NogapWeight          *int   `json:"nogapWeight,omitempty"`
	DefaultMaxConsec     *int   `json:"defaultMaxConsec,omitempty"`
}

func schoolSettingsToResponse(s *models.SchoolSettings) SchoolSettingsResponse {
	return SchoolSettingsResponse{
		SchoolName:           s.SchoolName,
		OrtaokulHours:        s.OrtaokulHours,
		LiseHours:            s.LiseHours,
		AllowSameDaySplit:    s.AllowSameDaySplit,
		MaxTeacherGapHours:   s.MaxTeacherGapHours,
		TeacherGapWeight:     s.TeacherGapWeight,
		TeacherDailyMaxHours: s.TeacherDailyMaxHours,
		EdgeWeight:           s.EdgeWeight,
		NogapWeight:          s.NogapWeight,
		DefaultMaxConsec:     s.DefaultMaxConsec,
	}
}

type UpsertSchoolSettingsRequest struct {
	SchoolName           string `json:"schoolName" binding:"required,not_blank,max=150"`
	OrtaokulHours        [5]int `json:"ortaokulHours" binding:"required"`
	LiseHours            [5]int `json:"liseHours" binding:"required"`
	AllowSameDaySplit    bool   `json:"allowSameDaySplit"`
	MaxTeacherGapHours   *int   `json:"maxTeacherGapHours"`
	TeacherGapWeight     int    `json:"teacherGapWeight"`
	TeacherDailyMaxHours *int   `json:"teacherDailyMaxHours"`
	EdgeWeight           *int   `json:"edgeWeight"`
	NogapWeight          *int   `json:"nogapWeight"`
	DefaultMaxConsec     *int   `json:"defaultMaxConsec"`
}
