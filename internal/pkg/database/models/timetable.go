// Package models provides database models for the timetable application.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level is a classroom's school level, mirroring solver.Level.
type Level string

const (
	LevelOrtaokul Level = "Ortaokul"
	LevelLise     Level = "Lise"
)

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	return l == LevelOrtaokul || l == LevelLise
}

// StringSlice is a []string stored as a JSON array column.
type StringSlice []string

// Value implements driver.Valuer.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	return string(b), err
}

// Scan implements sql.Scanner.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringSlice: %T", value)
	}
	return json.Unmarshal(b, (*[]string)(s))
}

// StringMap is a map[string]string stored as a JSON object column, used for
// the catalog's pinned-teacher-per-classroom assignment.
type StringMap map[string]string

// Value implements driver.Valuer.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	return string(b), err
}

// Scan implements sql.Scanner.
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringMap: %T", value)
	}
	return json.Unmarshal(b, (*map[string]string)(m))
}

// WeekAvailability is a teacher's 5-day-by-hour boolean availability matrix,
// stored as a JSON array of arrays ([5][]bool).
type WeekAvailability [5][]bool

// Value implements driver.Valuer.
func (w WeekAvailability) Value() (driver.Value, error) {
	b, err := json.Marshal([5][]bool(w))
	return string(b), err
}

// Scan implements sql.Scanner.
func (w *WeekAvailability) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for WeekAvailability: %T", value)
	}
	return json.Unmarshal(b, (*[5][]bool)(w))
}

// Teacher is a tenant's scheduling resource: a person with weekly
// availability and capability flags gating which classroom levels they may
// teach.
type Teacher struct {
	TenantModel

	Name                 string           `gorm:"type:varchar(150);not null" json:"name"`
	Branches             StringSlice      `gorm:"type:jsonb" json:"branches"`
	Availability         WeekAvailability `gorm:"type:jsonb;not null" json:"availability"`
	CanTeachMiddleSchool bool             `gorm:"not null;default:false" json:"can_teach_middle_school"`
	CanTeachHighSchool   bool             `gorm:"not null;default:false" json:"can_teach_high_school"`
	IsActive             bool             `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for Teacher.
func (Teacher) TableName() string { return "teachers" }

// Classroom is a physical or virtual class group that consumes a weekly
// lesson grid shaped by its Level.
type Classroom struct {
	TenantModel

	Name              string     `gorm:"type:varchar(100);not null" json:"name"`
	Level             Level      `gorm:"type:varchar(20);not null" json:"level"`
	GroupName         string     `gorm:"type:varchar(100)" json:"group_name,omitempty"`
	HomeroomTeacherID *uuid.UUID `gorm:"type:uuid" json:"homeroom_teacher_id,omitempty"`
	HomeroomTeacher   *Teacher   `gorm:"foreignKey:HomeroomTeacherID" json:"-"`
	SessionType       string     `gorm:"type:varchar(50)" json:"session_type,omitempty"`
	IsActive          bool       `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for Classroom.
func (Classroom) TableName() string { return "classrooms" }

// Location labels where a lesson takes place.
type Location struct {
	TenantModel

	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for Location.
func (Location) TableName() string { return "locations" }

// Subject is a weekly teaching load assigned to one or more classrooms.
type Subject struct {
	TenantModel

	Name                     string     `gorm:"type:varchar(150);not null" json:"name"`
	WeeklyHours              int        `gorm:"not null;default:0" json:"weekly_hours"`
	BlockHours               int        `gorm:"not null;default:0" json:"block_hours"`
	TripleBlockHours         int        `gorm:"not null;default:0" json:"triple_block_hours"`
	MaxConsec                *int       `gorm:"type:int" json:"max_consec,omitempty"`
	LocationID               *uuid.UUID `gorm:"type:uuid" json:"location_id,omitempty"`
	Location                 *Location  `gorm:"foreignKey:LocationID" json:"-"`
	RequiredTeacherCount     int        `gorm:"not null;default:1" json:"required_teacher_count"`
	AssignedClassroomIDs     StringSlice `gorm:"type:jsonb" json:"assigned_classroom_ids"`
	PinnedTeacherByClassroom StringMap   `gorm:"type:jsonb" json:"pinned_teacher_by_classroom"`
	LessonGroupID            *uuid.UUID `gorm:"type:uuid" json:"lesson_group_id,omitempty"`
	IsActive                 bool       `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for Subject.
func (Subject) TableName() string { return "subjects" }

// Validate checks the divisibility and range invariants the core requires
// before a catalog snapshot is handed to the solver.
func (s Subject) Validate() error {
	if s.WeeklyHours < 0 {
		return ErrSubjectWeeklyHoursNegative
	}
	if s.BlockHours%2 != 0 {
		return ErrSubjectBlockHoursNotDivisible
	}
	if s.TripleBlockHours%3 != 0 {
		return ErrSubjectTripleBlockHoursNotDivisible
	}
	return nil
}

// FixedAssignment declares that a given classroom slot must carry a given
// subject, regardless of what the solver would otherwise choose.
type FixedAssignment struct {
	TenantModel

	ClassroomID uuid.UUID `gorm:"type:uuid;not null" json:"classroom_id"`
	Classroom   *Classroom `gorm:"foreignKey:ClassroomID" json:"-"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null" json:"subject_id"`
	Subject     *Subject  `gorm:"foreignKey:SubjectID" json:"-"`
	DayIndex    int       `gorm:"not null" json:"day_index"`
	HourIndex   int       `gorm:"not null" json:"hour_index"`
}

// TableName returns the table name for FixedAssignment.
func (FixedAssignment) TableName() string { return "fixed_assignments" }

// LessonGroup names a cohort of subjects that must be scheduled together
// (e.g. a shared elective block). The core never consumes this directly;
// it is a catalog-level label applied across several Subject rows.
type LessonGroup struct {
	TenantModel

	Name       string      `gorm:"type:varchar(150);not null" json:"name"`
	SubjectIDs StringSlice `gorm:"type:jsonb" json:"subject_ids"`
}

// TableName returns the table name for LessonGroup.
func (LessonGroup) TableName() string { return "lesson_groups" }

// Duty is a non-teaching supervisory assignment (hallway/lunch duty etc.)
// recorded for display only; the core never consumes it.
type Duty struct {
	TenantModel

	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	Teacher   *Teacher  `gorm:"foreignKey:TeacherID" json:"-"`
	DayIndex  int       `gorm:"not null" json:"day_index"`
	HourIndex int       `gorm:"not null" json:"hour_index"`
	Label     string    `gorm:"type:varchar(100);not null" json:"label"`
}

// TableName returns the table name for Duty.
func (Duty) TableName() string { return "duties" }

// SchoolSettings persists a tenant's school name, per-level daily hour
// counts and default solve preferences so a caller does not need to
// resupply them on every solve.
type SchoolSettings struct {
	TenantModel

	SchoolName string `gorm:"type:varchar(150);not null" json:"school_name"`

	OrtaokulHours [5]int `gorm:"type:jsonb;serializer:json" json:"ortaokul_hours"`
	LiseHours     [5]int `gorm:"type:jsonb;serializer:json" json:"lise_hours"`

	AllowSameDaySplit    bool `gorm:"not null;default:true" json:"allow_same_day_split"`
	MaxTeacherGapHours   *int `gorm:"type:int" json:"max_teacher_gap_hours,omitempty"`
	TeacherGapWeight     int  `gorm:"not null;default:0" json:"teacher_gap_weight"`
	TeacherDailyMaxHours *int `gorm:"type:int" json:"teacher_daily_max_hours,omitempty"`
	EdgeWeight           *int `gorm:"type:int" json:"edge_weight,omitempty"`
	NogapWeight          *int `gorm:"type:int" json:"nogap_weight,omitempty"`
	DefaultMaxConsec     *int `gorm:"type:int" json:"default_max_consec,omitempty"`
}

// TableName returns the table name for SchoolSettings.
func (SchoolSettings) TableName() string { return "school_settings" }

// ScheduleStatus mirrors the teacher's TimetableStatus three-state lifecycle.
type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
	ScheduleStatusArchived  ScheduleStatus = "archived"
)

// GeneratedSchedule is a persisted solver run: the catalog snapshot used,
// the resulting schedule, and its publish lifecycle.
type GeneratedSchedule struct {
	TenantModel

	Name   string         `gorm:"type:varchar(150);not null" json:"name"`
	Status ScheduleStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`

	// Data holds the solver's JSON-encoded Result (schedule + stats).
	Data []byte `gorm:"type:jsonb;not null" json:"-"`

	PublishedAt *time.Time `gorm:"type:timestamptz" json:"published_at,omitempty"`
	PublishedBy *uuid.UUID `gorm:"type:uuid" json:"published_by,omitempty"`

	Entries []ScheduleEntry `gorm:"foreignKey:ScheduleID" json:"entries,omitempty"`
}

// TableName returns the table name for GeneratedSchedule.
func (GeneratedSchedule) TableName() string { return "generated_schedules" }

// ScheduleEntry is one occupied cell of a persisted GeneratedSchedule,
// denormalized for querying (e.g. "what is classroom X doing at day/hour Y").
type ScheduleEntry struct {
	BaseModel

	ScheduleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"schedule_id"`
	ClassroomID uuid.UUID `gorm:"type:uuid;not null" json:"classroom_id"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null" json:"subject_id"`
	TeacherID   uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	LocationID  *uuid.UUID `gorm:"type:uuid" json:"location_id,omitempty"`
	DayIndex    int       `gorm:"not null" json:"day_index"`
	HourIndex   int       `gorm:"not null" json:"hour_index"`
}

// TableName returns the table name for ScheduleEntry.
func (ScheduleEntry) TableName() string { return "schedule_entries" }
