// Package models provides GORM model definitions for the MSLS database.
package models

import "errors"

// Model validation errors.
var (
	// Common errors
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrTenantIDRequired = errors.New("tenant_id is required")

	// Tenant errors
	ErrTenantNameRequired = errors.New("tenant name is required")
	ErrTenantSlugRequired = errors.New("tenant slug is required")

	// Catalog errors
	ErrTeacherNameRequired                  = errors.New("teacher name is required")
	ErrClassroomNameRequired                = errors.New("classroom name is required")
	ErrClassroomInvalidLevel                = errors.New("classroom level must be Ortaokul or Lise")
	ErrSubjectNameRequired                  = errors.New("subject name is required")
	ErrSubjectWeeklyHoursNegative           = errors.New("subject weekly hours must be non-negative")
	ErrSubjectBlockHoursNotDivisible        = errors.New("subject block hours must be divisible by 2")
	ErrSubjectTripleBlockHoursNotDivisible  = errors.New("subject triple block hours must be divisible by 3")
	ErrFixedAssignmentDayOutOfRange         = errors.New("fixed assignment day index must be in [0,5)")
	ErrFixedAssignmentHourOutOfRange        = errors.New("fixed assignment hour index is out of range")
	ErrLocationNameRequired                 = errors.New("location name is required")
	ErrSchoolSettingsNameRequired           = errors.New("school name is required")
	ErrGeneratedScheduleNotDraft            = errors.New("schedule is not in draft status")
	ErrGeneratedScheduleAlreadyPublished    = errors.New("schedule is already published")
)
