// Package schedule generates, stores, and publishes weekly timetables by
// feeding a tenant's catalog snapshot through the solver.
package schedule

import "errors"

// Domain errors for the schedule module.
var (
	ErrScheduleNotFound        = errors.New("schedule not found")
	ErrScheduleNotDraft        = errors.New("only a draft schedule can be modified")
	ErrScheduleAlreadyPublished = errors.New("schedule is already published")
)
