// Package catalog manages the teacher/classroom/subject/location catalog
// that a solve reads its Input from.
package catalog

import "errors"

var (
	ErrTeacherNotFound         = errors.New("teacher not found")
	ErrClassroomNotFound       = errors.New("classroom not found")
	ErrSubjectNotFound         = errors.New("subject not found")
	ErrLocationNotFound        = errors.New("location not found")
	ErrFixedAssignmentNotFound = errors.New("fixed assignment not found")
	ErrLessonGroupNotFound     = errors.New("lesson group not found")
	ErrDutyNotFound            = errors.New("duty not found")
	ErrSchoolSettingsNotFound  = errors.New("school settings not found")
)
