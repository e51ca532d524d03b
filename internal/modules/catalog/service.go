package catalog

import (
	"context"
	"fmt"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"
	"github.com/AloneRunner/DersTimeTable/internal/solver"

	"github.com/google/uuid"
)

// Store is the persistence backend a Service operates over. The gorm-backed
// Repository and the JSON-file jsonstore.Store both satisfy it; cmd/api picks
// one at startup from the DATABASE_URL toggle (config.UseDatabase) and passes
// it to NewService.
type Store interface {
	ListTeachers(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error)
	GetTeacherByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, t *models.Teacher) error
	UpdateTeacher(ctx context.Context, t *models.Teacher) error
	DeleteTeacher(ctx context.Context, tenantID, id uuid.UUID) error

	ListClassrooms(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, int64, error)
	GetClassroomByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Classroom, error)
	CreateClassroom(ctx context.Context, c *models.Classroom) error
	UpdateClassroom(ctx context.Context, c *models.Classroom) error
	DeleteClassroom(ctx context.Context, tenantID, id uuid.UUID) error

	ListSubjects(ctx context.Context, filter SubjectFilter) ([]models.Subject, int64, error)
	GetSubjectByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Subject, error)
	CreateSubject(ctx context.Context, s *models.Subject) error
	UpdateSubject(ctx context.Context, s *models.Subject) error
	DeleteSubject(ctx context.Context, tenantID, id uuid.UUID) error

	ListLocations(ctx context.Context, tenantID uuid.UUID) ([]models.Location, error)
	GetLocationByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Location, error)
	CreateLocation(ctx context.Context, l *models.Location) error
	UpdateLocation(ctx context.Context, l *models.Location) error
	DeleteLocation(ctx context.Context, tenantID, id uuid.UUID) error

	ListFixedAssignments(ctx context.Context, tenantID uuid.UUID) ([]models.FixedAssignment, error)
	GetFixedAssignmentByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FixedAssignment, error)
	CreateFixedAssignment(ctx context.Context, f *models.FixedAssignment) error
	DeleteFixedAssignment(ctx context.Context, tenantID, id uuid.UUID) error

	ListLessonGroups(ctx context.Context, tenantID uuid.UUID) ([]models.LessonGroup, error)
	GetLessonGroupByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LessonGroup, error)
	CreateLessonGroup(ctx context.Context, g *models.LessonGroup) error
	UpdateLessonGroup(ctx context.Context, g *models.LessonGroup) error
	DeleteLessonGroup(ctx context.Context, tenantID, id uuid.UUID) error

	ListDuties(ctx context.Context, tenantID uuid.UUID) ([]models.Duty, error)
	CreateDuty(ctx context.Context, d *models.Duty) error
	DeleteDuty(ctx context.Context, tenantID, id uuid.UUID) error

	GetSchoolSettings(ctx context.Context, tenantID uuid.UUID) (*models.SchoolSettings, error)
	UpsertSchoolSettings(ctx context.Context, s *models.SchoolSettings) error
}

// Service implements catalog CRUD and builds the solver.Input snapshot a
// schedule generation request consumes.
type Service struct {
	store Store
}

// NewService creates a new catalog Service over the given Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ---------------------------------------------------------------- Teacher

func (s *Service) ListTeachers(ctx context.Context, filter TeacherFilter) ([]TeacherResponse, int64, error) {
	teachers, total, err := s.store.ListTeachers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TeacherResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, teacherToResponse(&teachers[i]))
	}
	return out, total, nil
}

func (s *Service) GetTeacher(ctx context.Context, tenantID, id uuid.UUID) (*TeacherResponse, error) {
	t, err := s.store.GetTeacherByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	r := teacherToResponse(t)
	return &r, nil
}

func (s *Service) CreateTeacher(ctx context.Context, tenantID uuid.UUID, req CreateTeacherRequest) (*TeacherResponse, error) {
	t := &models.Teacher{
		Name:                 req.Name,
		Branches:             models.StringSlice(req.Branches),
		Availability:         models.WeekAvailability(req.Availability),
		CanTeachMiddleSchool: req.CanTeachMiddleSchool,
		CanTeachHighSchool:   req.CanTeachHighSchool,
		IsActive:             true,
	}
	t.TenantID = tenantID
	if err := s.store.CreateTeacher(ctx, t); err != nil {
		return nil, err
	}
	r := teacherToResponse(t)
	return &r, nil
}

func (s *Service) UpdateTeacher(ctx context.Context, tenantID, id uuid.UUID, req UpdateTeacherRequest) (*TeacherResponse, error) {
	t, err := s.store.GetTeacherByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Branches != nil {
		t.Branches = models.StringSlice(*req.Branches)
	}
	if req.Availability != nil {
		t.Availability = models.WeekAvailability(*req.Availability)
	}
	if req.CanTeachMiddleSchool != nil {
		t.CanTeachMiddleSchool = *req.CanTeachMiddleSchool
	}
	if req.CanTeachHighSchool != nil {
		t.CanTeachHighSchool = *req.CanTeachHighSchool
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := s.store.UpdateTeacher(ctx, t); err != nil {
		return nil, err
	}
	r := teacherToResponse(t)
	return &r, nil
}

func (s *Service) DeleteTeacher(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteTeacher(ctx, tenantID, id)
}

// ---------------------------------------------------------------- Classroom

func (s *Service) ListClassrooms(ctx context.Context, filter ClassroomFilter) ([]ClassroomResponse, int64, error) {
	classrooms, total, err := s.store.ListClassrooms(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		out = append(out, classroomToResponse(&classrooms[i]))
	}
	return out, total, nil
}

func (s *Service) CreateClassroom(ctx context.Context, tenantID uuid.UUID, req CreateClassroomRequest) (*ClassroomResponse, error) {
	level := models.Level(req.Level)
	if !level.IsValid() {
		return nil, models.ErrClassroomInvalidLevel
	}
	c := &models.Classroom{
		Name:        req.Name,
		Level:       level,
		GroupName:   req.GroupName,
		SessionType: req.SessionType,
		IsActive:    true,
	}
	c.TenantID = tenantID
	if req.HomeroomTeacherID != nil {
		tid, err := uuid.Parse(*req.HomeroomTeacherID)
		if err != nil {
			return nil, fmt.Errorf("invalid homeroom teacher id: %w", err)
		}
		c.HomeroomTeacherID = &tid
	}
	if err := s.store.CreateClassroom(ctx, c); err != nil {
		return nil, err
	}
	r := classroomToResponse(c)
	return &r, nil
}

func (s *Service) UpdateClassroom(ctx context.Context, tenantID, id uuid.UUID, req UpdateClassroomRequest) (*ClassroomResponse, error) {
	c, err := s.store.GetClassroomByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Level != nil {
		level := models.Level(*req.Level)
		if !level.IsValid() {
			return nil, models.ErrClassroomInvalidLevel
		}
		c.Level = level
	}
	if req.GroupName != nil {
		c.GroupName = *req.GroupName
	}
	if req.SessionType != nil {
		c.SessionType = *req.SessionType
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.HomeroomTeacherID != nil {
		tid, err := uuid.Parse(*req.HomeroomTeacherID)
		if err != nil {
			return nil, fmt.Errorf("invalid homeroom teacher id: %w", err)
		}
		c.HomeroomTeacherID = &tid
	}
	if err := s.store.UpdateClassroom(ctx, c); err != nil {
		return nil, err
	}
	r := classroomToResponse(c)
	return &r, nil
}

func (s *Service) DeleteClassroom(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteClassroom(ctx, tenantID, id)
}

// ---------------------------------------------------------------- Subject

func (s *Service) ListSubjects(ctx context.Context, filter SubjectFilter) ([]SubjectResponse, int64, error) {
	subjects, total, err := s.store.ListSubjects(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, subjectToResponse(&subjects[i]))
	}
	return out, total, nil
}

func (s *Service) CreateSubject(ctx context.Context, tenantID uuid.UUID, req CreateSubjectRequest) (*SubjectResponse, error) {
	subj := &models.Subject{
		Name:                     req.Name,
		WeeklyHours:              req.WeeklyHours,
		BlockHours:               req.BlockHours,
		TripleBlockHours:         req.TripleBlockHours,
		MaxConsec:                req.MaxConsec,
		RequiredTeacherCount:     req.RequiredTeacherCount,
		AssignedClassroomIDs:     models.StringSlice(req.AssignedClassroomIDs),
		PinnedTeacherByClassroom: models.StringMap(req.PinnedTeacherByClassroom),
		IsActive:                 true,
	}
	subj.TenantID = tenantID
	if subj.RequiredTeacherCount == 0 {
		subj.RequiredTeacherCount = 1
	}
	if req.LocationID != nil {
		lid, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("invalid location id: %w", err)
		}
		subj.LocationID = &lid
	}
	if err := subj.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.CreateSubject(ctx, subj); err != nil {
		return nil, err
	}
	r := subjectToResponse(subj)
	return &r, nil
}

func (s *Service) UpdateSubject(ctx context.Context, tenantID, id uuid.UUID, req UpdateSubjectRequest) (*SubjectResponse, error) {
	subj, err := s.store.GetSubjectByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		subj.Name = *req.Name
	}
	if req.WeeklyHours != nil {
		subj.WeeklyHours = *req.WeeklyHours
	}
	if req.BlockHours != nil {
		subj.BlockHours = *req.BlockHours
	}
	if req.TripleBlockHours != nil {
		subj.TripleBlockHours = *req.TripleBlockHours
	}
	if req.MaxConsec != nil {
		subj.MaxConsec = req.MaxConsec
	}
	if req.RequiredTeacherCount != nil {
		subj.RequiredTeacherCount = *req.RequiredTeacherCount
	}
	if req.AssignedClassroomIDs != nil {
		subj.AssignedClassroomIDs = models.StringSlice(*req.AssignedClassroomIDs)
	}
	if req.PinnedTeacherByClassroom != nil {
		subj.PinnedTeacherByClassroom = models.StringMap(req.PinnedTeacherByClassroom)
	}
	if req.IsActive != nil {
		subj.IsActive = *req.IsActive
	}
	if req.LocationID != nil {
		lid, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("invalid location id: %w", err)
		}
		subj.LocationID = &lid
	}
	if err := subj.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSubject(ctx, subj); err != nil {
		return nil, err
	}
	r := subjectToResponse(subj)
	return &r, nil
}

func (s *Service) DeleteSubject(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteSubject(ctx, tenantID, id)
}

// ---------------------------------------------------------------- Location

func (s *Service) ListLocations(ctx context.Context, tenantID uuid.UUID) ([]LocationResponse, error) {
	locations, err := s.store.ListLocations(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		out = append(out, locationToResponse(&locations[i]))
	}
	return out, nil
}

func (s *Service) CreateLocation(ctx context.Context, tenantID uuid.UUID, req CreateLocationRequest) (*LocationResponse, error) {
	l := &models.Location{Name: req.Name, IsActive: true}
	l.TenantID = tenantID
	if err := s.store.CreateLocation(ctx, l); err != nil {
		return nil, err
	}
	r := locationToResponse(l)
	return &r, nil
}

func (s *Service) DeleteLocation(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteLocation(ctx, tenantID, id)
}

// ---------------------------------------------------------------- FixedAssignment

func (s *Service) ListFixedAssignments(ctx context.Context, tenantID uuid.UUID) ([]FixedAssignmentResponse, error) {
	assignments, err := s.store.ListFixedAssignments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]FixedAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, fixedAssignmentToResponse(&assignments[i]))
	}
	return out, nil
}

func (s *Service) CreateFixedAssignment(ctx context.Context, tenantID uuid.UUID, req CreateFixedAssignmentRequest) (*FixedAssignmentResponse, error) {
	classroomID, err := uuid.Parse(req.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("invalid classroom id: %w", err)
	}
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject id: %w", err)
	}
	f := &models.FixedAssignment{
		ClassroomID: classroomID,
		SubjectID:   subjectID,
		DayIndex:    req.DayIndex,
		HourIndex:   req.HourIndex,
	}
	f.TenantID = tenantID
	if err := s.store.CreateFixedAssignment(ctx, f); err != nil {
		return nil, err
	}
	r := fixedAssignmentToResponse(f)
	return &r, nil
}

func (s *Service) DeleteFixedAssignment(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteFixedAssignment(ctx, tenantID, id)
}

// ---------------------------------------------------------------- LessonGroup

func (s *Service) ListLessonGroups(ctx context.Context, tenantID uuid.UUID) ([]LessonGroupResponse, error) {
	groups, err := s.store.ListLessonGroups(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]LessonGroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, lessonGroupToResponse(&groups[i]))
	}
	return out, nil
}

func (s *Service) CreateLessonGroup(ctx context.Context, tenantID uuid.UUID, req CreateLessonGroupRequest) (*LessonGroupResponse, error) {
	g := &models.LessonGroup{Name: req.Name, SubjectIDs: models.StringSlice(req.SubjectIDs)}
	g.TenantID = tenantID
	if err := s.store.CreateLessonGroup(ctx, g); err != nil {
		return nil, err
	}
	r := lessonGroupToResponse(g)
	return &r, nil
}

func (s *Service) DeleteLessonGroup(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteLessonGroup(ctx, tenantID, id)
}

// ---------------------------------------------------------------- Duty

func (s *Service) ListDuties(ctx context.Context, tenantID uuid.UUID) ([]DutyResponse, error) {
	duties, err := s.store.ListDuties(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]DutyResponse, 0, len(duties))
	for i := range duties {
		out = append(out, dutyToResponse(&duties[i]))
	}
	return out, nil
}

func (s *Service) CreateDuty(ctx context.Context, tenantID uuid.UUID, req CreateDutyRequest) (*DutyResponse, error) {
	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher id: %w", err)
	}
	d := &models.Duty{
		TeacherID: teacherID,
		DayIndex:  req.DayIndex,
		HourIndex: req.HourIndex,
		Label:     req.Label,
	}
	d.TenantID = tenantID
	if err := s.store.CreateDuty(ctx, d); err != nil {
		return nil, err
	}
	r := dutyToResponse(d)
	return &r, nil
}

func (s *Service) DeleteDuty(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteDuty(ctx, tenantID, id)
}

// ---------------------------------------------------------------- SchoolSettings

func (s *Service) GetSchoolSettings(ctx context.Context, tenantID uuid.UUID) (*SchoolSettingsResponse, error) {
	settings, err := s.store.GetSchoolSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	r := schoolSettingsToResponse(settings)
	return &r, nil
}

func (s *Service) UpsertSchoolSettings(ctx context.Context, tenantID uuid.UUID, req UpsertSchoolSettingsRequest) (*SchoolSettingsResponse, error) {
	settings := &models.SchoolSettings{
		SchoolName:           req.SchoolName,
		OrtaokulHours:        req.OrtaokulHours,
		LiseHours:            req.LiseHours,
		AllowSameDaySplit:    req.AllowSameDaySplit,
		MaxTeacherGapHours:   req.MaxTeacherGapHours,
		TeacherGapWeight:     req.TeacherGapWeight,
		TeacherDailyMaxHours: req.TeacherDailyMaxHours,
		EdgeWeight:           req.EdgeWeight,
		NogapWeight:          req.NogapWeight,
		DefaultMaxConsec:     req.DefaultMaxConsec,
	}
	settings.TenantID = tenantID
	if err := s.store.UpsertSchoolSettings(ctx, settings); err != nil {
		return nil, err
	}
	r := schoolSettingsToResponse(settings)
	return &r, nil
}

// ---------------------------------------------------------------- Snapshot

// Snapshot builds the complete solver.Input plus derived school hours and
// preferences for a tenant, the exact shape the schedule module feeds to
// solver.Solve. The core itself never touches the store; this is the one
// seam between persistence and the pure solve call.
func (s *Service) Snapshot(ctx context.Context, tenantID uuid.UUID) (solver.Input, solver.SchoolHours, solver.Preferences, int, error) {
	var input solver.Input
	var hours solver.SchoolHours
	var prefs solver.Preferences
	defaultMaxConsec := 4

	teachers, _, err := s.store.ListTeachers(ctx, TeacherFilter{TenantID: tenantID})
	if err != nil {
		return input, hours, prefs, 0, err
	}
	for _, t := range teachers {
		input.Teachers = append(input.Teachers, solver.Teacher{
			ID:                   t.ID.String(),
			Name:                 t.Name,
			Branches:             []string(t.Branches),
			Availability:         [5][]bool(t.Availability),
			CanTeachMiddleSchool: t.CanTeachMiddleSchool,
			CanTeachHighSchool:   t.CanTeachHighSchool,
		})
	}

	classrooms, _, err := s.store.ListClassrooms(ctx, ClassroomFilter{TenantID: tenantID})
	if err != nil {
		return input, hours, prefs, 0, err
	}
	for _, c := range classrooms {
		cl := solver.Classroom{
			ID:          c.ID.String(),
			Name:        c.Name,
			Level:       solver.Level(c.Level),
			Group:       c.GroupName,
			SessionType: c.SessionType,
		}
		if c.HomeroomTeacherID != nil {
			cl.HomeroomTeacherID = c.HomeroomTeacherID.String()
		}
		input.Classrooms = append(input.Classrooms, cl)
	}

	subjects, _, err := s.store.ListSubjects(ctx, SubjectFilter{TenantID: tenantID})
	if err != nil {
		return input, hours, prefs, 0, err
	}
	for _, subj := range subjects {
		sub := solver.Subject{
			ID:                       subj.ID.String(),
			Name:                     subj.Name,
			WeeklyHours:              subj.WeeklyHours,
			BlockHours:               subj.BlockHours,
			TripleBlockHours:         subj.TripleBlockHours,
			MaxConsec:                subj.MaxConsec,
			RequiredTeacherCount:     subj.RequiredTeacherCount,
			AssignedClassroomIDs:     []string(subj.AssignedClassroomIDs),
			PinnedTeacherByClassroom: map[string]string(subj.PinnedTeacherByClassroom),
		}
		if subj.LocationID != nil {
			sub.LocationID = subj.LocationID.String()
		}
		input.Subjects = append(input.Subjects, sub)
	}

	locations, err := s.store.ListLocations(ctx, tenantID)
	if err != nil {
		return input, hours, prefs, 0, err
	}
	for _, l := range locations {
		input.Locations = append(input.Locations, solver.Location{ID: l.ID.String(), Name: l.Name})
	}

	assignments, err := s.store.ListFixedAssignments(ctx, tenantID)
	if err != nil {
		return input, hours, prefs, 0, err
	}
	for _, f := range assignments {
		input.FixedAssignments = append(input.FixedAssignments, solver.FixedAssignment{
			ClassroomID: f.ClassroomID.String(),
			SubjectID:   f.SubjectID.String(),
			DayIndex:    f.DayIndex,
			HourIndex:   f.HourIndex,
		})
	}

	settings, err := s.store.GetSchoolSettings(ctx, tenantID)
	if err != nil {
		if err == ErrSchoolSettingsNotFound {
			return input, hours, prefs, defaultMaxConsec, nil
		}
		return input, hours, prefs, 0, err
	}

	hours.Ortaokul = settings.OrtaokulHours
	hours.Lise = settings.LiseHours
	prefs = solver.Preferences{
		AllowSameDaySplit:    settings.AllowSameDaySplit,
		MaxTeacherGapHours:   settings.MaxTeacherGapHours,
		TeacherGapWeight:     settings.TeacherGapWeight,
		TeacherDailyMaxHours: settings.TeacherDailyMaxHours,
		EdgeWeight:           settings.EdgeWeight,
		NogapWeight:          settings.NogapWeight,
	}
	if settings.DefaultMaxConsec != nil {
		defaultMaxConsec = *settings.DefaultMaxConsec
	}

	return input, hours, prefs, defaultMaxConsec, nil
}
