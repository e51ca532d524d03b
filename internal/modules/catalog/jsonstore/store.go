// Package jsonstore is a JSON-file-backed implementation of catalog.Store,
// used when no DATABASE_URL is configured. It mirrors the original source's
// storage.py: a single on-disk JSON document, guarded by a mutex, read in
// full and rewritten in full on every mutation.
package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/AloneRunner/DersTimeTable/internal/modules/catalog"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"

	"github.com/google/uuid"
)

type document struct {
	Teachers         []models.Teacher         `json:"teachers"`
	Classrooms       []models.Classroom       `json:"classrooms"`
	Subjects         []models.Subject         `json:"subjects"`
	Locations        []models.Location        `json:"locations"`
	FixedAssignments []models.FixedAssignment `json:"fixed_assignments"`
	LessonGroups     []models.LessonGroup     `json:"lesson_groups"`
	Duties           []models.Duty            `json:"duties"`
	SchoolSettings   []models.SchoolSettings  `json:"school_settings"`
}

// Store is the JSON-file catalog.Store implementation. The zero value is not
// usable; construct with New.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store backed by the file at path. The file is created lazily
// on first write.
func New(path string) *Store {
	return &Store{path: path}
}

var _ catalog.Store = (*Store)(nil)

func (s *Store) read() (document, error) {
	var doc document
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return doc, err
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return document{}, nil
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

// ---------------------------------------------------------------- Teacher

func (s *Store) ListTeachers(_ context.Context, filter catalog.TeacherFilter) ([]models.Teacher, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, 0, err
	}
	var out []models.Teacher
	for _, t := range doc.Teachers {
		if t.TenantID != filter.TenantID {
			continue
		}
		if filter.IsActive != nil && t.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (s *Store) GetTeacherByID(_ context.Context, tenantID, id uuid.UUID) (*models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Teachers {
		if doc.Teachers[i].TenantID == tenantID && doc.Teachers[i].ID == id {
			return &doc.Teachers[i], nil
		}
	}
	return nil, catalog.ErrTeacherNotFound
}

func (s *Store) CreateTeacher(_ context.Context, t *models.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	doc.Teachers = append(doc.Teachers, *t)
	return s.write(doc)
}

func (s *Store) UpdateTeacher(_ context.Context, t *models.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Teachers {
		if doc.Teachers[i].ID == t.ID {
			doc.Teachers[i] = *t
			return s.write(doc)
		}
	}
	return catalog.ErrTeacherNotFound
}

func (s *Store) DeleteTeacher(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.Teachers[:0]
	for _, t := range doc.Teachers {
		if t.TenantID == tenantID && t.ID == id {
			continue
		}
		out = append(out, t)
	}
	doc.Teachers = out
	return s.write(doc)
}

// ---------------------------------------------------------------- Classroom

func (s *Store) ListClassrooms(_ context.Context, filter catalog.ClassroomFilter) ([]models.Classroom, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, 0, err
	}
	var out []models.Classroom
	for _, c := range doc.Classrooms {
		if c.TenantID != filter.TenantID {
			continue
		}
		if filter.Level != nil && c.Level != *filter.Level {
			continue
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (s *Store) GetClassroomByID(_ context.Context, tenantID, id uuid.UUID) (*models.Classroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Classrooms {
		if doc.Classrooms[i].TenantID == tenantID && doc.Classrooms[i].ID == id {
			return &doc.Classrooms[i], nil
		}
	}
	return nil, catalog.ErrClassroomNotFound
}

func (s *Store) CreateClassroom(_ context.Context, c *models.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	doc.Classrooms = append(doc.Classrooms, *c)
	return s.write(doc)
}

func (s *Store) UpdateClassroom(_ context.Context, c *models.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Classrooms {
		if doc.Classrooms[i].ID == c.ID {
			doc.Classrooms[i] = *c
			return s.write(doc)
		}
	}
	return catalog.ErrClassroomNotFound
}

func (s *Store) DeleteClassroom(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.Classrooms[:0]
	for _, c := range doc.Classrooms {
		if c.TenantID == tenantID && c.ID == id {
			continue
		}
		out = append(out, c)
	}
	doc.Classrooms = out
	return s.write(doc)
}

// ---------------------------------------------------------------- Subject

func (s *Store) ListSubjects(_ context.Context, filter catalog.SubjectFilter) ([]models.Subject, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, 0, err
	}
	var out []models.Subject
	for _, subj := range doc.Subjects {
		if subj.TenantID != filter.TenantID {
			continue
		}
		if filter.IsActive != nil && subj.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, subj)
	}
	return out, int64(len(out)), nil
}

func (s *Store) GetSubjectByID(_ context.Context, tenantID, id uuid.UUID) (*models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Subjects {
		if doc.Subjects[i].TenantID == tenantID && doc.Subjects[i].ID == id {
			return &doc.Subjects[i], nil
		}
	}
	return nil, catalog.ErrSubjectNotFound
}

func (s *Store) CreateSubject(_ context.Context, subj *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if subj.ID == uuid.Nil {
		subj.ID = uuid.New()
	}
	doc.Subjects = append(doc.Subjects, *subj)
	return s.write(doc)
}

func (s *Store) UpdateSubject(_ context.Context, subj *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Subjects {
		if doc.Subjects[i].ID == subj.ID {
			doc.Subjects[i] = *subj
			return s.write(doc)
		}
	}
	return catalog.ErrSubjectNotFound
}

func (s *Store) DeleteSubject(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.Subjects[:0]
	for _, subj := range doc.Subjects {
		if subj.TenantID == tenantID && subj.ID == id {
			continue
		}
		out = append(out, subj)
	}
	doc.Subjects = out
	return s.write(doc)
}

// ---------------------------------------------------------------- Location

func (s *Store) ListLocations(_ context.Context, tenantID uuid.UUID) ([]models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []models.Location
	for _, l := range doc.Locations {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) GetLocationByID(_ context.Context, tenantID, id uuid.UUID) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Locations {
		if doc.Locations[i].TenantID == tenantID && doc.Locations[i].ID == id {
			return &doc.Locations[i], nil
		}
	}
	return nil, catalog.ErrLocationNotFound
}

func (s *Store) CreateLocation(_ context.Context, l *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	doc.Locations = append(doc.Locations, *l)
	return s.write(doc)
}

func (s *Store) UpdateLocation(_ context.Context, l *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Locations {
		if doc.Locations[i].ID == l.ID {
			doc.Locations[i] = *l
			return s.write(doc)
		}
	}
	return catalog.ErrLocationNotFound
}

func (s *Store) DeleteLocation(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.Locations[:0]
	for _, l := range doc.Locations {
		if l.TenantID == tenantID && l.ID == id {
			continue
		}
		out = append(out, l)
	}
	doc.Locations = out
	return s.write(doc)
}

// ---------------------------------------------------------------- FixedAssignment

func (s *Store) ListFixedAssignments(_ context.Context, tenantID uuid.UUID) ([]models.FixedAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []models.FixedAssignment
	for _, f := range doc.FixedAssignments {
		if f.TenantID == tenantID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Store) GetFixedAssignmentByID(_ context.Context, tenantID, id uuid.UUID) (*models.FixedAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.FixedAssignments {
		if doc.FixedAssignments[i].TenantID == tenantID && doc.FixedAssignments[i].ID == id {
			return &doc.FixedAssignments[i], nil
		}
	}
	return nil, catalog.ErrFixedAssignmentNotFound
}

func (s *Store) CreateFixedAssignment(_ context.Context, f *models.FixedAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	doc.FixedAssignments = append(doc.FixedAssignments, *f)
	return s.write(doc)
}

func (s *Store) DeleteFixedAssignment(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.FixedAssignments[:0]
	for _, f := range doc.FixedAssignments {
		if f.TenantID == tenantID && f.ID == id {
			continue
		}
		out = append(out, f)
	}
	doc.FixedAssignments = out
	return s.write(doc)
}

// ---------------------------------------------------------------- LessonGroup

func (s *Store) ListLessonGroups(_ context.Context, tenantID uuid.UUID) ([]models.LessonGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []models.LessonGroup
	for _, g := range doc.LessonGroups {
		if g.TenantID == tenantID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Store) GetLessonGroupByID(_ context.Context, tenantID, id uuid.UUID) (*models.LessonGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.LessonGroups {
		if doc.LessonGroups[i].TenantID == tenantID && doc.LessonGroups[i].ID == id {
			return &doc.LessonGroups[i], nil
		}
	}
	return nil, catalog.ErrLessonGroupNotFound
}

func (s *Store) CreateLessonGroup(_ context.Context, g *models.LessonGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	doc.LessonGroups = append(doc.LessonGroups, *g)
	return s.write(doc)
}

func (s *Store) UpdateLessonGroup(_ context.Context, g *models.LessonGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.LessonGroups {
		if doc.LessonGroups[i].ID == g.ID {
			doc.LessonGroups[i] = *g
			return s.write(doc)
		}
	}
	return catalog.ErrLessonGroupNotFound
}

func (s *Store) DeleteLessonGroup(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.LessonGroups[:0]
	for _, g := range doc.LessonGroups {
		if g.TenantID == tenantID && g.ID == id {
			continue
		}
		out = append(out, g)
	}
	doc.LessonGroups = out
	return s.write(doc)
}

// ---------------------------------------------------------------- Duty

func (s *Store) ListDuties(_ context.Context, tenantID uuid.UUID) ([]models.Duty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []models.Duty
	for _, d := range doc.Duties {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) CreateDuty(_ context.Context, d *models.Duty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	doc.Duties = append(doc.Duties, *d)
	return s.write(doc)
}

func (s *Store) DeleteDuty(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	out := doc.Duties[:0]
	for _, d := range doc.Duties {
		if d.TenantID == tenantID && d.ID == id {
			continue
		}
		out = append(out, d)
	}
	doc.Duties = out
	return s.write(doc)
}

// ---------------------------------------------------------------- SchoolSettings

func (s *Store) GetSchoolSettings(_ context.Context, tenantID uuid.UUID) (*models.SchoolSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.SchoolSettings {
		if doc.SchoolSettings[i].TenantID == tenantID {
			return &doc.SchoolSettings[i], nil
		}
	}
	return nil, catalog.ErrSchoolSettingsNotFound
}

func (s *Store) UpsertSchoolSettings(_ context.Context, settings *models.SchoolSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.SchoolSettings {
		if doc.SchoolSettings[i].TenantID == settings.TenantID {
			if settings.ID == uuid.Nil {
				settings.ID = doc.SchoolSettings[i].ID
			}
			doc.SchoolSettings[i] = *settings
			return s.write(doc)
		}
	}
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	doc.SchoolSettings = append(doc.SchoolSettings, *settings)
	return s.write(doc)
}
