package solver

// eligibleTeachers implements the §4.1 policy: a classroom pin wins outright;
// otherwise a teacher must hold the capability flag matching the classroom's
// level, and if the teacher declares a non-empty branch set, the subject
// name must appear in it.
func eligibleTeachers(teachers []Teacher, teacherByID map[string]*Teacher, c *Classroom, s *Subject) []string {
	if pinnedID, ok := s.PinnedTeacherByClassroom[c.ID]; ok {
		if _, known := teacherByID[pinnedID]; known {
			return []string{pinnedID}
		}
	}

	needMiddle := c.Level == LevelOrtaokul
	needHigh := c.Level == LevelLise

	var out []string
	for _, t := range teachers {
		if needMiddle && !t.CanTeachMiddleSchool {
			continue
		}
		if needHigh && !t.CanTeachHighSchool {
			continue
		}
		if len(t.Branches) > 0 && !containsString(t.Branches, s.Name) {
			continue
		}
		out = append(out, t.ID)
	}
	return out
}

// classDayOk reports whether hour h on day d lies within the classroom's
// allowed teaching length for that day.
func classDayOk(sh SchoolHours, c *Classroom, d, h int) bool {
	return h < sh.AllowedLen(c.Level, d)
}

func containsString(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
