package solver

import "fmt"

// pair is one eligible (classroom, subject) combination surviving
// normalization, together with its resolved eligible teachers and effective
// max-consecutive bound.
type pair struct {
	classroom    *Classroom
	subject      *Subject
	teacherIDs   []string
	effMaxConsec int // 0 means "no hard cap"
	block2       int
	block3       int
}

// normalized is the frozen, validated view of an Input plus the derived
// dense-id indexing the constraint builder operates over.
type normalized struct {
	schoolHours      SchoolHours
	prefs            Preferences
	defaultMaxConsec *int

	teachers      []Teacher
	teacherByID   map[string]*Teacher
	classroomByID map[string]*Classroom
	subjectByID   map[string]*Subject

	teacherIDs   *interner
	classroomIDs *interner
	subjectIDs   *interner

	pairs         []pair
	pairIndexByCS map[[2]string]int

	fixed []FixedAssignment

	notes []string
}

// normalize validates the input and builds the eligible-pair set described
// in §4.1 and §4.3. It returns a MalformedInputError for any condition §7
// classifies as MalformedInput; everything else (including an empty
// eligible-pair set) is recorded as a note and left for the solver to
// report as a modeling outcome.
func normalize(in *Input, sh SchoolHours, timeLimitSeconds int, defaultMaxConsec *int, prefs Preferences) (*normalized, error) {
	for d := 0; d < 5; d++ {
		if sh.Ortaokul[d] < 0 || sh.Lise[d] < 0 {
			return nil, malformed("schoolHours day %d has a negative hour count", d)
		}
	}

	n := &normalized{
		schoolHours:      sh,
		prefs:            prefs,
		defaultMaxConsec: defaultMaxConsec,
		teachers:         in.Teachers,
		teacherByID:      make(map[string]*Teacher, len(in.Teachers)),
		classroomByID:    make(map[string]*Classroom, len(in.Classrooms)),
		subjectByID:      make(map[string]*Subject, len(in.Subjects)),
		teacherIDs:       newInterner(),
		classroomIDs:     newInterner(),
		subjectIDs:       newInterner(),
		pairIndexByCS:    make(map[[2]string]int),
		fixed:            in.FixedAssignments,
	}

	for i := range in.Teachers {
		t := &in.Teachers[i]
		if t.ID == "" {
			return nil, malformed("teacher at index %d is missing an id", i)
		}
		for d := 0; d < 5; d++ {
			if len(t.Availability[d]) != sh.AllowedLen(LevelOrtaokul, d) && len(t.Availability[d]) != sh.AllowedLen(LevelLise, d) {
				// Availability whose length matches neither level's per-day
				// length must cover at least the longer of the two.
				want := sh.Ortaokul[d]
				if sh.Lise[d] > want {
					want = sh.Lise[d]
				}
				if len(t.Availability[d]) < want {
					return nil, malformed("teacher %s availability on day %d has length %d, want at least %d", t.ID, d, len(t.Availability[d]), want)
				}
			}
		}
		n.teacherByID[t.ID] = t
	}

	for i := range in.Classrooms {
		c := &in.Classrooms[i]
		if c.ID == "" {
			return nil, malformed("classroom at index %d is missing an id", i)
		}
		if c.Level != LevelOrtaokul && c.Level != LevelLise {
			return nil, malformed("classroom %s has unknown level %q", c.ID, c.Level)
		}
		n.classroomByID[c.ID] = c
	}

	for i := range in.Subjects {
		s := &in.Subjects[i]
		if s.ID == "" {
			return nil, malformed("subject at index %d is missing an id", i)
		}
		if s.WeeklyHours < 0 {
			return nil, malformed("subject %s has negative weeklyHours", s.ID)
		}
		if s.BlockHours < 0 || s.TripleBlockHours < 0 {
			return nil, malformed("subject %s has a negative block-hours field", s.ID)
		}
		if s.BlockHours%2 != 0 {
			return nil, malformed("subject %s blockHours=%d is not divisible by 2", s.ID, s.BlockHours)
		}
		if s.TripleBlockHours%3 != 0 {
			return nil, malformed("subject %s tripleBlockHours=%d is not divisible by 3", s.ID, s.TripleBlockHours)
		}
		n.subjectByID[s.ID] = s
	}

	for i, fa := range in.FixedAssignments {
		if fa.DayIndex < 0 || fa.DayIndex >= 5 {
			return nil, malformed("fixed assignment at index %d has dayIndex %d out of range", i, fa.DayIndex)
		}
		c, ok := n.classroomByID[fa.ClassroomID]
		if !ok {
			return nil, malformed("fixed assignment at index %d references unknown classroom %s", i, fa.ClassroomID)
		}
		if fa.HourIndex < 0 || fa.HourIndex >= sh.AllowedLen(c.Level, fa.DayIndex) {
			return nil, malformed("fixed assignment at index %d has hourIndex %d out of range for classroom %s on day %d", i, fa.HourIndex, fa.ClassroomID, fa.DayIndex)
		}
		if _, ok := n.subjectByID[fa.SubjectID]; !ok {
			return nil, malformed("fixed assignment at index %d references unknown subject %s", i, fa.SubjectID)
		}
	}

	for i := range in.Subjects {
		s := &in.Subjects[i]
		effMaxConsec := 0
		if s.MaxConsec != nil {
			effMaxConsec = *s.MaxConsec
		} else if defaultMaxConsec != nil {
			effMaxConsec = *defaultMaxConsec
		}
		if effMaxConsec > 0 && s.WeeklyHours > 0 {
			effMaxConsec = clamp(effMaxConsec, 1, s.WeeklyHours)
		}

		block2 := s.BlockHours / 2
		block3 := s.TripleBlockHours / 3

		for _, cid := range s.AssignedClassroomIDs {
			c, ok := n.classroomByID[cid]
			if !ok {
				// Unresolved classroom ids are silently skipped (§6).
				continue
			}
			teacherIDs := eligibleTeachers(in.Teachers, n.teacherByID, c, s)
			if len(teacherIDs) == 0 {
				n.notes = append(n.notes, fmt.Sprintf("Skipped: %s / %s (no eligible teacher)", s.Name, c.ID))
				continue
			}

			n.classroomIDs.id(c.ID)
			n.subjectIDs.id(s.ID)
			for _, tid := range teacherIDs {
				n.teacherIDs.id(tid)
			}

			n.pairIndexByCS[[2]string{c.ID, s.ID}] = len(n.pairs)
			n.pairs = append(n.pairs, pair{
				classroom:    c,
				subject:      s,
				teacherIDs:   teacherIDs,
				effMaxConsec: effMaxConsec,
				block2:       block2,
				block3:       block3,
			})
		}
	}

	n.checkFixedAvailability()

	return n, nil
}

// checkFixedAvailability implements the "fixed-assignment vs. availability"
// Open Question resolution from SPEC_FULL.md §9: when no eligible teacher of
// a fixed assignment's (classroom, subject) pair is available at the pinned
// slot (directly, or via a block start covering it), the model will be
// infeasible; this appends an explanatory note ahead of time rather than
// leaving the caller with a bare status token.
func (n *normalized) checkFixedAvailability() {
	for _, fa := range n.fixed {
		idx, ok := n.pairIndexByCS[[2]string{fa.ClassroomID, fa.SubjectID}]
		if !ok {
			continue
		}
		p := n.pairs[idx]
		available := false
		for _, tid := range p.teacherIDs {
			t := n.teacherByID[tid]
			if fa.HourIndex < len(t.Availability[fa.DayIndex]) && t.Availability[fa.DayIndex][fa.HourIndex] {
				available = true
				break
			}
			if fa.HourIndex > 0 && fa.HourIndex-1 < len(t.Availability[fa.DayIndex]) && t.Availability[fa.DayIndex][fa.HourIndex-1] && t.Availability[fa.DayIndex][fa.HourIndex] {
				available = true
				break
			}
		}
		if !available {
			n.notes = append(n.notes, fmt.Sprintf(
				"Fixed assignment %s/%s@%d:%d has no available teacher; expect INFEASIBLE",
				fa.ClassroomID, fa.SubjectID, fa.DayIndex, fa.HourIndex))
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
