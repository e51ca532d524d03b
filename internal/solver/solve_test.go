package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func middleSchoolHours() SchoolHours {
	return SchoolHours{
		Ortaokul: [5]int{6, 6, 6, 6, 6},
		Lise:     [5]int{0, 0, 0, 0, 0},
	}
}

func availableAllWeek(h int) [5][]bool {
	return [5][]bool{
		fullAvailability(h), fullAvailability(h), fullAvailability(h), fullAvailability(h), fullAvailability(h),
	}
}

// Scenario 1: one class, one subject, one teacher, feasible.
func TestSolveOneClassOneSubjectFeasible(t *testing.T) {
	in := &Input{
		Teachers: []Teacher{{
			ID: "t1", Name: "Alice", CanTeachMiddleSchool: true,
			Availability: availableAllWeek(6),
		}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 5,
			RequiredTeacherCount: 1, AssignedClassroomIDs: []string{"c1"},
		}},
	}

	res, err := Solve(in, middleSchoolHours(), 5, nil, Preferences{}, false)
	require.NoError(t, err)

	count := 0
	for d := 0; d < 5; d++ {
		for _, cell := range res.Schedule["c1"][d] {
			if cell == nil {
				continue
			}
			require.Equal(t, "s1", cell.SubjectID)
			require.Equal(t, "t1", cell.TeacherID)
			count++
		}
	}
	assert.Equal(t, 5, count, "placements")
}

// Scenario 2: strict 2-block subject must produce exactly two 2-hour runs.
func TestSolveStrictTwoBlock(t *testing.T) {
	in := &Input{
		Teachers: []Teacher{{
			ID: "t1", CanTeachMiddleSchool: true, Availability: availableAllWeek(6),
		}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 4, BlockHours: 4,
			AssignedClassroomIDs: []string{"c1"},
		}},
	}

	res, err := Solve(in, middleSchoolHours(), 5, nil, Preferences{}, false)
	require.NoError(t, err)

	runs := runLengths(res.Schedule["c1"], "s1")
	twoCount, other := 0, 0
	for _, r := range runs {
		if r == 2 {
			twoCount++
		} else {
			other++
		}
	}
	assert.Equal(t, 2, twoCount, "runs = %v, want exactly two runs of length 2", runs)
	assert.Zero(t, other, "runs = %v, want exactly two runs of length 2", runs)
}

// Scenario 3: maxConsec clamp forbids any run longer than 2.
func TestSolveMaxConsecutiveClamp(t *testing.T) {
	maxConsec := 2
	in := &Input{
		Teachers: []Teacher{{
			ID: "t1", CanTeachMiddleSchool: true, Availability: availableAllWeek(6),
		}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 5, MaxConsec: &maxConsec,
			AssignedClassroomIDs: []string{"c1"},
		}},
	}

	res, err := Solve(in, middleSchoolHours(), 5, nil, Preferences{AllowSameDaySplit: true}, false)
	require.NoError(t, err)

	for _, r := range runLengths(res.Schedule["c1"], "s1") {
		assert.LessOrEqual(t, r, 2, "found a run longer than the maxConsec clamp")
	}
}

// Scenario 4: a fixed pin must appear exactly where declared.
func TestSolveFixedPinHonored(t *testing.T) {
	in := &Input{
		Teachers: []Teacher{{
			ID: "t1", CanTeachMiddleSchool: true, Availability: availableAllWeek(6),
		}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 3,
			AssignedClassroomIDs: []string{"c1"},
		}},
		FixedAssignments: []FixedAssignment{
			{ClassroomID: "c1", SubjectID: "s1", DayIndex: 0, HourIndex: 0},
		},
	}

	res, err := Solve(in, middleSchoolHours(), 5, nil, Preferences{}, false)
	require.NoError(t, err)

	cell := res.Schedule["c1"][0][0]
	require.NotNil(t, cell, "expected the fixed pin at (0,0)")
	assert.Equal(t, "s1", cell.SubjectID)
}

// Scenario 5: two classes each needing 6 hours from the same single teacher,
// who is available on only 10 slots of the 5-day × 5-hour grid (days 0 and
// 1), must be proven infeasible.
func TestSolveInfeasibleReportsStatus(t *testing.T) {
	avail := [5][]bool{
		fullAvailability(5), fullAvailability(5), make([]bool, 5), make([]bool, 5), make([]bool, 5),
	}
	in := &Input{
		Teachers: []Teacher{{ID: "t1", CanTeachMiddleSchool: true, Availability: avail}},
		Classrooms: []Classroom{
			{ID: "c1", Level: LevelOrtaokul},
			{ID: "c2", Level: LevelOrtaokul},
		},
		Subjects: []Subject{
			{ID: "s1", Name: "Math", WeeklyHours: 6, AssignedClassroomIDs: []string{"c1"}},
			{ID: "s2", Name: "Math", WeeklyHours: 6, AssignedClassroomIDs: []string{"c2"}},
		},
	}
	sh := SchoolHours{Ortaokul: [5]int{5, 5, 5, 5, 5}}

	res, err := Solve(in, sh, 5, nil, Preferences{}, false)
	require.NoError(t, err)

	assert.Contains(t, res.Stats.Notes, "status=INFEASIBLE")
	for _, day := range res.Schedule["c1"] {
		for _, cell := range day {
			assert.Nil(t, cell, "expected an empty grid for c1 on infeasibility")
		}
	}
}

// Scenario 6: without AllowSameDaySplit, a subject's hours on a single day
// must land in one contiguous run. Pinning the only available day to two
// non-adjacent hours (0 and 2, with hour 1 unavailable) leaves no contiguous
// placement, so the solver must report infeasibility rather than split the
// subject's hours around the gap.
func TestSolveRejectsSameDaySplit(t *testing.T) {
	gapAvailability := [5][]bool{
		{true, false, true},
		{}, {}, {}, {},
	}
	in := &Input{
		Teachers: []Teacher{{
			ID: "t1", CanTeachMiddleSchool: true, Availability: gapAvailability,
		}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 2,
			AssignedClassroomIDs: []string{"c1"},
		}},
	}
	sh := SchoolHours{Ortaokul: [5]int{3, 0, 0, 0, 0}}

	res, err := Solve(in, sh, 5, nil, Preferences{AllowSameDaySplit: false}, false)
	require.NoError(t, err)

	assert.Contains(t, res.Stats.Notes, "status=INFEASIBLE",
		"contiguity must forbid the hour-0/hour-2 split")
}

// runLengths returns the length of every maximal run of subjectID across a
// classroom's week, scanning each day independently.
func runLengths(grid [][]*Assignment, subjectID string) []int {
	var runs []int
	for _, day := range grid {
		run := 0
		for _, cell := range day {
			occupied := cell != nil && cell.SubjectID == subjectID
			if occupied {
				run++
				continue
			}
			if run > 0 {
				runs = append(runs, run)
				run = 0
			}
		}
		if run > 0 {
			runs = append(runs, run)
		}
	}
	return runs
}
