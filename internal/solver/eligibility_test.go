package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func fullAvailability(h int) []bool {
	a := make([]bool, h)
	for i := range a {
		a[i] = true
	}
	return a
}

func TestEligibleTeachersPinWins(t *testing.T) {
	teachers := []Teacher{
		{ID: "t1", CanTeachMiddleSchool: true},
		{ID: "t2", CanTeachMiddleSchool: false},
	}
	byID := map[string]*Teacher{"t1": &teachers[0], "t2": &teachers[1]}
	c := &Classroom{ID: "c1", Level: LevelOrtaokul}
	s := &Subject{
		ID:                       "s1",
		Name:                     "Math",
		PinnedTeacherByClassroom: map[string]string{"c1": "t2"},
	}

	got := eligibleTeachers(teachers, byID, c, s)
	assert.Equal(t, []string{"t2"}, got, "pin overrides capability")
}

func TestEligibleTeachersCapabilityAndBranchFilter(t *testing.T) {
	teachers := []Teacher{
		{ID: "middle-only", CanTeachMiddleSchool: true, CanTeachHighSchool: false},
		{ID: "high-only", CanTeachMiddleSchool: false, CanTeachHighSchool: true},
		{ID: "wrong-branch", CanTeachMiddleSchool: true, Branches: []string{"Chemistry"}},
		{ID: "right-branch", CanTeachMiddleSchool: true, Branches: []string{"Math"}},
	}
	byID := map[string]*Teacher{}
	for i := range teachers {
		byID[teachers[i].ID] = &teachers[i]
	}
	c := &Classroom{ID: "c1", Level: LevelOrtaokul}
	s := &Subject{ID: "s1", Name: "Math"}

	got := eligibleTeachers(teachers, byID, c, s)
	assert.ElementsMatch(t, []string{"middle-only", "right-branch"}, got)
}

func TestEligibleTeachersUnknownPinFallsBackToBranchEligibility(t *testing.T) {
	teachers := []Teacher{{ID: "t1", CanTeachMiddleSchool: true}}
	byID := map[string]*Teacher{"t1": &teachers[0]}
	c := &Classroom{ID: "c1", Level: LevelOrtaokul}
	s := &Subject{
		ID:                       "s1",
		Name:                     "Math",
		PinnedTeacherByClassroom: map[string]string{"c1": "ghost"},
	}

	got := eligibleTeachers(teachers, byID, c, s)
	assert.Equal(t, []string{"t1"}, got, "unresolved pin falls back to capability eligibility")
}

func TestClassDayOk(t *testing.T) {
	sh := SchoolHours{Ortaokul: [5]int{6, 6, 6, 6, 6}}
	c := &Classroom{Level: LevelOrtaokul}
	assert.True(t, classDayOk(sh, c, 0, 5), "hour 5 should be within a 6-hour day")
	assert.False(t, classDayOk(sh, c, 0, 6), "hour 6 should be outside a 6-hour day")
}
