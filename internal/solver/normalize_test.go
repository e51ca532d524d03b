package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSchoolHours() SchoolHours {
	return SchoolHours{
		Ortaokul: [5]int{6, 6, 6, 6, 6},
		Lise:     [5]int{0, 0, 0, 0, 0},
	}
}

func TestNormalizeRejectsNonDivisibleBlockHours(t *testing.T) {
	in := &Input{
		Teachers: []Teacher{{ID: "t1", CanTeachMiddleSchool: true, Availability: [5][]bool{
			fullAvailability(6), fullAvailability(6), fullAvailability(6), fullAvailability(6), fullAvailability(6),
		}}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 5, BlockHours: 3,
			AssignedClassroomIDs: []string{"c1"},
		}},
	}

	_, err := normalize(in, baseSchoolHours(), 5, nil, Preferences{})
	require.Error(t, err, "expected a MalformedInputError for blockHours not divisible by 2")
	assert.IsType(t, &MalformedInputError{}, err)
}

func TestNormalizeSkipsUnresolvedClassroomSilently(t *testing.T) {
	in := &Input{
		Teachers:   []Teacher{{ID: "t1", CanTeachMiddleSchool: true}},
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 5,
			AssignedClassroomIDs: []string{"ghost-classroom"},
		}},
	}

	n, err := normalize(in, baseSchoolHours(), 5, nil, Preferences{})
	require.NoError(t, err)
	assert.Empty(t, n.pairs, "expected no pairs for an unresolved classroom")
	for _, note := range n.notes {
		assert.NotContains(t, note, "ghost-classroom", "an unresolved classroom id must be silently skipped, not noted")
	}
}

func TestNormalizeNotesNoEligibleTeacher(t *testing.T) {
	in := &Input{
		Teachers:   []Teacher{{ID: "t1", CanTeachHighSchool: true}}, // cannot teach Ortaokul
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects: []Subject{{
			ID: "s1", Name: "Math", WeeklyHours: 5,
			AssignedClassroomIDs: []string{"c1"},
		}},
	}

	n, err := normalize(in, baseSchoolHours(), 5, nil, Preferences{})
	require.NoError(t, err)
	assert.Empty(t, n.pairs, "expected no eligible pair")

	found := false
	for _, note := range n.notes {
		if strings.Contains(note, "no eligible teacher") {
			found = true
		}
	}
	assert.True(t, found, "expected a 'no eligible teacher' note, got %v", n.notes)
}

func TestNormalizeRejectsFixedAssignmentOutOfRange(t *testing.T) {
	in := &Input{
		Classrooms: []Classroom{{ID: "c1", Level: LevelOrtaokul}},
		Subjects:   []Subject{{ID: "s1", Name: "Math"}},
		FixedAssignments: []FixedAssignment{
			{ClassroomID: "c1", SubjectID: "s1", DayIndex: 0, HourIndex: 99},
		},
	}

	_, err := normalize(in, baseSchoolHours(), 5, nil, Preferences{})
	require.Error(t, err, "expected a MalformedInputError for an out-of-range fixed assignment hour")
}
