package solver

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// emptySchedule allocates the 5×allowedLen(level,d) grid for every classroom
// referenced by the input, regardless of whether it survived eligibility
// filtering, so the caller always gets a cell for every classroom/day/hour.
func emptySchedule(n *normalized, classrooms []Classroom) Schedule {
	sched := make(Schedule, len(classrooms))
	for i := range classrooms {
		c := &classrooms[i]
		grid := make([][]*Assignment, 5)
		for d := 0; d < 5; d++ {
			grid[d] = make([]*Assignment, n.schoolHours.AllowedLen(c.Level, d))
		}
		sched[c.ID] = grid
	}
	return sched
}

// extract walks every x variable true in the solution and places it into the
// schedule grid, counting placements. Cells are only ever filled once; E
// (one lesson per classroom slot) already forbids collisions, so the
// emptiness check here is defensive, not load-bearing.
func extract(b *build, resp *solveResponse, sched Schedule) int {
	placements := 0
	if resp.status != StatusOptimal && resp.status != StatusFeasible {
		return 0
	}

	for pi := range b.norm.pairs {
		p := &b.norm.pairs[pi]
		pv := &b.pairs[pi]
		for ti, tid := range p.teacherIDs {
			for d := 0; d < 5; d++ {
				for h, xv := range pv.x[ti][d] {
					if xv == nil || !cpmodel.SolutionBooleanValue(resp.response, *xv) {
						continue
					}
					grid := sched[p.classroom.ID]
					if d >= len(grid) || h >= len(grid[d]) || grid[d][h] != nil {
						continue
					}
					grid[d][h] = &Assignment{
						SubjectID:   p.subject.ID,
						TeacherID:   tid,
						LocationID:  p.subject.LocationID,
						ClassroomID: p.classroom.ID,
					}
					placements++
				}
			}
		}
	}

	return placements
}
