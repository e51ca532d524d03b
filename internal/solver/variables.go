package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// pairVars holds every decision variable scoped to one eligible (classroom,
// subject) pair, indexed directly by [teacherIndex][day][hour] rather than
// by a tuple-keyed map: building and scanning these during constraint
// assembly is O(variables), never O(variables × constraints).
type pairVars struct {
	y1 [][5][]*cpmodel.BoolVar
	y2 [][5][]*cpmodel.BoolVar
	y3 [][5][]*cpmodel.BoolVar
	x  [][5][]*cpmodel.BoolVar
}

// build carries the CP-SAT model builder plus every index the constraint and
// objective stages need, all populated once by buildVariables.
type build struct {
	norm *normalized
	cp   *cpmodel.CpModelBuilder

	pairs []pairVars // parallel to norm.pairs

	// xByClassroomSlot[classroomDenseID][day][hour] lists every x variable
	// occupying that classroom slot, across subjects and teachers.
	xByClassroomSlot [][5][]*cpmodel.BoolVar

	// xByTeacherSlot[teacherDenseID][day][hour] lists every x variable naming
	// that teacher at that slot, across classrooms and subjects.
	xByTeacherSlot [][5][]*cpmodel.BoolVar
}

func buildVariables(n *normalized) *build {
	b := &build{
		norm: n,
		cp:   cpmodel.NewCpModelBuilder(),
		pairs: make([]pairVars, len(n.pairs)),
	}

	nClassrooms := n.classroomIDs.len()
	nTeachers := n.teacherIDs.len()
	b.xByClassroomSlot = make([][5][]*cpmodel.BoolVar, nClassrooms)
	b.xByTeacherSlot = make([][5][]*cpmodel.BoolVar, nTeachers)

	maxDaily := n.schoolHours.MaxDailyHours()
	for i := 0; i < nClassrooms; i++ {
		for d := 0; d < 5; d++ {
			b.xByClassroomSlot[i][d] = make([]*cpmodel.BoolVar, maxDaily)
		}
	}
	for i := 0; i < nTeachers; i++ {
		for d := 0; d < 5; d++ {
			b.xByTeacherSlot[i][d] = make([]*cpmodel.BoolVar, maxDaily)
		}
	}

	for pi := range n.pairs {
		p := &n.pairs[pi]
		cDenseID := n.classroomIDs.id(p.classroom.ID)

		pv := pairVars{
			y1: make([][5][]*cpmodel.BoolVar, len(p.teacherIDs)),
			y2: make([][5][]*cpmodel.BoolVar, len(p.teacherIDs)),
			y3: make([][5][]*cpmodel.BoolVar, len(p.teacherIDs)),
			x:  make([][5][]*cpmodel.BoolVar, len(p.teacherIDs)),
		}

		for ti, tid := range p.teacherIDs {
			teacher := n.teacherByID[tid]
			for d := 0; d < 5; d++ {
				allowedLen := n.schoolHours.AllowedLen(p.classroom.Level, d)
				pv.y1[ti][d] = make([]*cpmodel.BoolVar, allowedLen)
				pv.y2[ti][d] = make([]*cpmodel.BoolVar, allowedLen)
				pv.y3[ti][d] = make([]*cpmodel.BoolVar, allowedLen)
				pv.x[ti][d] = make([]*cpmodel.BoolVar, allowedLen)

				avail := teacher.Availability[d]
				for h := 0; h < allowedLen; h++ {
					if h < len(avail) && avail[h] {
						v := b.cp.NewBoolVar(fmt.Sprintf("y1_%s_%s_%s_%d_%d", p.classroom.ID, p.subject.ID, tid, d, h))
						pv.y1[ti][d][h] = &v
					}
					if h+1 < allowedLen && h < len(avail) && avail[h] && h+1 < len(avail) && avail[h+1] {
						v := b.cp.NewBoolVar(fmt.Sprintf("y2_%s_%s_%s_%d_%d", p.classroom.ID, p.subject.ID, tid, d, h))
						pv.y2[ti][d][h] = &v
					}
					if h+2 < allowedLen && h < len(avail) && avail[h] && h+1 < len(avail) && avail[h+1] && h+2 < len(avail) && avail[h+2] {
						v := b.cp.NewBoolVar(fmt.Sprintf("y3_%s_%s_%s_%d_%d", p.classroom.ID, p.subject.ID, tid, d, h))
						pv.y3[ti][d][h] = &v
					}

					v := b.cp.NewBoolVar(fmt.Sprintf("x_%s_%s_%s_%d_%d", p.classroom.ID, p.subject.ID, tid, d, h))
					pv.x[ti][d][h] = &v

					tDenseID := n.teacherIDs.id(tid)
					b.xByClassroomSlot[cDenseID][d][h] = append(b.xByClassroomSlot[cDenseID][d][h], &v)
					b.xByTeacherSlot[tDenseID][d][h] = append(b.xByTeacherSlot[tDenseID][d][h], &v)
				}
			}
		}

		b.pairs[pi] = pv
	}

	return b
}
