package solver

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// addConstraints emits constraints A–H in the order SPEC_FULL.md §4.3
// specifies. Every loop below walks a variable exactly once (or a small
// fixed window of it), never a full rescan of x/y, per the dense-indexing
// design in variables.go.
func addConstraints(b *build) {
	addCoverageLink(b)
	addWeeklyHoursAndBlockCounts(b)
	addMaxConsecutive(b)
	addContiguity(b)
	addOneLessonPerClassroomSlot(b)
	addTeacherNoOverlap(b)
	addTeacherDailyCap(b)
	addFixedPins(b)
}

// A. Per-slot coverage/link: x equals the sum of every y-start covering it.
func addCoverageLink(b *build) {
	for pi := range b.norm.pairs {
		p := &b.norm.pairs[pi]
		pv := &b.pairs[pi]
		for ti := range p.teacherIDs {
			for d := 0; d < 5; d++ {
				allowedLen := len(pv.x[ti][d])
				for h := 0; h < allowedLen; h++ {
					xv := pv.x[ti][d][h]
					if xv == nil {
						continue
					}
					var cover []*cpmodel.BoolVar
					cover = append(cover, pv.y1[ti][d][h])
					cover = append(cover, at(pv.y2[ti][d], h))
					cover = append(cover, at(pv.y2[ti][d], h-1))
					cover = append(cover, at(pv.y3[ti][d], h))
					cover = append(cover, at(pv.y3[ti][d], h-1))
					cover = append(cover, at(pv.y3[ti][d], h-2))
					b.cp.AddEquality(*xv, sumLiteralSlice(cover))
				}
			}
		}
	}
}

// at returns s[i] if i is in range, nil otherwise — used to look up a
// possibly-earlier block start without bounds-checking at every call site.
func at(s []*cpmodel.BoolVar, i int) *cpmodel.BoolVar {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// B. Weekly hours and block counts, per (classroom, subject) pair.
func addWeeklyHoursAndBlockCounts(b *build) {
	for pi := range b.norm.pairs {
		p := &b.norm.pairs[pi]
		pv := &b.pairs[pi]
		if p.subject.WeeklyHours <= 0 {
			continue
		}
		var y1All, y2All, y3All []*cpmodel.BoolVar
		for ti := range p.teacherIDs {
			for d := 0; d < 5; d++ {
				y1All = append(y1All, pv.y1[ti][d]...)
				y2All = append(y2All, pv.y2[ti][d]...)
				y3All = append(y3All, pv.y3[ti][d]...)
			}
		}
		if len(nonNil(y1All))+len(nonNil(y2All))+len(nonNil(y3All)) == 0 {
			continue
		}

		expr := cpmodel.NewLinearExpr()
		for _, v := range y1All {
			if v != nil {
				expr.AddTerm(*v, 1)
			}
		}
		for _, v := range y2All {
			if v != nil {
				expr.AddTerm(*v, 2)
			}
		}
		for _, v := range y3All {
			if v != nil {
				expr.AddTerm(*v, 3)
			}
		}
		b.cp.AddEquality(expr, cpmodel.NewConstant(int64(p.subject.WeeklyHours)))

		b.cp.AddEquality(sumLiteralSlice(y2All), cpmodel.NewConstant(int64(p.block2)))
		b.cp.AddEquality(sumLiteralSlice(y3All), cpmodel.NewConstant(int64(p.block3)))
	}
}

func nonNil(s []*cpmodel.BoolVar) []*cpmodel.BoolVar {
	out := s[:0:0]
	for _, v := range s {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// C. Per-subject max-consecutive: no sliding window of length eff+1 may hold
// more than eff occupied hours, summed across teachers.
func addMaxConsecutive(b *build) {
	for pi := range b.norm.pairs {
		p := &b.norm.pairs[pi]
		pv := &b.pairs[pi]
		if p.effMaxConsec <= 0 {
			continue
		}
		eff := p.effMaxConsec
		for d := 0; d < 5; d++ {
			allowedLen := b.norm.schoolHours.AllowedLen(p.classroom.Level, d)
			for start := 0; start <= allowedLen-(eff+1); start++ {
				var window []*cpmodel.BoolVar
				for ti := range p.teacherIDs {
					for h := start; h <= start+eff && h < len(pv.x[ti][d]); h++ {
						window = append(window, pv.x[ti][d][h])
					}
				}
				if len(nonNil(window)) == 0 {
					continue
				}
				b.cp.AddLessOrEqual(sumLiteralSlice(window), cpmodel.NewConstant(int64(eff)))
			}
		}
	}
}

// D. Per-subject per-day contiguity, only when AllowSameDaySplit is false:
// forbid the 1,0,1 occupancy pattern for a subject across a day.
func addContiguity(b *build) {
	if b.norm.prefs.AllowSameDaySplit {
		return
	}
	for pi := range b.norm.pairs {
		p := &b.norm.pairs[pi]
		pv := &b.pairs[pi]
		for d := 0; d < 5; d++ {
			allowedLen := b.norm.schoolHours.AllowedLen(p.classroom.Level, d)
			if allowedLen < 3 {
				continue
			}
			sOcc := make([]cpmodel.BoolVar, allowedLen)
			for h := 0; h < allowedLen; h++ {
				bv := b.cp.NewBoolVar("")
				var ors []*cpmodel.BoolVar
				for ti := range p.teacherIDs {
					ors = append(ors, pv.x[ti][d][h])
				}
				ors = nonNil(ors)
				if len(ors) > 0 {
					for _, v := range ors {
						b.cp.AddLessOrEqual(bv, *v)
					}
					b.cp.AddGreaterOrEqual(sumLiteralSlice(ors), bv)
				} else {
					b.cp.AddEquality(bv, cpmodel.NewConstant(0))
				}
				sOcc[h] = bv
			}
			for h := 1; h < allowedLen-1; h++ {
				expr := cpmodel.NewLinearExpr().AddTerm(sOcc[h-1], 1).AddTerm(sOcc[h+1], 1).AddTerm(sOcc[h], -1)
				b.cp.AddLessOrEqual(expr, cpmodel.NewConstant(1))
			}
		}
	}
}

// E. One lesson per classroom per slot.
func addOneLessonPerClassroomSlot(b *build) {
	n := b.norm
	for ci := 0; ci < n.classroomIDs.len(); ci++ {
		for d := 0; d < 5; d++ {
			for h := range b.xByClassroomSlot[ci][d] {
				vars := nonNil(b.xByClassroomSlot[ci][d][h])
				if len(vars) > 1 {
					b.cp.AddLessOrEqual(sumLiteralSlice(vars), cpmodel.NewConstant(1))
				}
			}
		}
	}
}

// F. Teacher no-overlap across classrooms.
func addTeacherNoOverlap(b *build) {
	n := b.norm
	for ti := 0; ti < n.teacherIDs.len(); ti++ {
		for d := 0; d < 5; d++ {
			for h := range b.xByTeacherSlot[ti][d] {
				vars := nonNil(b.xByTeacherSlot[ti][d][h])
				if len(vars) > 1 {
					b.cp.AddLessOrEqual(sumLiteralSlice(vars), cpmodel.NewConstant(1))
				}
			}
		}
	}
}

// G. Optional teacher daily cap.
func addTeacherDailyCap(b *build) {
	dailyCap := b.norm.prefs.TeacherDailyMaxHours
	if dailyCap == nil {
		return
	}
	n := b.norm
	for ti := 0; ti < n.teacherIDs.len(); ti++ {
		for d := 0; d < 5; d++ {
			var day []*cpmodel.BoolVar
			for h := range b.xByTeacherSlot[ti][d] {
				day = append(day, b.xByTeacherSlot[ti][d][h]...)
			}
			day = nonNil(day)
			if len(day) == 0 {
				continue
			}
			b.cp.AddLessOrEqual(sumLiteralSlice(day), cpmodel.NewConstant(int64(*dailyCap)))
		}
	}
}

// H. Fixed pins: the exact slot must be covered by exactly one teacher of
// that (classroom, subject) pair.
func addFixedPins(b *build) {
	for _, fa := range b.norm.fixed {
		idx, ok := b.norm.pairIndexByCS[[2]string{fa.ClassroomID, fa.SubjectID}]
		if !ok {
			continue
		}
		pv := &b.pairs[idx]
		var vars []*cpmodel.BoolVar
		for ti := range b.norm.pairs[idx].teacherIDs {
			if fa.DayIndex < 5 && fa.HourIndex < len(pv.x[ti][fa.DayIndex]) {
				vars = append(vars, pv.x[ti][fa.DayIndex][fa.HourIndex])
			}
		}
		vars = nonNil(vars)
		if len(vars) > 0 {
			b.cp.AddEquality(sumLiteralSlice(vars), cpmodel.NewConstant(1))
		}
	}
}
