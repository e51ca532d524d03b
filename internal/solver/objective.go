package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// objectiveTerms collects the soft-objective boolean terms described in
// §4.4, before weighting.
type objectiveTerms struct {
	edgePenalty []*cpmodel.BoolVar
	nogapPenalty []*cpmodel.BoolVar
	gapPenalty  []*cpmodel.BoolVar
}

// addObjective builds teacher occupancy, edge, gap and heavy-day-without-gap
// terms for every teacher/day, following the exact reification shapes the
// source solver uses (preserved per the REDESIGN FLAGS in SPEC_FULL.md §9):
// OR-encoding via paired inequalities, and `heavy` expressed through two
// OnlyEnforceIf-guarded implications rather than a single equivalence
// constraint.
func addObjective(b *build) objectiveTerms {
	n := b.norm
	var terms objectiveTerms

	for ti := 0; ti < n.teacherIDs.len(); ti++ {
		tid := n.teacherIDs.key(ti)
		for d := 0; d < 5; d++ {
			allowedLen := n.schoolHours.DayMax(d)
			o := make([]cpmodel.BoolVar, allowedLen)
			for h := 0; h < allowedLen; h++ {
				ov := b.cp.NewBoolVar(fmt.Sprintf("occ_%s_%d_%d", tid, d, h))
				vars := nonNil(b.xByTeacherSlot[ti][d][h])
				if len(vars) > 0 {
					for _, v := range vars {
						b.cp.AddLessOrEqual(ov, *v)
					}
					b.cp.AddGreaterOrEqual(sumLiteralSlice(vars), ov)
				} else {
					b.cp.AddEquality(ov, cpmodel.NewConstant(0))
				}
				o[h] = ov
			}

			if allowedLen > 0 {
				first := o[0]
				last := o[allowedLen-1]
				terms.edgePenalty = append(terms.edgePenalty, &first, &last)
			}

			occCount := b.cp.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(allowedLen)))
			b.cp.AddEquality(occCount, sumOfBoolVars(o))

			heavy := b.cp.NewBoolVar(fmt.Sprintf("heavy_%s_%d", tid, d))
			b.cp.AddGreaterOrEqual(occCount, cpmodel.NewConstant(6)).OnlyEnforceIf(heavy)
			b.cp.AddLessOrEqual(occCount, cpmodel.NewConstant(5)).OnlyEnforceIf(heavy.Not())

			var gapCandidates []cpmodel.BoolVar
			for h := 1; h < allowedLen-1; h++ {
				g := b.cp.NewBoolVar(fmt.Sprintf("gap_%s_%d_%d", tid, d, h))
				b.cp.AddLessOrEqual(g, o[h-1])
				b.cp.AddLessOrEqual(g, oneMinus(o[h]))
				b.cp.AddLessOrEqual(g, o[h+1])
				expr := cpmodel.NewLinearExpr().AddTerm(o[h-1], 1).AddTerm(o[h+1], 1).AddTerm(o[h], -1).AddConstant(-2)
				b.cp.AddGreaterOrEqual(g, expr)
				gapCandidates = append(gapCandidates, g)
			}

			if n.prefs.MaxTeacherGapHours != nil && len(gapCandidates) > 0 {
				b.cp.AddLessOrEqual(sumOfBoolVars(gapCandidates), cpmodel.NewConstant(int64(*n.prefs.MaxTeacherGapHours)))
			}
			for i := range gapCandidates {
				terms.gapPenalty = append(terms.gapPenalty, &gapCandidates[i])
			}

			gapPresent := b.cp.NewBoolVar(fmt.Sprintf("gapp_%s_%d", tid, d))
			if len(gapCandidates) > 0 {
				for _, g := range gapCandidates {
					b.cp.AddGreaterOrEqual(gapPresent, g)
				}
				b.cp.AddGreaterOrEqual(sumOfBoolVars(gapCandidates), gapPresent)
			} else {
				b.cp.AddEquality(gapPresent, cpmodel.NewConstant(0))
			}

			noGapHeavy := b.cp.NewBoolVar(fmt.Sprintf("ngh_%s_%d", tid, d))
			b.cp.AddLessOrEqual(noGapHeavy, heavy)
			b.cp.AddLessOrEqual(noGapHeavy, oneMinus(gapPresent))
			expr := cpmodel.NewLinearExpr().AddTerm(heavy, 1).AddTerm(gapPresent, -1)
			b.cp.AddGreaterOrEqual(noGapHeavy, expr)
			terms.nogapPenalty = append(terms.nogapPenalty, &noGapHeavy)
		}
	}

	return terms
}

func sumOfBoolVars(vars []cpmodel.BoolVar) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, v := range vars {
		expr.Add(v)
	}
	return expr
}

// applyObjective minimizes the weighted sum of penalty terms, unless
// stopAtFirst is set or every weight is zero, matching §4.4's
// "omit the objective" rule.
func applyObjective(b *build, terms objectiveTerms, stopAtFirst bool) {
	wEdge := b.norm.prefs.edgeWeight()
	wNogap := b.norm.prefs.nogapWeight()
	wGap := b.norm.prefs.TeacherGapWeight
	if wGap < 0 {
		wGap = 0
	}

	if stopAtFirst || (wEdge <= 0 && wNogap <= 0 && wGap <= 0) {
		return
	}

	expr := cpmodel.NewLinearExpr()
	for _, v := range terms.edgePenalty {
		if v != nil {
			expr.AddTerm(*v, int64(wEdge))
		}
	}
	for _, v := range terms.nogapPenalty {
		if v != nil {
			expr.AddTerm(*v, int64(wNogap))
		}
	}
	for _, v := range terms.gapPenalty {
		if v != nil {
			expr.AddTerm(*v, int64(wGap))
		}
	}
	b.cp.Minimize(expr)
}
