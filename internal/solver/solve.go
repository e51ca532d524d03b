package solver

import (
	"fmt"
	"time"
)

// Solve is the core's single entry point (§6): it normalizes the input,
// builds decision variables and constraints, optionally adds the soft
// objective, invokes CP-SAT, and extracts a schedule plus diagnostics.
//
// It returns an error only for malformed input (§7, MalformedInput), a
// rejected model (ModelInvalid, which indicates a builder bug and should
// never happen for valid input), or a failure of the CP-SAT call itself.
// Infeasibility and timeouts are reported through Result, not as errors.
func Solve(in *Input, schoolHours SchoolHours, timeLimitSeconds int, defaultMaxConsec *int, prefs Preferences, stopAtFirst bool) (*Result, error) {
	n, err := normalize(in, schoolHours, timeLimitSeconds, defaultMaxConsec, prefs)
	if err != nil {
		return nil, err
	}

	b := buildVariables(n)
	addConstraints(b)
	terms := addObjective(b)
	applyObjective(b, terms, stopAtFirst)

	started := time.Now()
	resp, err := runSolver(b, timeLimitSeconds)
	ended := time.Now()
	if err != nil {
		if _, ok := err.(*ModelInvalidError); ok {
			return nil, err
		}
		return nil, err
	}

	sched := emptySchedule(n, in.Classrooms)
	placements := extract(b, resp, sched)

	notes := append(append([]string{}, n.notes...), fmt.Sprintf("status=%s", resp.status))

	return &Result{
		Schedule: sched,
		Stats: Stats{
			StartedAt:      started.UnixMilli(),
			EndedAt:        ended.UnixMilli(),
			ElapsedSeconds: ended.Sub(started).Seconds(),
			TimedOut:       resp.status == StatusUnknown,
			Placements:     placements,
			InvalidReasons: InvalidReasons{},
			HardestLessons: nil,
			Notes:          notes,
		},
	}, nil
}
