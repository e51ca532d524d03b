package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// Status is the classified solve outcome, §4.5.
type Status string

const (
	StatusOptimal      Status = "OPTIMAL"
	StatusFeasible     Status = "FEASIBLE"
	StatusInfeasible   Status = "INFEASIBLE"
	StatusModelInvalid Status = "MODEL_INVALID"
	StatusUnknown      Status = "UNKNOWN"
)

const solverWorkers = 8

// solveResponse wraps the raw CP-SAT response together with its classified
// status, so the extractor never has to know about the proto status enum.
type solveResponse struct {
	status   Status
	response *cmpb.CpSolverResponse
}

// runSolver configures and invokes the CP-SAT backend (§4.5). timeLimitSeconds
// is clamped to at least 1 second, matching the source's max(1, ...) policy.
func runSolver(b *build, timeLimitSeconds int) (*solveResponse, error) {
	if timeLimitSeconds < 1 {
		timeLimitSeconds = 1
	}

	m, err := b.cp.Model()
	if err != nil {
		return nil, &ModelInvalidError{Reason: err.Error()}
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(float64(timeLimitSeconds)),
		NumSearchWorkers: proto.Int32(solverWorkers),
	}

	response, err := cpmodel.SolveCpModelWithParameters(m, params)
	if err != nil {
		return nil, fmt.Errorf("solve cp model: %w", err)
	}

	return &solveResponse{
		status:   classifyStatus(response.GetStatus()),
		response: response,
	}, nil
}

func classifyStatus(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return StatusModelInvalid
	default:
		return StatusUnknown
	}
}
