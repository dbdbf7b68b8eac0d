// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

// Status classifies the outcome of one solver invocation. Every status is
// terminal; relaxing constraints and retrying means building a new Model.
type Status int

const (
	// StatusUnknown means the solver gave up without a bound.
	StatusUnknown Status = iota
	// StatusOptimal means the allocation is proven cost-minimal.
	StatusOptimal
	// StatusFeasible means a valid allocation was found but optimality
	// was not proven, typically because the time limit expired.
	StatusFeasible
	// StatusInfeasible means the constraints are mutually unsatisfiable.
	StatusInfeasible
	// StatusInvalid means the model was malformed.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// HasSolution reports whether variable values can be read back.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// SolveOptions bound one solve call. Zero values fall back to the solver's
// own defaults.
type SolveOptions struct {
	// TimeLimit is the wall-clock limit in seconds. When it expires the
	// solver returns its best incumbent as StatusFeasible rather than
	// hang.
	TimeLimit float64

	// Workers is the number of parallel search threads the solver may
	// use internally.
	Workers int
}

// SolveResult is the immutable outcome of one solve. Values is indexed by
// VarID and is populated only when Status.HasSolution().
type SolveResult struct {
	Status    Status
	Objective float64
	Values    []int64
}

// Value returns the solved value of v, or 0 when out of range.
func (r *SolveResult) Value(v VarID) int64 {
	if int(v) < 0 || int(v) >= len(r.Values) {
		return 0
	}
	return r.Values[int(v)]
}

// Solver is the external combinatorial-optimization collaborator. It must
// call Model.BeginSolve before reading the model, block until a terminal
// status is reached, and report solve outcomes as SolveResult.Status
// rather than as errors. Errors are reserved for failures of the solving
// machinery itself.
type Solver interface {
	Solve(m *Model, opts SolveOptions) (*SolveResult, error)
}
