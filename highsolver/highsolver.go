// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highsolver solves bidalloc models with the HiGHS mixed-integer
// solver via the gohighs bindings. The HiGHS search itself (branching,
// parallel strategy, incumbent handling) is opaque to the rest of the
// system; only the status and the variable values cross the boundary.
package highsolver

import (
	"math"

	"github.com/bartolsthoorn/gohighs/highs"

	"github.com/harshaash/bidalloc"
)

// Solver implements bidalloc.Solver on top of HiGHS.
type Solver struct{}

// New returns a HiGHS-backed solver.
func New() *Solver { return &Solver{} }

// Solve translates the model into HiGHS form and runs it synchronously.
// The model is consumed: a second Solve of the same model returns
// bidalloc.ErrModelSolved.
func (s *Solver) Solve(m *bidalloc.Model, opts bidalloc.SolveOptions) (*bidalloc.SolveResult, error) {
	if err := m.BeginSolve(); err != nil {
		return nil, err
	}

	hm := highs.Model{
		ColCosts: make([]float64, len(m.Vars)),
		ColLower: make([]float64, len(m.Vars)),
		ColUpper: make([]float64, len(m.Vars)),
		VarTypes: make([]highs.VariableType, len(m.Vars)),
	}
	for i, v := range m.Vars {
		hm.ColLower[i] = float64(v.Lower)
		hm.ColUpper[i] = float64(v.Upper)
		hm.VarTypes[i] = highs.Integer
	}
	for _, t := range m.Objective {
		hm.ColCosts[t.Var] = float64(t.Coeff)
	}
	for _, r := range m.Rows {
		// An empty row (a product with no bids) never reaches HiGHS:
		// it is either vacuous or immediately infeasible.
		if len(r.Terms) == 0 {
			if r.Lower > 0 || r.Upper < 0 {
				return &bidalloc.SolveResult{Status: bidalloc.StatusInfeasible}, nil
			}
			continue
		}
		cols := make([]int, len(r.Terms))
		vals := make([]float64, len(r.Terms))
		for i, t := range r.Terms {
			cols[i] = int(t.Var)
			vals[i] = float64(t.Coeff)
		}
		hm.AddSparseRow(rowBound(r.Lower, math.Inf(-1)), cols, vals, rowBound(r.Upper, math.Inf(1)))
	}

	solveOpts := []highs.SolveOption{highs.WithOutput(false)}
	if opts.TimeLimit > 0 {
		solveOpts = append(solveOpts, highs.WithTimeLimit(opts.TimeLimit))
	}
	if opts.Workers > 0 {
		solveOpts = append(solveOpts, highs.WithThreads(opts.Workers))
	}

	sol, err := hm.Solve(solveOpts...)
	if err != nil {
		return nil, err
	}

	res := &bidalloc.SolveResult{
		Status:    mapStatus(sol),
		Objective: sol.Objective,
	}
	if res.Status.HasSolution() {
		res.Values = make([]int64, len(m.Vars))
		for i := range m.Vars {
			res.Values[i] = int64(math.Round(sol.Value(i)))
		}
	}
	return res, nil
}

func rowBound(b int64, unbounded float64) float64 {
	switch b {
	case bidalloc.NoLower, bidalloc.NoUpper:
		return unbounded
	default:
		return float64(b)
	}
}

func mapStatus(sol *highs.Solution) bidalloc.Status {
	switch sol.Status {
	case highs.ModelStatusOptimal:
		return bidalloc.StatusOptimal
	case highs.ModelStatusInfeasible, highs.ModelStatusUnboundedOrInfeasible:
		return bidalloc.StatusInfeasible
	case highs.ModelStatusTimeLimit, highs.ModelStatusIterationLimit,
		highs.ModelStatusObjectiveBound, highs.ModelStatusObjectiveTarget:
		// Limit hit: a best incumbent is feasible but unproven.
		if len(sol.ColValues) > 0 {
			return bidalloc.StatusFeasible
		}
		return bidalloc.StatusUnknown
	case highs.ModelStatusLoadError, highs.ModelStatusModelError,
		highs.ModelStatusPresolveError, highs.ModelStatusSolveError,
		highs.ModelStatusPostsolveError:
		return bidalloc.StatusInvalid
	default:
		return bidalloc.StatusUnknown
	}
}
