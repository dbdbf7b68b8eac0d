// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshaash/bidalloc/table"
)

// stubSolver returns a canned result and records what it was asked.
type stubSolver struct {
	res *SolveResult
	err error

	model *Model
	opts  SolveOptions
}

func (s *stubSolver) Solve(m *Model, opts SolveOptions) (*SolveResult, error) {
	if err := m.BeginSolve(); err != nil {
		return nil, err
	}
	s.model = m
	s.opts = opts
	return s.res, s.err
}

func planInputs(t *testing.T) (products, suppliers, bids *table.Table) {
	return productTable(t, []string{"widget", "", "0", "100"}),
		supplierTable(t, []string{"acme", "", "0"}, []string{"globex", "", "0"}),
		bidTable(t,
			[]string{"widget", "acme", "5", "0"},
			[]string{"widget", "globex", "7", "0"},
		)
}

func TestPlannerPlan(t *testing.T) {
	solver := &stubSolver{
		res: &SolveResult{
			Status:    StatusOptimal,
			Objective: 80*5 + 20*7,
			Values:    []int64{80, 20, 1, 1},
		},
	}
	p := &Planner{Solver: solver}

	outcome, err := p.Plan(planInputs(t))
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, outcome.Status)
	assert.Equal(t, Summary{Products: 1, Suppliers: 2, Bids: 2, Candidates: 2}, outcome.Summary)
	assert.Equal(t, []Allocation{
		{Product: "widget", Supplier: "acme", Quantity: 80},
		{Product: "widget", Supplier: "globex", Quantity: 20},
	}, outcome.Allocations)
	assert.Equal(t, "540", outcome.Metrics.TotalCost.String())
	assert.Equal(t, "600", outcome.Metrics.Baseline.String())
	assert.Equal(t, "-60", outcome.Metrics.Savings.String())

	// Both default policies were applied: 2 quantity vars, 2 indicators;
	// demand row + 2 capability rows + 2 big-M links + 1 count row.
	require.NotNil(t, solver.model)
	assert.Len(t, solver.model.Vars, 4)
	assert.Len(t, solver.model.Rows, 6)

	// Solve bound defaults.
	assert.Equal(t, DefaultTimeLimit, solver.opts.TimeLimit)
	assert.Equal(t, DefaultWorkers, solver.opts.Workers)
}

func TestPlannerInfeasibleIsData(t *testing.T) {
	p := &Planner{Solver: &stubSolver{res: &SolveResult{Status: StatusInfeasible}}}

	outcome, err := p.Plan(planInputs(t))
	require.NoError(t, err)

	assert.Equal(t, StatusInfeasible, outcome.Status)
	assert.Empty(t, outcome.Allocations)
}

func TestPlannerConfigAndBounds(t *testing.T) {
	solver := &stubSolver{
		res: &SolveResult{
			Status: StatusFeasible,
			Values: []int64{50, 50, 1, 1},
		},
	}
	p := &Planner{
		Config:    Config{MaxSuppliers: intp(2), CapabilityPercent: intp(50)},
		Solver:    solver,
		TimeLimit: 30,
		Workers:   2,
	}

	outcome, err := p.Plan(planInputs(t))
	require.NoError(t, err)
	assert.Equal(t, StatusFeasible, outcome.Status)
	assert.Equal(t, 30.0, solver.opts.TimeLimit)
	assert.Equal(t, 2, solver.opts.Workers)

	// Capability rows carry floor(100*0.5).
	capRow := solver.model.Rows[1]
	assert.Equal(t, int64(50), capRow.Upper)
}

func TestPlannerInputErrors(t *testing.T) {
	p := &Planner{Solver: &stubSolver{res: &SolveResult{Status: StatusOptimal}}}

	_, suppliers, bids := planInputs(t)
	_, err := p.Plan(table.New("prod_name"), suppliers, bids)
	var se *SchemaError
	require.ErrorAs(t, err, &se)

	p.Config = Config{MaxSuppliers: intp(9)}
	products, suppliers, bids := planInputs(t)
	_, err = p.Plan(products, suppliers, bids)
	assert.ErrorContains(t, err, "max_suppliers")
}

func TestPlannerRequiresSolver(t *testing.T) {
	p := &Planner{}
	_, err := p.Plan(planInputs(t))
	assert.ErrorContains(t, err, "no solver")
}
