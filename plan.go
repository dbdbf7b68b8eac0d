// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/harshaash/bidalloc/table"
)

// Solve parameter defaults.
const (
	DefaultTimeLimit = 10000.0 // seconds
	DefaultWorkers   = 8
)

// Planner runs the whole allocation pipeline: join, configure, build the
// base model, apply both constraint policies, solve, extract. Each Plan
// call builds a fresh Model; nothing is carried over between calls.
type Planner struct {
	Config Config
	Solver Solver

	// TimeLimit and Workers bound the solve; zero values take the
	// defaults above.
	TimeLimit float64
	Workers   int

	// Logger receives phase diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Outcome is the result of one Plan call. Allocations and Metrics are
// populated only when Status carries a solution; an infeasible, invalid
// or unknown status is data, not an error.
type Outcome struct {
	Status      Status
	Objective   float64
	Allocations []Allocation
	Metrics     Metrics
	Summary     Summary
}

// Summary counts the joined inputs, for diagnostics.
type Summary struct {
	Products   int `json:"products"`
	Suppliers  int `json:"suppliers"`
	Bids       int `json:"bids"`
	Candidates int `json:"candidates"`
}

// Plan allocates demand across the given tables. Input errors (schema,
// referential, config) are returned before any solve work starts.
func (p *Planner) Plan(products, suppliers, bids *table.Table) (*Outcome, error) {
	if p.Solver == nil {
		return nil, errors.New("bidalloc: no solver configured")
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxSuppliers, capabilityPercent, err := p.Config.resolve()
	if err != nil {
		return nil, err
	}

	j, err := Join(products, suppliers, bids)
	if err != nil {
		return nil, err
	}
	logger.Info("inputs joined",
		zap.Int("products", len(j.Products)),
		zap.Int("suppliers", len(j.Suppliers)),
		zap.Int("candidates", len(j.Candidates)))

	b := NewModelBuilder(j)
	if err := b.Apply(CapabilityPolicy{Fraction: float64(capabilityPercent) / 100}); err != nil {
		return nil, err
	}
	if err := b.Apply(MaxSuppliersPolicy{Max: maxSuppliers}); err != nil {
		return nil, err
	}
	m := b.Finish()
	logger.Info("model built",
		zap.Int("variables", len(m.Vars)),
		zap.Int("rows", len(m.Rows)))

	opts := SolveOptions{TimeLimit: p.TimeLimit, Workers: p.Workers}
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	start := time.Now()
	res, err := p.Solver.Solve(m, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("solve finished",
		zap.Stringer("status", res.Status),
		zap.Float64("objective", res.Objective),
		zap.Duration("elapsed", time.Since(start)))

	out := &Outcome{
		Status:    res.Status,
		Objective: res.Objective,
		Summary: Summary{
			Products:   len(j.Products),
			Suppliers:  len(j.Suppliers),
			Bids:       len(j.Bids),
			Candidates: len(j.Candidates),
		},
	}
	if !res.Status.HasSolution() {
		return out, nil
	}

	allocs, metrics, err := Extract(j, res)
	if err != nil {
		return nil, err
	}
	out.Allocations = allocs
	out.Metrics = metrics
	return out, nil
}
