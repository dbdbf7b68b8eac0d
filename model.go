// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"fmt"
	"math"
)

// VarID identifies one decision variable in a Model.
type VarID int

// Variable is a bounded integer decision variable. Boolean variables are
// integers bounded [0,1].
type Variable struct {
	Name    string
	Lower   int64
	Upper   int64
	Boolean bool
}

// Term is one coefficient in a linear expression.
type Term struct {
	Var   VarID
	Coeff int64
}

// Unbounded row sides.
const (
	NoLower = int64(math.MinInt64)
	NoUpper = int64(math.MaxInt64)
)

// Row is one linear constraint: Lower <= sum(Coeff*Var) <= Upper.
type Row struct {
	Terms []Term
	Lower int64
	Upper int64
}

// Model is a minimization integer program, built by ModelBuilder and
// consumed exactly once by a Solver. It is a single-owner value: it must
// not be mutated during a solve and must not be solved twice.
type Model struct {
	Vars      []Variable
	Rows      []Row
	Objective []Term

	solved bool
}

// BeginSolve marks the model as consumed. Solvers call it before reading
// the model; the second call returns ErrModelSolved.
func (m *Model) BeginSolve() error {
	if m.solved {
		return ErrModelSolved
	}
	m.solved = true
	return nil
}

// ModelBuilder assembles the base model from the join result and then
// applies constraint policies one at a time. Building is strictly
// sequential; a builder must not be shared between goroutines.
type ModelBuilder struct {
	products   []Product
	candidates []Candidate
	byProduct  map[int][]int // product id -> candidate indices, bid order
	maxDemand  int64

	m *Model
}

// NewModelBuilder constructs the mandatory base model:
//
//   - one quantity variable per candidate, bounded [0, max demand across
//     all products] (deliberately loose; any per-product demand would be a
//     valid tighter bound),
//   - per product, an equality row forcing the allocated sum to match
//     demand exactly (a product with no bids gets an empty row, which is
//     infeasible for positive demand),
//   - a minimization objective over truncated unit costs.
//
// Quantity variables are created in candidate order, so VarID(i) is the
// quantity of candidate i.
func NewModelBuilder(j *JoinResult) *ModelBuilder {
	b := &ModelBuilder{
		products:   j.Products,
		candidates: j.Candidates,
		byProduct:  make(map[int][]int, len(j.Products)),
		m:          &Model{},
	}

	for _, p := range b.products {
		if p.Demand > b.maxDemand {
			b.maxDemand = p.Demand
		}
	}
	for i, c := range b.candidates {
		b.byProduct[c.ProductID] = append(b.byProduct[c.ProductID], i)
	}

	for _, c := range b.candidates {
		b.addVar(Variable{
			Name:  fmt.Sprintf("bid_%d_%d", c.ProductID, c.SupplierID),
			Lower: 0,
			Upper: b.maxDemand,
		})
	}

	for _, p := range b.products {
		terms := make([]Term, 0, len(b.byProduct[p.ID]))
		for _, i := range b.byProduct[p.ID] {
			terms = append(terms, Term{Var: VarID(i), Coeff: 1})
		}
		b.m.Rows = append(b.m.Rows, Row{Terms: terms, Lower: p.Demand, Upper: p.Demand})
	}

	for i, c := range b.candidates {
		b.m.Objective = append(b.m.Objective, Term{Var: VarID(i), Coeff: c.ObjectiveCost()})
	}

	return b
}

// Apply runs one constraint policy against the model under construction.
// Policies are independent and may be applied in any order.
func (b *ModelBuilder) Apply(p Policy) error {
	if b.m == nil {
		return ErrBuilderFinished
	}
	return p.Apply(b)
}

// Finish hands the finished model over. The builder keeps no reference
// and accepts no further policies.
func (b *ModelBuilder) Finish() *Model {
	m := b.m
	b.m = nil
	return m
}

// Products returns the products backing the model.
func (b *ModelBuilder) Products() []Product { return b.products }

// Candidates returns the allocation candidates backing the model.
func (b *ModelBuilder) Candidates() []Candidate { return b.candidates }

// CandidatesOf returns the candidate indices bidding on the product, in
// bid order.
func (b *ModelBuilder) CandidatesOf(productID int) []int {
	return b.byProduct[productID]
}

// Demand returns the demand of the identified product.
func (b *ModelBuilder) Demand(productID int) int64 {
	return b.products[productID].Demand
}

// QuantityVar returns the quantity variable of candidate i.
func (b *ModelBuilder) QuantityVar(i int) VarID {
	return VarID(i)
}

// AddBoolVar adds a boolean variable and returns its id.
func (b *ModelBuilder) AddBoolVar(name string) VarID {
	return b.addVar(Variable{Name: name, Lower: 0, Upper: 1, Boolean: true})
}

// AddLeRow adds the constraint sum(terms) <= rhs.
func (b *ModelBuilder) AddLeRow(terms []Term, rhs int64) {
	b.m.Rows = append(b.m.Rows, Row{Terms: terms, Lower: NoLower, Upper: rhs})
}

func (b *ModelBuilder) addVar(v Variable) VarID {
	id := VarID(len(b.m.Vars))
	b.m.Vars = append(b.m.Vars, v)
	return id
}
