// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"fmt"
	"math"
)

// bigM dominates any feasible quantity, so qty <= bigM*indicator forces
// the indicator to 1 whenever the quantity is positive.
const bigM = 1_000_000

// Policy adds constraints on top of the base model. Policies are applied
// one at a time against a single ModelBuilder.
type Policy interface {
	Apply(b *ModelBuilder) error
}

// CapabilityPolicy caps each candidate's quantity at a fraction of the
// product's demand, forcing diversification across suppliers. A fraction
// too small for the available supplier count makes the model infeasible;
// that is an expected outcome, reported by the solve status.
type CapabilityPolicy struct {
	// Fraction of a product's demand one supplier may absorb, in [0,1].
	Fraction float64
}

func (p CapabilityPolicy) Apply(b *ModelBuilder) error {
	if p.Fraction < 0 || p.Fraction > 1 {
		return fmt.Errorf("capability fraction %v out of range [0,1]", p.Fraction)
	}
	for _, prod := range b.Products() {
		limit := int64(math.Floor(float64(prod.Demand) * p.Fraction))
		for _, i := range b.CandidatesOf(prod.ID) {
			b.AddLeRow([]Term{{Var: b.QuantityVar(i), Coeff: 1}}, limit)
		}
	}
	return nil
}

// MaxSuppliersPolicy caps the count of distinct suppliers actually used
// per product, independent of the quantity each receives. Each candidate
// gets a boolean indicator linked to its quantity by a big-M row; the
// per-product indicator sum is then bounded by Max.
//
// The link only forces indicator=1 when the quantity is positive. An
// unused candidate's indicator may take either value, but the objective
// never profits from raising one, so in practice it stays 0.
type MaxSuppliersPolicy struct {
	// Max distinct suppliers per product, in [1,4].
	Max int
}

func (p MaxSuppliersPolicy) Apply(b *ModelBuilder) error {
	if p.Max < 1 {
		return fmt.Errorf("max suppliers %d must be at least 1", p.Max)
	}
	for _, prod := range b.Products() {
		cands := b.CandidatesOf(prod.ID)
		caps := make([]Term, 0, len(cands))
		for _, i := range cands {
			c := b.Candidates()[i]
			ind := b.AddBoolVar(fmt.Sprintf("used_%d_%d", c.ProductID, c.SupplierID))
			// qty - bigM*indicator <= 0
			b.AddLeRow([]Term{
				{Var: b.QuantityVar(i), Coeff: 1},
				{Var: ind, Coeff: -bigM},
			}, 0)
			caps = append(caps, Term{Var: ind, Coeff: 1})
		}
		if len(caps) > 0 {
			b.AddLeRow(caps, int64(p.Max))
		}
	}
	return nil
}
