// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Extract reads the solved quantities back into the candidate table,
// keeping only positive allocations, and derives the cost metrics. It
// re-verifies the demand-satisfaction invariant: for every product the
// allocated quantities must sum to its demand exactly.
//
// Extract requires a result whose status carries a solution; otherwise it
// returns ErrNoSolution.
func Extract(j *JoinResult, res *SolveResult) ([]Allocation, Metrics, error) {
	if res == nil || !res.Status.HasSolution() {
		return nil, Metrics{}, ErrNoSolution
	}

	allocated := make(map[int]int64, len(j.Products))
	var allocs []Allocation
	for i, c := range j.Candidates {
		q := res.Value(VarID(i))
		allocated[c.ProductID] += q
		if q > 0 {
			allocs = append(allocs, Allocation{
				Product:  j.Products[c.ProductID].Name,
				Supplier: j.Suppliers[c.SupplierID].Name,
				Quantity: q,
			})
		}
	}

	for _, p := range j.Products {
		if allocated[p.ID] != p.Demand {
			return nil, Metrics{}, fmt.Errorf(
				"product %q: allocated %d, demand %d", p.Name, allocated[p.ID], p.Demand)
		}
	}

	return allocs, computeMetrics(j, res.Objective), nil
}

// computeMetrics derives the total achieved cost and the baseline spend.
// The baseline is, per product, the unweighted mean of unit cost times
// demand over all of that product's bids, summed across products.
func computeMetrics(j *JoinResult, objective float64) Metrics {
	spend := make(map[int]decimal.Decimal, len(j.Products))
	count := make(map[int]int64, len(j.Products))
	for _, c := range j.Candidates {
		demand := decimal.NewFromInt(j.Products[c.ProductID].Demand)
		spend[c.ProductID] = spend[c.ProductID].Add(c.UnitCost.Mul(demand))
		count[c.ProductID]++
	}

	baseline := decimal.Zero
	for _, p := range j.Products {
		if count[p.ID] == 0 {
			continue
		}
		baseline = baseline.Add(spend[p.ID].Div(decimal.NewFromInt(count[p.ID])))
	}

	// Objective coefficients are whole units, so the objective is
	// integral up to float noise.
	total := decimal.NewFromInt(int64(math.Round(objective)))
	return Metrics{
		TotalCost: total,
		Baseline:  baseline,
		Savings:   total.Sub(baseline),
	}
}
