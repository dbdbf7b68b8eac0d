// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bidalloc allocates product demand across competing supplier bids
// so that total procurement cost is minimized, under supplier concentration
// and capability constraints. The allocation is computed by building a
// mixed-integer program and handing it to an external solver through the
// Solver interface.
package bidalloc

import (
	"github.com/shopspring/decimal"
)

// Product is one row of the products table. The ID is assigned by Join in
// original row order and is stable for a given input.
type Product struct {
	ID           int
	Name         string
	Description  string
	SellingPrice decimal.Decimal
	Demand       int64
}

// Supplier is one row of the suppliers table.
type Supplier struct {
	ID            int
	Name          string
	Description   string
	TransportCost decimal.Decimal
}

// Bid is one row of the bids table, referencing a product and a supplier
// by name.
type Bid struct {
	ID        int
	Product   string
	Supplier  string
	BidCost   decimal.Decimal
	OtherCost decimal.Decimal
}

// Candidate is one feasible (product, supplier) pairing formed from a bid.
// There is at most one candidate per pair.
type Candidate struct {
	ProductID  int
	SupplierID int

	// UnitCost is bid cost + other cost + transport cost, with sub-unit
	// precision kept until the objective is built.
	UnitCost decimal.Decimal
}

// ObjectiveCost is the unit cost truncated to a whole currency unit, as
// used in the objective. Fractional units are discarded, matching the
// historical behavior of the model.
func (c Candidate) ObjectiveCost() int64 {
	return c.UnitCost.IntPart()
}

// Allocation is one nonzero row of the solved allocation table.
type Allocation struct {
	Product  string
	Supplier string
	Quantity int64
}

// Metrics are the cost figures derived from a solved allocation.
type Metrics struct {
	// TotalCost is the achieved objective value.
	TotalCost decimal.Decimal

	// Baseline is the mean unit cost per product, averaged over all of
	// that product's bids, times demand, summed across products. It is
	// an unweighted reference figure, not the cheapest possible cost.
	Baseline decimal.Decimal

	// Savings is TotalCost - Baseline (negative when the allocation
	// beats the baseline).
	Savings decimal.Decimal
}
