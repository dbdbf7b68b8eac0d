// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"fmt"

	"github.com/harshaash/bidalloc/table"
)

// Required input columns, checked before any join work. Optional columns
// (prod_desc, supp_desc) default to empty, selling_price and trans_cost
// to zero.
var (
	productColumns  = []string{"prod_name", "demand"}
	supplierColumns = []string{"supp_name", "trans_cost"}
	bidColumns      = []string{"prod_name", "supp_name", "bid_cost", "other_cost"}
)

// JoinResult holds the three typed tables and their join into allocation
// candidates. Identifiers are 0-based row indices, assigned here and
// nowhere else.
type JoinResult struct {
	Products   []Product
	Suppliers  []Supplier
	Bids       []Bid
	Candidates []Candidate
}

// Join validates the three input tables and merges them into allocation
// candidates: each bid becomes one candidate carrying the product id, the
// supplier id and the combined unit cost. A bid naming an unknown product
// or supplier is a data error, as is a second bid for the same
// (product, supplier) pair.
func Join(products, suppliers, bids *table.Table) (*JoinResult, error) {
	for _, c := range products.Missing(productColumns...) {
		return nil, &SchemaError{Table: "products", Column: c}
	}
	for _, c := range suppliers.Missing(supplierColumns...) {
		return nil, &SchemaError{Table: "suppliers", Column: c}
	}
	for _, c := range bids.Missing(bidColumns...) {
		return nil, &SchemaError{Table: "bids", Column: c}
	}

	j := &JoinResult{}

	prodByName := make(map[string]int, products.Len())
	for i := 0; i < products.Len(); i++ {
		name := products.String(i, "prod_name")
		price, err := products.Decimal(i, "selling_price")
		if err != nil {
			return nil, fmt.Errorf("products: %w", err)
		}
		demand, err := products.Int(i, "demand")
		if err != nil {
			return nil, fmt.Errorf("products: %w", err)
		}
		if demand < 0 {
			return nil, fmt.Errorf("products: row %d: negative demand %d", i, demand)
		}
		j.Products = append(j.Products, Product{
			ID:           i,
			Name:         name,
			Description:  products.String(i, "prod_desc"),
			SellingPrice: price,
			Demand:       demand,
		})
		prodByName[name] = i
	}

	suppByName := make(map[string]int, suppliers.Len())
	for i := 0; i < suppliers.Len(); i++ {
		name := suppliers.String(i, "supp_name")
		trans, err := suppliers.Decimal(i, "trans_cost")
		if err != nil {
			return nil, fmt.Errorf("suppliers: %w", err)
		}
		j.Suppliers = append(j.Suppliers, Supplier{
			ID:            i,
			Name:          name,
			Description:   suppliers.String(i, "supp_desc"),
			TransportCost: trans,
		})
		suppByName[name] = i
	}

	seen := make(map[[2]int]bool, bids.Len())
	for i := 0; i < bids.Len(); i++ {
		prodName := bids.String(i, "prod_name")
		suppName := bids.String(i, "supp_name")
		bidCost, err := bids.Decimal(i, "bid_cost")
		if err != nil {
			return nil, fmt.Errorf("bids: %w", err)
		}
		otherCost, err := bids.Decimal(i, "other_cost")
		if err != nil {
			return nil, fmt.Errorf("bids: %w", err)
		}

		pid, ok := prodByName[prodName]
		if !ok {
			return nil, &ReferentialError{BidRow: i, Kind: "product", Name: prodName}
		}
		sid, ok := suppByName[suppName]
		if !ok {
			return nil, &ReferentialError{BidRow: i, Kind: "supplier", Name: suppName}
		}
		if seen[[2]int{pid, sid}] {
			return nil, &DuplicateBidError{Product: prodName, Supplier: suppName}
		}
		seen[[2]int{pid, sid}] = true

		j.Bids = append(j.Bids, Bid{
			ID:        i,
			Product:   prodName,
			Supplier:  suppName,
			BidCost:   bidCost,
			OtherCost: otherCost,
		})
		j.Candidates = append(j.Candidates, Candidate{
			ProductID:  pid,
			SupplierID: sid,
			UnitCost:   bidCost.Add(otherCost).Add(j.Suppliers[sid].TransportCost),
		})
	}

	return j, nil
}
