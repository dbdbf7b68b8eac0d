// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import (
	"errors"
	"fmt"
)

var (
	// ErrModelSolved is returned when a Model that has already been
	// handed to a Solver is solved again. A fresh Model must be built
	// for every solve.
	ErrModelSolved = errors.New("bidalloc: model already solved")

	// ErrBuilderFinished is returned when a policy is applied to a
	// ModelBuilder after Finish.
	ErrBuilderFinished = errors.New("bidalloc: model builder already finished")

	// ErrNoSolution is returned by Extract when the solve status carries
	// no usable variable values.
	ErrNoSolution = errors.New("bidalloc: no solution available")
)

// SchemaError reports a required column missing from an input table. It is
// detected before any join or model work starts.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: missing required column %q", e.Table, e.Column)
}

// ReferentialError reports a bid whose product or supplier name does not
// resolve against the corresponding table. Such bids are rejected, never
// joined with missing fields.
type ReferentialError struct {
	BidRow int // 0-based row in the bids table
	Kind   string
	Name   string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("bid row %d: unknown %s %q", e.BidRow, e.Kind, e.Name)
}

// DuplicateBidError reports more than one bid for the same
// (product, supplier) pair.
type DuplicateBidError struct {
	Product  string
	Supplier string
}

func (e *DuplicateBidError) Error() string {
	return fmt.Sprintf("duplicate bid for product %q from supplier %q", e.Product, e.Supplier)
}
