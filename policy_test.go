// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import "testing"

func TestCapabilityPolicy(t *testing.T) {
	b := NewModelBuilder(twoProductJoin(t))
	if err := b.Apply(CapabilityPolicy{Fraction: 0.6}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	m := b.Finish()

	// Two demand rows plus one cap row per candidate.
	if len(m.Rows) != 5 {
		t.Fatalf("got %d rows, expected 5", len(m.Rows))
	}

	// floor(demand * fraction): widget 100*0.6=60, bolt 40*0.6=24.
	wantCaps := []int64{60, 60, 24}
	for i, row := range m.Rows[2:] {
		if row.Lower != NoLower {
			t.Errorf("cap row %d has a lower bound", i)
		}
		if row.Upper != wantCaps[i] {
			t.Errorf("cap row %d rhs = %d, expected %d", i, row.Upper, wantCaps[i])
		}
		if len(row.Terms) != 1 || row.Terms[0].Var != VarID(i) || row.Terms[0].Coeff != 1 {
			t.Errorf("cap row %d terms = %+v", i, row.Terms)
		}
	}
}

func TestCapabilityPolicyFractionRange(t *testing.T) {
	b := NewModelBuilder(twoProductJoin(t))
	if err := b.Apply(CapabilityPolicy{Fraction: 1.2}); err == nil {
		t.Fatal("expected error for fraction > 1")
	}
	if err := b.Apply(CapabilityPolicy{Fraction: -0.1}); err == nil {
		t.Fatal("expected error for negative fraction")
	}
}

func TestMaxSuppliersPolicy(t *testing.T) {
	b := NewModelBuilder(twoProductJoin(t))
	if err := b.Apply(MaxSuppliersPolicy{Max: 2}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	m := b.Finish()

	// One indicator per candidate, appended after the quantity vars.
	if len(m.Vars) != 6 {
		t.Fatalf("got %d variables, expected 6", len(m.Vars))
	}
	for i := 3; i < 6; i++ {
		v := m.Vars[i]
		if !v.Boolean || v.Lower != 0 || v.Upper != 1 {
			t.Errorf("var %d = %+v, expected boolean [0,1]", i, v)
		}
	}
	if m.Vars[3].Name != "used_0_0" {
		t.Errorf("indicator name = %q, expected used_0_0", m.Vars[3].Name)
	}

	// Per widget candidate: qty - bigM*ind <= 0; then the widget count
	// cap; then the same for bolt.
	if len(m.Rows) != 2+3+2 {
		t.Fatalf("got %d rows, expected 7", len(m.Rows))
	}
	link := m.Rows[2]
	if link.Upper != 0 || link.Lower != NoLower {
		t.Errorf("link row bounds [%d,%d], expected (-inf,0]", link.Lower, link.Upper)
	}
	if len(link.Terms) != 2 || link.Terms[0].Coeff != 1 || link.Terms[1].Coeff != -bigM {
		t.Errorf("link row terms = %+v", link.Terms)
	}

	count := m.Rows[4]
	if count.Upper != 2 || len(count.Terms) != 2 {
		t.Errorf("widget count row = %+v, expected 2 indicator terms <= 2", count)
	}
	boltCount := m.Rows[6]
	if boltCount.Upper != 2 || len(boltCount.Terms) != 1 {
		t.Errorf("bolt count row = %+v", boltCount)
	}
}

func TestMaxSuppliersPolicyRange(t *testing.T) {
	b := NewModelBuilder(twoProductJoin(t))
	if err := b.Apply(MaxSuppliersPolicy{Max: 0}); err == nil {
		t.Fatal("expected error for max < 1")
	}
}

// Policies are order-insensitive with respect to the constraints they
// produce on the quantity variables.
func TestPolicyOrderIndependence(t *testing.T) {
	build := func(ps ...Policy) *Model {
		b := NewModelBuilder(twoProductJoin(t))
		for _, p := range ps {
			if err := b.Apply(p); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
		}
		return b.Finish()
	}

	ab := build(CapabilityPolicy{Fraction: 0.5}, MaxSuppliersPolicy{Max: 1})
	ba := build(MaxSuppliersPolicy{Max: 1}, CapabilityPolicy{Fraction: 0.5})

	if len(ab.Vars) != len(ba.Vars) || len(ab.Rows) != len(ba.Rows) {
		t.Fatalf("model shapes differ: %d/%d vars, %d/%d rows",
			len(ab.Vars), len(ba.Vars), len(ab.Rows), len(ba.Rows))
	}
}
