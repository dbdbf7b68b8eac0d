// Copyright 2023 The bidalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidalloc

import "fmt"

const (
	DefaultMaxSuppliers      = 2
	DefaultCapabilityPercent = 80
)

// Config holds the tunable constraint limits. Nil fields take the
// defaults above.
type Config struct {
	// MaxSuppliers caps how many distinct suppliers may receive a share
	// of one product's demand. Valid range 1-4.
	MaxSuppliers *int `yaml:"max_suppliers" json:"max_suppliers"`

	// CapabilityPercent caps the share of one product's demand a single
	// supplier may absorb, as a percent. Valid range 0-100.
	CapabilityPercent *int `yaml:"supplier_capability_limit" json:"supplier_capability_limit"`
}

// Validate checks the configured limits without applying defaults.
func (c Config) Validate() error {
	_, _, err := c.resolve()
	return err
}

func (c Config) resolve() (maxSuppliers, capabilityPercent int, err error) {
	maxSuppliers = DefaultMaxSuppliers
	if c.MaxSuppliers != nil {
		maxSuppliers = *c.MaxSuppliers
	}
	capabilityPercent = DefaultCapabilityPercent
	if c.CapabilityPercent != nil {
		capabilityPercent = *c.CapabilityPercent
	}

	if maxSuppliers < 1 || maxSuppliers > 4 {
		return 0, 0, fmt.Errorf("max_suppliers %d out of range [1,4]", maxSuppliers)
	}
	if capabilityPercent < 0 || capabilityPercent > 100 {
		return 0, 0, fmt.Errorf("supplier_capability_limit %d out of range [0,100]", capabilityPercent)
	}
	return maxSuppliers, capabilityPercent, nil
}
