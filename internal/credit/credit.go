// Package credit provides a credit-gated admission controller.
//
// One class of caller, the Replenisher, is always admitted and adds credit
// on each admission. Every other caller is a Spender: it is admitted only
// while credit is at or above a threshold, and each admission deducts a
// larger amount, clamped at zero. Once any caller's own admission count
// reaches the stop quota, or StopAll is called, the gate stops: all later
// attempts return Stopped immediately and blocked spenders are released.
//
// Replenishers never block, so sustained replenisher traffic can keep
// spenders waiting for an unbounded time. No starvation freedom is claimed.
package credit

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a gate is created with a non-positive
// threshold, amount or quota.
var ErrInvalidConfig = errors.New("credit: invalid configuration")

// Class selects the admission rule applied to a caller.
type Class int

const (
	// Replenisher is always admitted and adds Config.Replenish credit.
	Replenisher Class = iota

	// Spender waits for Config.Threshold credit and deducts Config.Spend.
	Spender
)

// String returns the string representation of the class.
func (c Class) String() string {
	switch c {
	case Replenisher:
		return "replenisher"
	case Spender:
		return "spender"
	default:
		return "unknown"
	}
}

// Decision is the outcome of an admission attempt.
type Decision int

const (
	// Granted means the caller was admitted and credit was adjusted.
	Granted Decision = iota

	// Denied means a non-blocking attempt found too little credit.
	Denied

	// Stopped means the gate has stopped; no further admissions happen.
	Stopped
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	switch d {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config holds the gate's amounts and quota. All fields must be positive.
type Config struct {
	// Threshold is the minimum credit a spender needs to be admitted.
	Threshold int

	// Replenish is added to credit per replenisher admission.
	Replenish int

	// Spend is deducted from credit per spender admission (floor 0).
	Spend int

	// StopQuota is the per-tag admission count that stops the gate.
	StopQuota int
}

// DefaultConfig returns the 'A' / 'B' / 'C' symbol-gate settings: one
// vowel adds a credit, a consonant needs three and spends three, and any
// symbol reaching 150 admissions stops the run.
func DefaultConfig() Config {
	return Config{
		Threshold: 3,
		Replenish: 1,
		Spend:     3,
		StopQuota: 150,
	}
}

// Validate reports the first non-positive field.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"threshold", c.Threshold},
		{"replenish", c.Replenish},
		{"spend", c.Spend},
		{"stop quota", c.StopQuota},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}
