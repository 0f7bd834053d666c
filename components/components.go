// Package components defines the ECS components stored for every animal.
package components

import (
	"errors"
	"fmt"
)

// Species distinguishes prey from predators. The numeric values double as
// render codes, so they must stay 0 and 1.
type Species uint8

const (
	SpeciesPrey Species = iota
	SpeciesPredator

	NumSpecies = iota
)

// ErrInvalidSpecies is returned when an animal is built with an unknown species.
var ErrInvalidSpecies = errors.New("invalid species")

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	return s < NumSpecies
}

// Check returns ErrInvalidSpecies for unknown values.
func (s Species) Check() error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSpecies, uint8(s))
	}
	return nil
}

