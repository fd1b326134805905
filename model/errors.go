package model

import "errors"

var (
	// ErrInvalidGeometry reports malformed element locations (empty input,
	// or more than three spatial columns).
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidPerturbation reports a perturbation whose parameters do not
	// match the array (wrong row count, non-square coupling matrix, ...).
	ErrInvalidPerturbation = errors.New("invalid perturbation")

	// ErrInvalidArgument reports a bad constructor or filter argument, such
	// as a non-co-prime pair, an unknown co-prime mode, or an out-of-range
	// catalog parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)
