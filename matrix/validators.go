// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for the checks applied to cost inputs.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    still match them with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//  - Value scans are O(r*c) in row-major order; the first offending cell wins.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateShape ensures m is non-nil and exactly rows×cols.
// Complexity: O(1).
func ValidateShape(m Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != rows {
		return validatorErrorf(fmt.Sprintf("ValidateShape: have %d rows, want %d", m.Rows(), rows), ErrDimensionMismatch)
	}
	if m.Cols() != cols {
		return validatorErrorf(fmt.Sprintf("ValidateShape: have %d cols, want %d", m.Cols(), cols), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf entries.
// Assumes m is not nil.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	return scan(m, "ValidateFinite", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}

		return nil
	})
}

// ValidateNonNegative rejects entries below zero.
// NaN is not negative; pair with ValidateFinite when both are required.
// Assumes m is not nil.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	return scan(m, "ValidateNonNegative", func(v float64) error {
		if v < 0 {
			return ErrNegativeValue
		}

		return nil
	})
}

// ValidateCosts is the composite check for cost inputs:
// NotNil → Shape(rows, cols) → Finite → NonNegative.
// Complexity: O(r*c).
func ValidateCosts(m Matrix, rows, cols int) error {
	if err := ValidateShape(m, rows, cols); err != nil {
		return err
	}
	if err := ValidateFinite(m); err != nil {
		return err
	}

	return ValidateNonNegative(m)
}

// scan applies check to every cell in row-major order and reports the first failure.
func scan(m Matrix, tag string, check func(float64) error) error {
	var (
		i, j int
		v    float64
		err  error
	)
	if d, ok := m.(*Dense); ok {
		for i = 0; i < d.r; i++ {
			for j = 0; j < d.c; j++ {
				if err = check(d.data[i*d.c+j]); err != nil {
					return validatorErrorf(fmt.Sprintf("%s: (%d,%d)", tag, i, j), err)
				}
			}
		}

		return nil
	}
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf(tag, err)
			}
			if err = check(v); err != nil {
				return validatorErrorf(fmt.Sprintf("%s: (%d,%d)", tag, i, j), err)
			}
		}
	}

	return nil
}
