// Package matrix offers the dense float64 tables behind jobline's
// dynamic-programming engines.
//
// The matrix package provides:
//
//   - Dense: a row-major, bounds-checked table (NewDense, FromRows, At/Set,
//     RowView for allocation-free row scans, Clone, ToRows).
//   - Validators: ValidateShape, ValidateSquare, ValidateFinite,
//     ValidateNonNegative and the composite ValidateCosts used on every
//     processing-time and transition-cost input.
//   - A unified sentinel error set (errors.go) matched via errors.Is.
//
// Example:
//
//	pt, err := matrix.FromRows([][]float64{{5, 8}, {6, 3}, {4, 7}})
//	if err != nil {
//		// ErrNilMatrix, ErrInvalidDimensions or ErrRaggedRows
//	}
//	if err = matrix.ValidateCosts(pt, 3, 2); err != nil {
//		// ErrDimensionMismatch, ErrNaNInf or ErrNegativeValue
//	}
package matrix
