package kinmath

import "fmt"

// ShapeError is returned when a transform operation receives a matrix
// that is not 4x4. It is a precondition failure, never coerced away.
type ShapeError struct {
	Rows, Cols int
}

// NewShapeError creates a ShapeError for the given observed dimensions.
func NewShapeError(rows, cols int) *ShapeError {
	return &ShapeError{Rows: rows, Cols: cols}
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("expected a 4x4 homogeneous matrix, got %dx%d", e.Rows, e.Cols)
}
