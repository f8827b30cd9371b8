package nn

import (
	"errors"
	"fmt"
)

// ShapeError reports a vector whose length disagrees with the
// dimensionality a layer expects.
type ShapeError struct {
	Op   string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected vector of length %d, got %d", e.Op, e.Want, e.Got)
}

// ErrNoForwardState is returned when a backward operation is invoked on a
// layer that has not run a forward pass for the current training step.
var ErrNoForwardState = errors.New("backward pass requires a preceding forward pass")
