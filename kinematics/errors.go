package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// UnreachableTargetError is returned when the requested pose lies
// outside the arm's reachable workspace. The law-of-cosines term that
// fell outside [-1, 1] is kept for diagnostics.
type UnreachableTargetError struct {
	Pose    *Pose
	Cosine  float64
	ReachMM float64
}

func (e *UnreachableTargetError) Error() string {
	return fmt.Sprintf("target pose %v outside reachable workspace (law-of-cosines term %.4f, wrist-center distance %.1fmm)",
		e.Pose, e.Cosine, e.ReachMM)
}
