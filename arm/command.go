package arm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/robomotive/sixdof/kinematics"
	"github.com/robomotive/sixdof/utils"
)

// transmissionOffsetsDeg reconcile the kinematic model's zero
// reference with the motion controller's on each axis. Calibration
// constants of the measured arm, not part of the general algorithm.
var transmissionOffsetsDeg = [kinematics.Joints]float64{-90, -90, -90, -90, 0, 0}

// EncodeJointCommand converts joint angles in model degrees to
// controller radians with the per-axis calibration offset applied.
func EncodeJointCommand(anglesDeg []float64) ([]float64, error) {
	if len(anglesDeg) != kinematics.Joints {
		return nil, errors.Errorf("need %d joint angles, got %d", kinematics.Joints, len(anglesDeg))
	}
	radians := make([]float64, len(anglesDeg))
	for i, a := range anglesDeg {
		radians[i] = utils.DegToRad(a + transmissionOffsetsDeg[i])
	}
	return radians, nil
}

// FormatJointCommand renders an encoded joint command as the ASCII
// line the controller consumes.
func FormatJointCommand(radians []float64) string {
	parts := make([]string, len(radians))
	for i, r := range radians {
		parts[i] = fmt.Sprintf("%.6f", r)
	}
	return fmt.Sprintf("J %s\r\n", strings.Join(parts, " "))
}
