// Package arm exposes the degree-denominated control surface of a six
// axis serial arm: joint positions in, task-space poses out, and the
// calibrated command stream toward a motion controller.
package arm

import "github.com/robomotive/sixdof/kinematics"

// Arm is a six axis arm that can report and change its configuration.
// Angles are degrees, positions are millimeters.
type Arm interface {
	CurrentPosition() (*kinematics.Pose, error)
	MoveToPosition(pose *kinematics.Pose) error

	CurrentJointPositions() ([]float64, error)
	MoveToJointPositions(angles []float64) error
	JointMoveDelta(joint int, amount float64) error

	Close() error
}
