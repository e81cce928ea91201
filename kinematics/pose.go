package kinematics

import (
	"fmt"

	"github.com/robomotive/sixdof/kinmath"
)

// Pose is a task-space position of the end effector: translation in
// millimeters and Z-Y-X Euler orientation in degrees (A about Z, B
// about Y, C about X).
type Pose struct {
	X, Y, Z float64
	A, B, C float64
}

// PoseFromTransform extracts the pose from a homogeneous transform.
// The bool is false near gimbal lock, where the A/C split is not
// unique (see kinmath.Transform.EulerZYX).
func PoseFromTransform(t *kinmath.Transform) (*Pose, bool) {
	trans := t.Translation()
	a, b, c, ok := t.EulerZYX()
	return &Pose{X: trans.X, Y: trans.Y, Z: trans.Z, A: a, B: b, C: c}, ok
}

// Transform reconstructs the homogeneous transform of the pose,
// inverse-consistent with PoseFromTransform away from gimbal lock.
func (p *Pose) Transform() *kinmath.Transform {
	t := kinmath.NewTransformFromRotation(p.A, p.B, p.C)
	t.SetX(p.X)
	t.SetY(p.Y)
	t.SetZ(p.Z)
	return t
}

func (p *Pose) String() string {
	return fmt.Sprintf("x: %.2f, y: %.2f, z: %.2f, a: %.2f, b: %.2f, c: %.2f",
		p.X, p.Y, p.Z, p.A, p.B, p.C)
}
