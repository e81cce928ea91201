package arm

import (
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/robomotive/sixdof/kinematics"
	"github.com/robomotive/sixdof/kinmath"
)

// Kinematics is an Arm backed purely by the kinematic model: it tracks
// commanded joint positions and answers pose queries without any
// hardware attached. The model and solver themselves are stateless;
// all mutable state lives here.
type Kinematics struct {
	model *kinematics.Model
	ik    *kinematics.SphericalWristSolver

	mu     sync.Mutex
	joints []float64 // degrees
}

// NewKinematics builds a model-only arm.
func NewKinematics(model *kinematics.Model, logger golog.Logger) (*Kinematics, error) {
	ik, err := kinematics.NewSphericalWristSolver(model, logger)
	if err != nil {
		return nil, err
	}
	return &Kinematics{
		model:  model,
		ik:     ik,
		joints: make([]float64, model.Dof()),
	}, nil
}

// Model returns the underlying kinematic model.
func (k *Kinematics) Model() *kinematics.Model {
	return k.model
}

// CurrentPosition returns the end effector pose for the current joint
// positions.
func (k *Kinematics) CurrentPosition() (*kinematics.Pose, error) {
	return k.model.Forward(k.CurrentJointPositionsUnchecked())
}

// MoveToPosition solves for joint angles achieving the pose and adopts
// them.
func (k *Kinematics) MoveToPosition(pose *kinematics.Pose) error {
	angles, err := k.ik.Solve(pose)
	if err != nil {
		return err
	}
	return k.MoveToJointPositions(angles)
}

// CurrentJointPositions returns the current joint angles in degrees.
func (k *Kinematics) CurrentJointPositions() ([]float64, error) {
	return k.CurrentJointPositionsUnchecked(), nil
}

// CurrentJointPositionsUnchecked is CurrentJointPositions without the
// error that the Arm interface carries for hardware-backed arms.
func (k *Kinematics) CurrentJointPositionsUnchecked() []float64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]float64{}, k.joints...)
}

// MoveToJointPositions adopts the given joint angles in degrees.
func (k *Kinematics) MoveToJointPositions(angles []float64) error {
	normalized := k.model.Normalize(angles)
	if !k.model.IsValid(normalized) {
		return errors.Errorf("joint angles %v outside limits", angles)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	copy(k.joints, normalized)
	return nil
}

// JointMoveDelta moves a single joint by the given amount in degrees.
func (k *Kinematics) JointMoveDelta(joint int, amount float64) error {
	if joint < 0 || joint >= k.model.Dof() {
		return errors.Errorf("invalid joint %d", joint)
	}
	angles := k.CurrentJointPositionsUnchecked()
	angles[joint] += amount
	return k.MoveToJointPositions(angles)
}

// CumulativeTransforms returns the base-to-link transform of every
// link at the current joint positions, for placing the rigid
// sub-assemblies of a scene.
func (k *Kinematics) CumulativeTransforms() ([]*kinmath.Transform, error) {
	return k.model.CumulativeTransforms(k.CurrentJointPositionsUnchecked())
}

// Close implements Arm; a model-only arm holds no resources.
func (k *Kinematics) Close() error {
	return nil
}
