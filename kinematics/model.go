// Package kinematics computes forward and inverse kinematics for a
// six axis serial arm described by Denavit-Hartenberg parameters.
package kinematics

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/robomotive/sixdof/kinmath"
	"github.com/robomotive/sixdof/utils"
)

// Measured geometry of the stock arm, all in mm.
const (
	ShoulderHeight = 104.0 // d1
	UpperArmLength = 270.0 // a2
	ForeArmLength  = 300.0 // d4
	WristOffset    = 63.4  // d6
)

// Joints is the number of revolute joints in the chain.
const Joints = 6

// homeOffsetsDeg map the model's all-zero joint pose (arm pointing
// straight up, tool z aligned with base z) onto the raw DH thetas.
var homeOffsetsDeg = []float64{0, 90, 90, 90, 0, 90}

// Limit is the allowed range of one joint in degrees.
type Limit struct {
	Min, Max float64
}

// Model holds the fixed chain geometry of an arm. It is immutable
// after construction and safe for concurrent use.
type Model struct {
	name        string
	dh          []DHParam
	homeOffsets []float64
	limits      []Limit
	logger      golog.Logger
}

// NewModel builds a model from a six-entry DH table. homeOffsets (in
// degrees, added to each joint angle before the DH matrix is built)
// and limits may be nil for the defaults.
func NewModel(name string, dh []DHParam, homeOffsets []float64, limits []Limit, logger golog.Logger) (*Model, error) {
	if len(dh) != Joints {
		return nil, errors.Errorf("need a %d entry DH table, got %d", Joints, len(dh))
	}
	if homeOffsets == nil {
		homeOffsets = homeOffsetsDeg
	}
	if len(homeOffsets) != Joints {
		return nil, errors.Errorf("need %d home offsets, got %d", Joints, len(homeOffsets))
	}
	if limits == nil {
		limits = make([]Limit, Joints)
		for i := range limits {
			limits[i] = Limit{Min: -180, Max: 180}
		}
	}
	if len(limits) != Joints {
		return nil, errors.Errorf("need %d joint limits, got %d", Joints, len(limits))
	}
	m := &Model{
		name:        name,
		dh:          append([]DHParam{}, dh...),
		homeOffsets: append([]float64{}, homeOffsets...),
		limits:      append([]Limit{}, limits...),
		logger:      logger,
	}
	return m, nil
}

// DefaultModel returns the model of the measured arm.
func DefaultModel(logger golog.Logger) *Model {
	dh := []DHParam{
		{A: 0, Alpha: utils.DegToRad(90), D: ShoulderHeight},
		{A: UpperArmLength, Alpha: 0, D: 0},
		{A: 0, Alpha: utils.DegToRad(90), D: 0},
		{A: 0, Alpha: utils.DegToRad(-90), D: ForeArmLength},
		{A: 0, Alpha: utils.DegToRad(90), D: 0},
		{A: 0, Alpha: 0, D: WristOffset},
	}
	m, err := NewModel("sixdof", dh, nil, nil, logger)
	if err != nil {
		panic(err) // fixed table, cannot fail
	}
	return m
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// Dof returns the number of joints.
func (m *Model) Dof() int {
	return len(m.dh)
}

// DH returns a copy of the DH table.
func (m *Model) DH() []DHParam {
	return append([]DHParam{}, m.dh...)
}

// theta maps one joint angle in model degrees to the raw DH theta in
// radians.
func (m *Model) theta(i int, angleDeg float64) float64 {
	return utils.DegToRad(angleDeg + m.homeOffsets[i])
}

// jointAngle is the inverse of theta, back into normalized model
// degrees.
func (m *Model) jointAngle(i int, thetaRad float64) float64 {
	return utils.NormAngDeg(utils.RadToDeg(thetaRad) - m.homeOffsets[i])
}

// IsValid reports whether every joint angle (degrees) is inside its
// limit.
func (m *Model) IsValid(angles []float64) bool {
	if len(angles) != len(m.limits) {
		return false
	}
	for i, a := range angles {
		if a < m.limits[i].Min || a > m.limits[i].Max {
			return false
		}
	}
	return true
}

// Normalize maps each joint angle into (-180, 180] degrees.
func (m *Model) Normalize(angles []float64) []float64 {
	normalized := make([]float64, len(angles))
	for i, a := range angles {
		normalized[i] = utils.NormAngDeg(a)
	}
	return normalized
}

// JointTransforms builds the per-joint DH transform of every link for
// the given joint angles in degrees.
func (m *Model) JointTransforms(angles []float64) ([]*kinmath.Transform, error) {
	if len(angles) != len(m.dh) {
		return nil, errors.Errorf("need %d joint angles, got %d", len(m.dh), len(angles))
	}
	transforms := make([]*kinmath.Transform, len(m.dh))
	for i, p := range m.dh {
		transforms[i] = DHTransform(p.A, p.Alpha, p.D, m.theta(i, angles[i]))
	}
	return transforms, nil
}

// CumulativeTransforms builds the base-to-link transform of every link:
// cumulative[0] is the first joint transform and cumulative[i] is
// cumulative[i-1] times the i-th joint transform. The rendering layer
// uses these to place the six rigid sub-assemblies.
func (m *Model) CumulativeTransforms(angles []float64) ([]*kinmath.Transform, error) {
	joints, err := m.JointTransforms(angles)
	if err != nil {
		return nil, err
	}
	cumulative := make([]*kinmath.Transform, len(joints))
	for i, t := range joints {
		if i == 0 {
			cumulative[i] = t
			continue
		}
		cumulative[i] = cumulative[i-1].Mul(t)
	}
	return cumulative, nil
}

// Forward computes the end effector pose for the given joint angles in
// degrees.
func (m *Model) Forward(angles []float64) (*Pose, error) {
	cumulative, err := m.CumulativeTransforms(angles)
	if err != nil {
		return nil, err
	}
	pose, ok := PoseFromTransform(cumulative[len(cumulative)-1])
	if !ok && m.logger != nil {
		m.logger.Warnw("pose extraction near gimbal lock, a/c split not unique", "angles", angles)
	}
	return pose, nil
}
