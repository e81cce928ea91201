package kinematics

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/robomotive/sixdof/utils"
)

const (
	// wristAlignEps is the hard cutoff below which the wrist axes are
	// treated as exactly aligned and the roll split decomposes into a
	// single residual rotation.
	wristAlignEps = 1e-8
	// singularWarnRad is the observability threshold: orientation
	// denominators smaller than this (about 0.1 rad from alignment)
	// mean degraded precision and get logged.
	singularWarnRad = 0.1
)

// SphericalWristSolver computes joint angles for a desired pose in
// closed form, decoupling position (joints 1-3) from orientation
// (joints 4-6) at the wrist center. It returns one fixed solution
// branch: elbow down, wrist non-flipped (theta5 in [0, 180] in DH
// terms). The other branches of the generally eight-fold solution set
// are not explored.
type SphericalWristSolver struct {
	model  *Model
	logger golog.Logger

	d1 float64 // shoulder height
	a2 float64 // upper arm length
	d4 float64 // forearm length
	d6 float64 // wrist to tool flange
}

// NewSphericalWristSolver builds a solver for the given model. The
// model's DH table must have the spherical wrist structure: the only
// nonzero link length on the second joint, the tool offset along the
// final z axis, and the last three joint axes intersecting in a point.
func NewSphericalWristSolver(model *Model, logger golog.Logger) (*SphericalWristSolver, error) {
	dh := model.DH()
	for i, p := range dh {
		if i != 1 && p.A != 0 {
			return nil, errors.Errorf("joint %d has a nonzero link length, chain is not wrist-partitioned", i+1)
		}
	}
	if dh[1].A == 0 || dh[3].D == 0 {
		return nil, errors.New("need nonzero upper arm and forearm lengths")
	}
	if dh[4].D != 0 || dh[2].D != 0 {
		return nil, errors.New("wrist axes do not intersect, closed-form decoupling does not apply")
	}
	// The closed form below is written against this twist pattern.
	wantAlpha := []float64{math.Pi / 2, 0, math.Pi / 2, -math.Pi / 2, math.Pi / 2, 0}
	for i, p := range dh {
		if math.Abs(p.Alpha-wantAlpha[i]) > 1e-9 {
			return nil, errors.Errorf("joint %d twist %.4f does not match the spherical wrist chain", i+1, p.Alpha)
		}
	}
	return &SphericalWristSolver{
		model:  model,
		logger: logger,
		d1:     dh[0].D,
		a2:     dh[1].A,
		d4:     dh[3].D,
		d6:     dh[5].D,
	}, nil
}

// WristCenter back-solves the wrist center point of a goal transform
// by retracting the tool offset along the tool z axis.
func (ik *SphericalWristSolver) WristCenter(goal *mat.Dense, translation r3.Vector) r3.Vector {
	toolZ := r3.Vector{X: goal.At(0, 2), Y: goal.At(1, 2), Z: goal.At(2, 2)}
	return translation.Sub(toolZ.Mul(ik.d6))
}

// Solve computes the six joint angles in degrees that place the end
// effector at the given pose. A pose whose wrist center lies outside
// the reachable annulus yields an UnreachableTargetError.
func (ik *SphericalWristSolver) Solve(pose *Pose) ([]float64, error) {
	goal := pose.Transform()
	rGoal := goal.Rotation()
	wc := ik.WristCenter(rGoal, goal.Translation())

	theta1 := math.Atan2(wc.Y, wc.X)

	// Planar two-link subproblem in the (r, s) half plane through the
	// base axis.
	r := math.Hypot(wc.X, wc.Y)
	s := wc.Z - ik.d1
	k := (r*r + s*s - ik.a2*ik.a2 - ik.d4*ik.d4) / (2 * ik.a2 * ik.d4)
	if math.Abs(k) > 1 {
		return nil, &UnreachableTargetError{Pose: pose, Cosine: k, ReachMM: math.Hypot(r, s)}
	}
	// Elbow-down branch. The DH zero of joint 3 sits a quarter turn
	// from the planar zero, so the law-of-cosines term lands on the
	// sine here.
	theta3 := math.Atan2(k, math.Sqrt(1-k*k))
	theta2 := math.Atan2(s, r) + math.Atan2(ik.d4*math.Cos(theta3), ik.a2+ik.d4*math.Sin(theta3))

	// Residual orientation once the position chain is fixed.
	rArm := rotationToWrist(theta1, theta2, theta3)
	var rWrist mat.Dense
	rWrist.Mul(rArm.T(), rGoal)

	theta4, theta5, theta6 := ik.wristAngles(&rWrist)

	angles := make([]float64, Joints)
	for i, theta := range []float64{theta1, theta2, theta3, theta4, theta5, theta6} {
		angles[i] = ik.model.jointAngle(i, theta)
	}
	return angles, nil
}

// wristAngles decomposes the residual rotation into the roll-pitch-roll
// wrist axes.
func (ik *SphericalWristSolver) wristAngles(rw *mat.Dense) (theta4, theta5, theta6 float64) {
	den := math.Hypot(rw.At(0, 2), rw.At(1, 2))
	theta5 = math.Atan2(den, rw.At(2, 2))

	if den <= wristAlignEps {
		// Wrist axes aligned: only the sum (or difference) of the two
		// roll angles is determined. Pin joint 4 to its zero reference
		// and fold the whole residual roll into joint 6.
		theta4 = utils.DegToRad(ik.model.homeOffsets[3])
		if rw.At(2, 2) > 0 {
			total := math.Atan2(rw.At(1, 0), rw.At(0, 0))
			theta6 = total - theta4
		} else {
			diff := math.Atan2(-rw.At(0, 1), -rw.At(0, 0))
			theta6 = theta4 - diff
		}
		if ik.logger != nil {
			ik.logger.Warnw("wrist singular, roll split fixed by convention", "cos5", rw.At(2, 2))
		}
		return theta4, theta5, theta6
	}

	theta4 = math.Atan2(rw.At(1, 2), rw.At(0, 2))
	theta6 = math.Atan2(rw.At(2, 1), -rw.At(2, 0))
	if den < singularWarnRad && ik.logger != nil {
		ik.logger.Warnw("wrist near singular, orientation precision degraded", "denominator", den)
	}
	return theta4, theta5, theta6
}

// rotationToWrist is the cumulative rotation of the first three DH
// frames, written out from the chain product for this alpha pattern
// (+90, 0, +90 degrees of twist).
func rotationToWrist(theta1, theta2, theta3 float64) *mat.Dense {
	c1, s1 := math.Cos(theta1), math.Sin(theta1)
	c23, s23 := math.Cos(theta2+theta3), math.Sin(theta2+theta3)
	return mat.NewDense(3, 3, []float64{
		c1 * c23, s1, c1 * s23,
		s1 * c23, -c1, s1 * s23,
		s23, 0, -c23,
	})
}
