package kinematics

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/robomotive/sixdof/utils"
)

func newTestSolver(t *testing.T) (*Model, *SphericalWristSolver) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	model := DefaultModel(logger)
	ik, err := NewSphericalWristSolver(model, logger)
	test.That(t, err, test.ShouldBeNil)
	return model, ik
}

func TestSolverStructureValidation(t *testing.T) {
	logger := golog.NewTestLogger(t)

	// A nonzero link length outside joint 2 breaks the wrist
	// partitioning.
	dh := DefaultModel(logger).DH()
	dh[2].A = 50
	model, err := NewModel("bent", dh, nil, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	_, err = NewSphericalWristSolver(model, logger)
	test.That(t, err, test.ShouldNotBeNil)

	// A twist pattern the closed form was not derived for.
	dh = DefaultModel(logger).DH()
	dh[4].Alpha = -math.Pi / 2
	model, err = NewModel("twisted", dh, nil, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	_, err = NewSphericalWristSolver(model, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInverseHome(t *testing.T) {
	_, ik := newTestSolver(t)

	home := &Pose{X: 0, Y: 0, Z: ShoulderHeight + UpperArmLength + ForeArmLength + WristOffset}
	angles, err := ik.Solve(home)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angles, test.ShouldHaveLength, Joints)
	for _, a := range angles {
		test.That(t, a, test.ShouldAlmostEqual, 0, 1e-9)
	}
}

// forward(inverse(forward(angles))) must reproduce the pose within
// tolerance even when the solver lands on a different joint branch
// than the seed.
func TestInverseRoundTrip(t *testing.T) {
	model, ik := newTestSolver(t)

	for _, seed := range [][]float64{
		{0, 0, 0, 0, 0, 0},
		{10, 20, -30, 15, 40, -60},
		{-45, 30, 30, 0, 25, 90},
		{30, -40, 50, -60, 20, 10},
		{5, -10, 20, 170, 85, -170},
		{60, 45, -45, -20, -70, 130},
		{20, 10, -15, 25, 0, 40}, // wrist singular: joint 5 at zero
		{-90, 5, 5, 0, 0, 0},     // wrist singular, rotated base
	} {
		want, err := model.Forward(seed)
		test.That(t, err, test.ShouldBeNil)

		solved, err := ik.Solve(want)
		test.That(t, err, test.ShouldBeNil)

		got, err := model.Forward(solved)
		test.That(t, err, test.ShouldBeNil)

		test.That(t, got.X, test.ShouldAlmostEqual, want.X, 1e-6)
		test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, 1e-6)
		test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, 1e-6)
		test.That(t, utils.AngleDiffDeg(got.A, want.A), test.ShouldAlmostEqual, 0, 1e-4)
		test.That(t, utils.AngleDiffDeg(got.B, want.B), test.ShouldAlmostEqual, 0, 1e-4)
		test.That(t, utils.AngleDiffDeg(got.C, want.C), test.ShouldAlmostEqual, 0, 1e-4)
	}
}

func TestUnreachableTarget(t *testing.T) {
	_, ik := newTestSolver(t)

	_, err := ik.Solve(&Pose{X: 10000, Y: 0, Z: 0})
	test.That(t, err, test.ShouldNotBeNil)
	var unreachable *UnreachableTargetError
	test.That(t, errors.As(err, &unreachable), test.ShouldBeTrue)
	test.That(t, unreachable.Cosine > 1, test.ShouldBeTrue)

	// Inside the minimum-reach hole of the annulus.
	_, err = ik.Solve(&Pose{X: 5, Y: 0, Z: ShoulderHeight + WristOffset})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.As(err, &unreachable), test.ShouldBeTrue)
	test.That(t, unreachable.Cosine < -1, test.ShouldBeTrue)
}

func TestWristCenter(t *testing.T) {
	_, ik := newTestSolver(t)

	// Tool pointing straight up: the wrist center sits WristOffset
	// below the tool point.
	pose := &Pose{X: 100, Y: 50, Z: 600}
	goal := pose.Transform()
	wc := ik.WristCenter(goal.Rotation(), goal.Translation())
	test.That(t, wc.X, test.ShouldAlmostEqual, 100, 1e-12)
	test.That(t, wc.Y, test.ShouldAlmostEqual, 50, 1e-12)
	test.That(t, wc.Z, test.ShouldAlmostEqual, 600-WristOffset, 1e-12)
}

func TestElbowBranchConvention(t *testing.T) {
	model, ik := newTestSolver(t)

	// A pose solved from a generic seed: solving again must return the
	// exact same branch, not wander between the eight alternatives.
	seed := []float64{25, -35, 40, 10, 55, -80}
	pose, err := model.Forward(seed)
	test.That(t, err, test.ShouldBeNil)
	first, err := ik.Solve(pose)
	test.That(t, err, test.ShouldBeNil)
	second, err := ik.Solve(pose)
	test.That(t, err, test.ShouldBeNil)
	for i := range first {
		test.That(t, second[i], test.ShouldEqual, first[i])
	}
}
