package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRadConversion(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldEqual, 90)
	test.That(t, RadToDeg(DegToRad(-37.5)), test.ShouldAlmostEqual, -37.5, 1e-12)
}

func TestAngleDiffDeg(t *testing.T) {
	test.That(t, AngleDiffDeg(0, 0), test.ShouldEqual, 0)
	test.That(t, AngleDiffDeg(10, 350), test.ShouldEqual, 20)
	test.That(t, AngleDiffDeg(350, 10), test.ShouldEqual, 20)
	test.That(t, AngleDiffDeg(-180, 180), test.ShouldEqual, 0)
}

func TestModAngDeg(t *testing.T) {
	test.That(t, ModAngDeg(-1), test.ShouldEqual, 359)
	test.That(t, ModAngDeg(361), test.ShouldEqual, 1)
	test.That(t, ModAngDeg(720), test.ShouldEqual, 0)
}

func TestNormAngDeg(t *testing.T) {
	test.That(t, NormAngDeg(190), test.ShouldEqual, -170)
	test.That(t, NormAngDeg(-190), test.ShouldEqual, 170)
	test.That(t, NormAngDeg(180), test.ShouldEqual, 180)
	test.That(t, NormAngDeg(-180), test.ShouldEqual, 180)
	test.That(t, NormAngDeg(0), test.ShouldEqual, 0)
}
