// Package kinmath defines the rigid-body transform math used by the
// kinematics chain: 4x4 homogeneous matrices, Z-Y-X Euler conversion
// and quaternion based pose deltas.
package kinmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/robomotive/sixdof/utils"
)

// gimbalLockEps bounds how small the Euler pitch denominator may get
// before the a/c split is no longer independently recoverable.
const gimbalLockEps = 1e-9

// Transform represents the rotation and translation of one frame
// relative to another as a 4x4 homogeneous matrix.
type Transform struct {
	mat *mat.Dense
}

// NewTransform returns a new Transform whose matrix is the identity.
func NewTransform() *Transform {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		d.Set(i, i, 1)
	}
	return &Transform{mat: d}
}

// NewTransformFromRotation returns a Transform rotated by the given
// Z-Y-X Euler angles in degrees (a about Z, then b about Y, then c about X).
func NewTransformFromRotation(a, b, c float64) *Transform {
	m4 := mgl64.HomogRotate3DZ(utils.DegToRad(a)).Mul4(
		mgl64.HomogRotate3DY(utils.DegToRad(b)).Mul4(
			mgl64.HomogRotate3DX(utils.DegToRad(c))))
	t := NewTransform()
	for r := 0; r < 4; r++ {
		for col := 0; col < 4; col++ {
			t.mat.Set(r, col, m4.At(r, col))
		}
	}
	return t
}

// NewTransformFromMatrix wraps an existing matrix, rejecting anything
// that is not 4x4.
func NewTransformFromMatrix(m mat.Matrix) (*Transform, error) {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return nil, NewShapeError(r, c)
	}
	d := mat.NewDense(4, 4, nil)
	d.Copy(m)
	return &Transform{mat: d}, nil
}

// MulMat multiplies two homogeneous matrices, rejecting operands that
// are not 4x4 with a ShapeError.
func MulMat(a, b mat.Matrix) (*mat.Dense, error) {
	if r, c := a.Dims(); r != 4 || c != 4 {
		return nil, NewShapeError(r, c)
	}
	if r, c := b.Dims(); r != 4 || c != 4 {
		return nil, NewShapeError(r, c)
	}
	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

// Mul returns the product m * other. The left operand's frame contains
// the right operand's frame.
func (m *Transform) Mul(other *Transform) *Transform {
	var out mat.Dense
	out.Mul(m.mat, other.mat)
	return &Transform{mat: &out}
}

// Matrix returns the underlying 4x4 matrix.
func (m *Transform) Matrix() *mat.Dense {
	return m.mat
}

// Clone returns a copy of the transform.
func (m *Transform) Clone() *Transform {
	d := mat.NewDense(4, 4, nil)
	d.Copy(m.mat)
	return &Transform{mat: d}
}

func (m *Transform) at(r, c int) float64 {
	return m.mat.At(r, c)
}

// Rotation returns the top left 3x3 rotation submatrix.
func (m *Transform) Rotation() *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	r.Copy(m.mat.Slice(0, 3, 0, 3))
	return r
}

// Translation returns the XYZ translation parameters.
func (m *Transform) Translation() r3.Vector {
	return r3.Vector{X: m.at(0, 3), Y: m.at(1, 3), Z: m.at(2, 3)}
}

// SetX sets the X translation.
func (m *Transform) SetX(x float64) {
	m.mat.Set(0, 3, x)
}

// SetY sets the Y translation.
func (m *Transform) SetY(y float64) {
	m.mat.Set(1, 3, y)
}

// SetZ sets the Z translation.
func (m *Transform) SetZ(z float64) {
	m.mat.Set(2, 3, z)
}

// EulerZYX extracts Z-Y-X Euler angles in degrees from the rotation
// submatrix. The returned bool is false at the gimbal-lock boundary
// (pitch near +-90 degrees) where a and c are no longer independently
// recoverable; only their sum or difference is determined and the
// returned split is one representative of that family.
func (m *Transform) EulerZYX() (a, b, c float64, ok bool) {
	r20 := m.at(2, 0)
	r21 := m.at(2, 1)
	r22 := m.at(2, 2)

	den := math.Hypot(r21, r22)
	b = math.Atan2(-r20, den)

	// atan2 against a nonnegative denominator collapses two physically
	// distinct orientations into one numeric branch; the sign flip
	// restores the correct quadrant.
	if math.Cos(b) >= 0 {
		a = math.Atan2(m.at(1, 0), m.at(0, 0))
		c = math.Atan2(r21, r22)
	} else {
		a = math.Atan2(-m.at(1, 0), -m.at(0, 0))
		b = math.Atan2(-r20, -den)
		c = math.Atan2(-r21, -r22)
	}

	return utils.RadToDeg(a), utils.RadToDeg(b), utils.RadToDeg(c), den > gimbalLockEps
}

// Quaternion returns the rotation part as a quaternion.
func (m *Transform) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(m.mgl4())
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

func (m *Transform) mgl4() mgl64.Mat4 {
	var out mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Set(r, c, m.at(r, c))
		}
	}
	return out
}

// ToDelta returns the difference between two transforms as three
// translation deltas plus a scaled axis-angle rotation delta.
// Quaternion/axis-angle is used because rotation distances there are
// well-defined.
func (m *Transform) ToDelta(other *Transform) []float64 {
	ret := make([]float64, 6)
	ret[0] = other.at(0, 3) - m.at(0, 3)
	ret[1] = other.at(1, 3) - m.at(1, 3)
	ret[2] = other.at(2, 3) - m.at(2, 3)

	var rot mat.Dense
	rot.Mul(other.Rotation(), m.Rotation().T())
	q := mgl64.Mat4ToQuat(mgl3to4(&rot))
	axisAngle := QuatToAxisAngle(q)
	ret[3] = axisAngle[1] * axisAngle[0]
	ret[4] = axisAngle[2] * axisAngle[0]
	ret[5] = axisAngle[3] * axisAngle[0]
	return ret
}

// QuatToAxisAngle converts a quat to an axis angle in the same way the
// C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToAxisAngle(q mgl64.Quat) []float64 {
	denom := q.V.Len()

	angle := 2 * math.Atan2(denom, math.Abs(q.W))
	if q.W < 0 {
		angle *= -1
	}

	axisAngle := []float64{angle}

	if denom < 1e-6 {
		axisAngle = append(axisAngle, 1, 0, 0)
	} else {
		x, y, z := q.V.Mul(1 / denom).Elem()
		axisAngle = append(axisAngle, x, y, z)
	}
	return axisAngle
}

func mgl3to4(rot *mat.Dense) mgl64.Mat4 {
	out := mgl64.Ident4()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, rot.At(r, c))
		}
	}
	return out
}
