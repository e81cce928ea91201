package kinematics

import (
	"math"

	"github.com/robomotive/sixdof/kinmath"
)

// DHParam holds the three fixed Denavit-Hartenberg quantities of one
// chain link: length along the previous joint's x axis, twist about
// that axis and offset along the joint's z axis. The fourth quantity,
// the joint angle, is the variable supplied per solve.
type DHParam struct {
	A     float64 // link length, mm
	Alpha float64 // link twist, radians
	D     float64 // link offset, mm
}

// DHTransform builds the homogeneous transform of one link from its DH
// parameters and a joint angle in radians, using the standard DH
// convention.
func DHTransform(a, alpha, d, theta float64) *kinmath.Transform {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	ct, st := math.Cos(theta), math.Sin(theta)

	t := kinmath.NewTransform()
	m := t.Matrix()
	m.Set(0, 0, ct)
	m.Set(0, 1, -st*ca)
	m.Set(0, 2, st*sa)
	m.Set(0, 3, a*ct)
	m.Set(1, 0, st)
	m.Set(1, 1, ct*ca)
	m.Set(1, 2, -ct*sa)
	m.Set(1, 3, a*st)
	m.Set(2, 1, sa)
	m.Set(2, 2, ca)
	m.Set(2, 3, d)
	return t
}
