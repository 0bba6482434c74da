package qraft

import "math"

// MassProperties aggregates unpacked instances into a total mass and a
// world-space center of mass, treating each mesh as a closed solid of the
// given density. Frames that scale space scale the volume by |det|.
// It returns ErrDivisionByZero when the total mass is zero.
func MassProperties(instances []Instance, density float64) (mass float64, center Quaternion, err error) {
	var moment Quaternion
	for _, in := range instances {
		vol, c := in.Mesh.volumeCentroid()
		m := math.Abs(vol*in.Frame.Determinant()) * density
		mass += m
		moment = moment.Add(in.Position.Add(c.Morph(in.Frame)).Scale(m))
	}
	if mass == 0 {
		return 0, Quaternion{}, ErrDivisionByZero
	}
	return mass, moment.DivScalar(mass).Pure(), nil
}
