package math

// Basis3 is a 3x3 orthonormal frame stored row-major.
// Rows are right, up, back (a right-handed camera frame).
type Basis3 [3]Vec3

// LookAtBasis derives the camera frame for an eye looking at center with the
// given up direction. The frame is recomputed from scratch on every call; the
// result is only valid when eye != center.
func LookAtBasis(eye, center, up Vec3) Basis3 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Basis3{s, u, f.Scale(-1)}
}

// Row returns row i of the basis as an array.
func (b Basis3) Row(i int) [3]float64 {
	return b[i].Array()
}

// ViewMatrix returns the view matrix for a camera at eye with this frame.
// It matches LookAt for a basis derived by LookAtBasis.
func (b Basis3) ViewMatrix(eye Vec3) Mat4 {
	s, u, back := b[0], b[1], b[2]
	return Mat4{
		s.X, u.X, back.X, 0,
		s.Y, u.Y, back.Y, 0,
		s.Z, u.Z, back.Z, 0,
		-s.Dot(eye), -u.Dot(eye), -back.Dot(eye), 1,
	}
}
