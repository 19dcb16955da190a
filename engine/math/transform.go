package math

import "github.com/chewxy/math32"

func TransformCreate() Transform {
	return Transform{
		Position: NewVec3Zero(),
		Rotation: NewQuatIdentity(),
		Scale:    NewVec3One(),
	}
}

func TransformFromPosition(position Vec3) Transform {
	return TransformFromPositionRotationScale(position, NewQuatIdentity(), NewVec3One())
}

func TransformFromPositionRotation(position Vec3, rotation Quaternion) Transform {
	return TransformFromPositionRotationScale(position, rotation, NewVec3One())
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	}
}

// GetLocal builds the scale, rotate, translate matrix of t.
func (t Transform) GetLocal() Mat4 {
	m := t.Rotation.ToMat4()
	tr := m.Mul(NewMat4Translation(t.Position))
	s := NewMat4Scale(t.Scale)
	return s.Mul(tr)
}

// Compose returns t expressed in the space parent lives in: parent applied
// after t. Non-uniform parent scale combined with child rotation would need
// shear, which a Transform cannot hold; scales are multiplied component-wise.
func (t Transform) Compose(parent Transform) Transform {
	return Transform{
		Position: parent.Position.Add(parent.Rotation.Rotate(parent.Scale.Mul(t.Position))),
		Rotation: parent.Rotation.Mul(t.Rotation).Normalize(),
		Scale:    parent.Scale.Mul(t.Scale),
	}
}

// TransformPoint maps a point from t's local space into its parent space.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Position.Add(t.Rotation.Rotate(t.Scale.Mul(p)))
}

// Compare reports whether both transforms agree within tolerance.
func (t Transform) Compare(other Transform, tolerance float32) bool {
	return t.Position.Compare(other.Position, tolerance) &&
		t.Rotation.Compare(other.Rotation, tolerance) &&
		t.Scale.Compare(other.Scale, tolerance)
}

// TransformFromMat4 splits a scale, rotate, translate matrix back into its
// parts. Shear and mirroring are not recovered.
func TransformFromMat4(m Mat4) Transform {
	scale := Vec3{
		Vec3{m.Data[0], m.Data[1], m.Data[2]}.Length(),
		Vec3{m.Data[4], m.Data[5], m.Data[6]}.Length(),
		Vec3{m.Data[8], m.Data[9], m.Data[10]}.Length(),
	}
	axis := [3]float32{scale.X, scale.Y, scale.Z}

	// r(a, b) is the column vector rotation element at row a, column b.
	r := func(a, b int) float32 {
		if axis[b] == 0 {
			return 0
		}
		return m.Data[b*4+a] / axis[b]
	}

	var q Quaternion
	trace := r(0, 0) + r(1, 1) + r(2, 2)
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q = Quaternion{(r(2, 1) - r(1, 2)) * s, (r(0, 2) - r(2, 0)) * s, (r(1, 0) - r(0, 1)) * s, 0.25 / s}
	case r(0, 0) > r(1, 1) && r(0, 0) > r(2, 2):
		s := 2 * math32.Sqrt(1+r(0, 0)-r(1, 1)-r(2, 2))
		q = Quaternion{0.25 * s, (r(0, 1) + r(1, 0)) / s, (r(0, 2) + r(2, 0)) / s, (r(2, 1) - r(1, 2)) / s}
	case r(1, 1) > r(2, 2):
		s := 2 * math32.Sqrt(1+r(1, 1)-r(0, 0)-r(2, 2))
		q = Quaternion{(r(0, 1) + r(1, 0)) / s, 0.25 * s, (r(1, 2) + r(2, 1)) / s, (r(0, 2) - r(2, 0)) / s}
	default:
		s := 2 * math32.Sqrt(1+r(2, 2)-r(0, 0)-r(1, 1))
		q = Quaternion{(r(0, 2) + r(2, 0)) / s, (r(1, 2) + r(2, 1)) / s, 0.25 * s, (r(1, 0) - r(0, 1)) / s}
	}

	return Transform{
		Position: Vec3{m.Data[12], m.Data[13], m.Data[14]},
		Rotation: q.Normalize(),
		Scale:    scale,
	}
}
