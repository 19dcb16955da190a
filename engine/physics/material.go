package physics

import "github.com/spaghettifunk/exhibit/engine/math"

// CombineRule decides how the coefficients of two touching surfaces mix.
// When the two surfaces disagree the rule with the higher value wins, so a
// body asking for CombineMin overrides a neighbour using CombineAverage.
type CombineRule int

const (
	CombineAverage CombineRule = iota
	CombineMin
	CombineMultiply
	CombineMax
)

func (r CombineRule) String() string {
	switch r {
	case CombineAverage:
		return "average"
	case CombineMin:
		return "min"
	case CombineMultiply:
		return "multiply"
	case CombineMax:
		return "max"
	}
	return "unknown"
}

// Combine mixes a and b with the rule.
func (r CombineRule) Combine(a, b float32) float32 {
	switch r {
	case CombineMin:
		return math.Min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMax:
		return math.Max(a, b)
	}
	return (a + b) * 0.5
}

// MaterialData is the surface response of a collider.
type MaterialData struct {
	Friction           float32
	Restitution        float32
	FrictionCombine    CombineRule
	RestitutionCombine CombineRule
}

// DefaultMaterial matches an untagged surface: friction 0.5, no bounce,
// averaged against whatever it touches.
func DefaultMaterial() MaterialData {
	return MaterialData{Friction: 0.5}
}

// ContactCoefficients returns the friction and restitution of a contact
// between surfaces a and b.
func ContactCoefficients(a, b MaterialData) (friction, restitution float32) {
	fr := math.Max(a.FrictionCombine, b.FrictionCombine)
	rr := math.Max(a.RestitutionCombine, b.RestitutionCombine)
	return fr.Combine(a.Friction, b.Friction), rr.Combine(a.Restitution, b.Restitution)
}
