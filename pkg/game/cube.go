package game

// DefaultMaxCube is the cube cap used when none is configured.
const DefaultMaxCube = 512

// CubeOwner is the side holding the cube.
type CubeOwner int

const (
	CubeCenter CubeOwner = iota
	CubeRed
	CubeWhite
)

// OwnerFor returns the owner value for a side.
func OwnerFor(isRed bool) CubeOwner {
	if isRed {
		return CubeRed
	}
	return CubeWhite
}

// String returns the string representation of a cube owner
func (o CubeOwner) String() string {
	switch o {
	case CubeRed:
		return "red"
	case CubeWhite:
		return "white"
	default:
		return "center"
	}
}

// CubeState is the doubling cube: its value, a power of two, its owner and
// the cap on its value.
type CubeState struct {
	Value int
	Owner CubeOwner
	Max   int
}

// NewCubeState returns a centered cube on 1. A non-positive max uses
// DefaultMaxCube.
func NewCubeState(max int) CubeState {
	if max <= 0 {
		max = DefaultMaxCube
	}
	return CubeState{Value: 1, Owner: CubeCenter, Max: max}
}

// IsCentered reports whether nobody has doubled yet.
func (c CubeState) IsCentered() bool {
	return c.Owner == CubeCenter
}

// IsMax reports whether the cube has reached its cap.
func (c CubeState) IsMax() bool {
	return c.Value >= c.Max
}

// MayDoubleFor reports whether owner may offer a double: the cube is below
// its cap and either centered or already owned by owner.
func (c CubeState) MayDoubleFor(owner CubeOwner) bool {
	if c.IsMax() {
		return false
	}
	return c.Owner == CubeCenter || c.Owner == owner
}

// Double returns the cube turned to the next value and handed to owner, the
// side that took.
func (c CubeState) Double(owner CubeOwner) CubeState {
	return CubeState{Value: c.Value * 2, Owner: owner, Max: c.Max}
}
