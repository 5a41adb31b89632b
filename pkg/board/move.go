package board

import "fmt"

// Move is a single checker move in mover coordinates.
type Move struct {
	From  int
	To    int // BearOffPos when borne off
	Pip   int
	IsHit bool
}

// IsBearOff reports whether the move takes the checker off.
func (m Move) IsBearOff() bool {
	return m.To == BearOffPos
}

func (m Move) String() string {
	from := fmt.Sprint(m.From)
	if m.From == BarPos {
		from = "bar"
	}
	to := fmt.Sprint(m.To)
	if m.IsBearOff() {
		to = "off"
	}
	if m.IsHit {
		to += "*"
	}
	return from + "/" + to
}

// IsLegalMove checks whether the mover may move a checker from `from` by pip,
// ignoring the maximum-dice-usage rule.
func (b BoardState) IsLegalMove(from, pip int) bool {
	if from < BarPos || from > 24 || pip < 1 || pip > 6 {
		return false
	}
	if b.points[from] <= 0 {
		return false
	}
	// Checkers on the bar must enter first
	if b.points[BarPos] > 0 && from != BarPos {
		return false
	}

	to := from + pip
	if to <= 24 {
		return b.points[to] > -2
	}

	// Bearing off: all checkers home, and either exact or from the rearmost point
	if !b.IsBearable() {
		return false
	}
	return to == BearOffPos || from == b.MyLastPos()
}

// Move applies a single checker move. ok is false when the move is illegal,
// in which case b is returned unchanged.
func (b BoardState) Move(from, pip int) (next BoardState, m Move, ok bool) {
	if !b.IsLegalMove(from, pip) {
		return b, Move{}, false
	}

	next = b
	next.points[from]--
	m = Move{From: from, Pip: pip}

	to := from + pip
	if to > 24 {
		next.bornOff[0]++
		m.To = BearOffPos
		return next, m, true
	}

	if next.points[to] == -1 {
		next.points[to] = 0
		next.points[OpponentBarPos]--
		m.IsHit = true
	}
	next.points[to]++
	m.To = to
	return next, m, true
}
