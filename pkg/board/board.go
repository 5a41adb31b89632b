// Package board provides the backgammon position, dice and the move tree of
// legal continuations for a roll.
//
// A BoardState is always seen from the side on roll (the mover). Slot 0 is
// the mover's bar, slots 1-24 are the points in the mover's direction of
// travel and slot 25 is the opponent's bar. Mover checkers are counted
// positive, opponent checkers negative.
package board

import (
	"fmt"

	"github.com/yourusername/bgmatch/internal/positionid"
)

const (
	// BarPos is the mover's bar.
	BarPos = 0
	// OpponentBarPos is the opponent's bar in mover coordinates.
	OpponentBarPos = 25
	// BearOffPos is the destination recorded for a checker borne off.
	BearOffPos = 25
	// HomeStart is the first point of the mover's home board.
	HomeStart = 19
	// NumCheckers is the number of checkers per side.
	NumCheckers = 15
)

// BoardState is an immutable position. Every mutating operation returns a
// new value.
type BoardState struct {
	points  [26]int
	bornOff [2]int // [0] mover, [1] opponent
}

// NewBoardState builds a position from slot counts. Checkers missing from
// either side are treated as borne off.
func NewBoardState(points [26]int) BoardState {
	b := BoardState{points: points}
	b.bornOff[0] = NumCheckers - b.MyPieceCount()
	b.bornOff[1] = NumCheckers - b.OpponentPieceCount()
	return b
}

// StartingPosition returns the standard starting position. It is symmetric,
// so it reads the same from either side.
func StartingPosition() BoardState {
	var p [26]int
	p[1] = 2   // 24-point
	p[12] = 5  // mid-point
	p[17] = 3  // 8-point
	p[19] = 5  // 6-point
	p[6] = -5  // opponent's 6-point
	p[8] = -3  // opponent's 8-point
	p[13] = -5 // opponent's mid-point
	p[24] = -2 // opponent's 24-point
	return NewBoardState(p)
}

// PiecesAt returns the signed checker count at pos.
func (b BoardState) PiecesAt(pos int) int {
	if pos < 0 || pos > 25 {
		return 0
	}
	return b.points[pos]
}

// Points returns a copy of all 26 slots.
func (b BoardState) Points() [26]int {
	return b.points
}

// MyBornOff returns how many mover checkers are off.
func (b BoardState) MyBornOff() int { return b.bornOff[0] }

// OpponentBornOff returns how many opponent checkers are off.
func (b BoardState) OpponentBornOff() int { return b.bornOff[1] }

// MyPieceCount counts mover checkers still on the board (bar included).
func (b BoardState) MyPieceCount() int {
	n := 0
	for _, c := range b.points {
		if c > 0 {
			n += c
		}
	}
	return n
}

// OpponentPieceCount counts opponent checkers still on the board.
func (b BoardState) OpponentPieceCount() int {
	n := 0
	for _, c := range b.points {
		if c < 0 {
			n -= c
		}
	}
	return n
}

// MyPipCount is the mover's total distance to bear off.
func (b BoardState) MyPipCount() int {
	pips := 0
	for pos := BarPos; pos <= 24; pos++ {
		if c := b.points[pos]; c > 0 {
			pips += c * (25 - pos)
		}
	}
	return pips
}

// OpponentPipCount is the opponent's total distance to bear off.
func (b BoardState) OpponentPipCount() int {
	pips := 0
	for pos := 1; pos <= OpponentBarPos; pos++ {
		if c := b.points[pos]; c < 0 {
			pips -= c * pos
		}
	}
	return pips
}

// MyLastPos returns the rearmost slot holding a mover checker, or
// BearOffPos when all are off.
func (b BoardState) MyLastPos() int {
	for pos := BarPos; pos <= 24; pos++ {
		if b.points[pos] > 0 {
			return pos
		}
	}
	return BearOffPos
}

// opponentLastPos returns the opponent's rearmost checker in mover
// coordinates, or 0 when all are off.
func (b BoardState) opponentLastPos() int {
	for pos := OpponentBarPos; pos >= 1; pos-- {
		if b.points[pos] < 0 {
			return pos
		}
	}
	return 0
}

// IsBearable reports whether every mover checker is in the home board.
func (b BoardState) IsBearable() bool {
	return b.MyLastPos() >= HomeStart
}

// IsRunningGame reports whether the two sides have passed each other.
func (b BoardState) IsRunningGame() bool {
	return b.MyLastPos() > b.opponentLastPos()
}

// Revert returns the same position seen from the other side.
func (b BoardState) Revert() BoardState {
	var r BoardState
	for i := range b.points {
		r.points[i] = -b.points[25-i]
	}
	r.bornOff = [2]int{b.bornOff[1], b.bornOff[0]}
	return r
}

// EOGStatus classifies the position for the mover: the game is over when the
// mover has borne off every checker.
func (b BoardState) EOGStatus() EOGStatus {
	if b.bornOff[0] < NumCheckers {
		return EOGStatus{}
	}
	eog := EOGStatus{IsEndOfGame: true}
	if b.bornOff[1] > 0 {
		return eog
	}
	eog.IsGammon = true
	for pos := HomeStart; pos <= OpponentBarPos; pos++ {
		if b.points[pos] < 0 {
			eog.IsBackgammon = true
			break
		}
	}
	return eog
}

// TanBoard converts the position to gnubg's layout with the mover as side 1.
func (b BoardState) TanBoard() positionid.Board {
	var t positionid.Board
	for i := 0; i < 24; i++ {
		if c := b.points[24-i]; c > 0 {
			t[1][i] = uint8(c)
		}
		if c := b.points[i+1]; c < 0 {
			t[0][i] = uint8(-c)
		}
	}
	if c := b.points[BarPos]; c > 0 {
		t[1][24] = uint8(c)
	}
	if c := b.points[OpponentBarPos]; c < 0 {
		t[0][24] = uint8(-c)
	}
	return t
}

// FromTanBoard is the inverse of TanBoard.
func FromTanBoard(t positionid.Board) BoardState {
	var p [26]int
	for i := 0; i < 24; i++ {
		p[24-i] += int(t[1][i])
		p[i+1] -= int(t[0][i])
	}
	p[BarPos] = int(t[1][24])
	p[OpponentBarPos] = -int(t[0][24])
	return NewBoardState(p)
}

// PositionID returns the gnubg position ID with the mover on roll.
func (b BoardState) PositionID() string {
	return positionid.ID(b.TanBoard())
}

// FromPositionID decodes a gnubg position ID into a mover-perspective board.
func FromPositionID(id string) (BoardState, error) {
	t, err := positionid.Parse(id)
	if err != nil {
		return BoardState{}, fmt.Errorf("decode position: %w", err)
	}
	return FromTanBoard(t), nil
}

// String renders the slots compactly, for logs and test failures.
func (b BoardState) String() string {
	return fmt.Sprintf("%v off:%d/%d", b.points, b.bornOff[0], b.bornOff[1])
}

// EOGStatus is the end-of-game classification of a position.
type EOGStatus struct {
	IsEndOfGame  bool
	IsGammon     bool
	IsBackgammon bool
}

// Multiplier returns 3 for a backgammon, 2 for a gammon, 1 otherwise.
func (e EOGStatus) Multiplier() int {
	switch {
	case e.IsBackgammon:
		return 3
	case e.IsGammon:
		return 2
	default:
		return 1
	}
}

// CalcStake returns the points won at cubeValue. When jacobyApplies the
// gammon and backgammon multipliers collapse to 1.
func (e EOGStatus) CalcStake(cubeValue int, jacobyApplies bool) int {
	if jacobyApplies {
		return cubeValue
	}
	return cubeValue * e.Multiplier()
}
