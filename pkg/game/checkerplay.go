package game

import "github.com/yourusername/bgmatch/pkg/board"

// ToPos converts an absolute position (White's view) into the mover's
// coordinates.
func ToPos(absPos int, isRed bool) int {
	if isRed {
		return board.BearOffPos - absPos
	}
	return absPos
}

// ToAbsPos converts a mover position into White's view.
func ToAbsPos(pos int, isRed bool) int {
	return ToPos(pos, isRed)
}

// CheckerPlayState is one player's in-progress checker play. It is a value:
// every operation returns a new state and leaves the receiver usable, so a
// caller can keep earlier states around to offer redo.
type CheckerPlayState struct {
	isRed    bool
	root     *board.Node
	alt      *board.Node // root with dice swapped
	reverted bool
	cur      *board.Node
}

// NewCheckerPlayState starts a play at root.
func NewCheckerPlayState(isRed bool, root *board.Node) CheckerPlayState {
	return CheckerPlayState{isRed: isRed, root: root, alt: root.WithDiceReverted(), cur: root}
}

// IsRed reports the mover's color.
func (s CheckerPlayState) IsRed() bool { return s.isRed }

// Node returns the current node of the move tree.
func (s CheckerPlayState) Node() *board.Node { return s.cur }

// IsDiceReverted reports whether the dice are played in swapped order.
func (s CheckerPlayState) IsDiceReverted() bool { return s.reverted }

// IsUndoable reports whether any move has been made.
func (s CheckerPlayState) IsUndoable() bool { return !s.cur.IsRoot() }

// IsCommittable reports whether the current moves are a complete play.
func (s CheckerPlayState) IsCommittable() bool { return s.cur.IsCommitReady() }

// Board returns the current position in the mover's view.
func (s CheckerPlayState) Board() board.BoardState { return s.cur.Board() }

// AbsBoard returns the current position in White's view.
func (s CheckerPlayState) AbsBoard() board.BoardState {
	if s.isRed {
		return s.cur.Board().Revert()
	}
	return s.cur.Board()
}

// AbsMoves returns the moves made so far in White's view. A Red checker
// borne off lands on 0.
func (s CheckerPlayState) AbsMoves() []board.Move {
	moves := s.cur.LastMoves()
	for i := range moves {
		moves[i].From = ToAbsPos(moves[i].From, s.isRed)
		moves[i].To = ToAbsPos(moves[i].To, s.isRed)
	}
	return moves
}

func (s CheckerPlayState) turnRoot() *board.Node {
	if s.reverted {
		return s.alt
	}
	return s.root
}

// ApplyResult reports whether ApplyMove found a move. State is unchanged when
// IsValid is false.
type ApplyResult struct {
	IsValid bool
	State   CheckerPlayState
}

// ApplyMove interprets a click on absPos. In order it tries to advance the
// checker on absPos by the next usable die, to make a point on absPos with
// two checkers, and to bring a single checker to absPos in one or more moves.
// For bearing off, absPos is the mover's off tray: 25 for White, 0 for Red.
func (s CheckerPlayState) ApplyMove(absPos int) ApplyResult {
	pos := ToPos(absPos, s.isRed)

	next := s.cur.ChildNode(pos)
	if next == nil {
		next = s.cur.MakePoint(pos)
	}
	if next == nil {
		next = s.cur.MakeLeap(pos)
	}
	if next == nil {
		return ApplyResult{IsValid: false, State: s}
	}
	s.cur = next
	return ApplyResult{IsValid: true, State: s}
}

// RevertDiceOrder swaps which die is used first. It only has an effect
// before any move and for a non-double roll.
func (s CheckerPlayState) RevertDiceOrder() CheckerPlayState {
	if !s.cur.IsRoot() || s.root.Roll().IsDouble() {
		return s
	}
	s.reverted = !s.reverted
	s.cur = s.turnRoot()
	return s
}

// Undo returns to the start of the turn, keeping the selected dice order.
func (s CheckerPlayState) Undo() CheckerPlayState {
	s.cur = s.turnRoot()
	return s
}

// Commit freezes the current node as the played move.
func (s CheckerPlayState) Commit() (CheckerPlayCommitted, error) {
	if !s.cur.IsCommitReady() {
		return CheckerPlayCommitted{}, ErrPlayIncomplete
	}
	return CheckerPlayCommitted{IsRed: s.isRed, Node: s.cur}, nil
}

// CheckerPlayCommitted is a finished checker play ready to hand to the game.
type CheckerPlayCommitted struct {
	IsRed bool
	Node  *board.Node
}
