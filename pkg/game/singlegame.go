package game

import (
	"fmt"

	"github.com/yourusername/bgmatch/pkg/board"
)

// SGTag names a single-game state.
type SGTag int

// SGTagNone stands for a missing state, as in a zero CubeGame.
const SGTagNone SGTag = -1

const (
	SGTagOpening SGTag = iota
	SGTagInPlay
	SGTagToRoll
	SGTagEoG
)

func (t SGTag) String() string {
	switch t {
	case SGTagNone:
		return "none"
	case SGTagOpening:
		return "SGOpening"
	case SGTagInPlay:
		return "SGInPlay"
	case SGTagToRoll:
		return "SGToRoll"
	case SGTagEoG:
		return "SGEoG"
	default:
		return fmt.Sprintf("SGTag(%d)", int(t))
	}
}

func sgTag(s SGState) SGTag {
	if s == nil {
		return SGTagNone
	}
	return s.Tag()
}

// SGState is one state of the single-game machine.
type SGState interface {
	Tag() SGTag
	// AbsBoard returns the position in White's view.
	AbsBoard() board.BoardState
	isSGState()
}

// SGOpening waits for the opening roll.
type SGOpening struct {
	// Board is in White's view.
	Board board.BoardState
	// DicePip is the pip of the last opening roll when it was a double, or 0.
	DicePip int
}

// NewSGOpening starts a game from the standard position.
func NewSGOpening() SGOpening {
	return SGOpening{Board: board.StartingPosition()}
}

// SGInPlay is a player moving checkers for a roll.
type SGInPlay struct {
	IsRed bool
	// Root is the move tree for this turn, in the mover's view.
	Root *board.Node
}

// SGToRoll is a player about to roll, with the cube possibly offered first.
type SGToRoll struct {
	IsRed bool
	// Board is in the mover's view.
	Board board.BoardState
	// LastPly is the opponent's play that led here.
	LastPly Ply
}

// SGEoG is a finished game.
type SGEoG struct {
	// IsRed is the winner's color.
	IsRed bool
	// Board is in the winner's view.
	Board     board.BoardState
	LastPly   Ply
	Result    Result
	EOGStatus board.EOGStatus
	// Stake is the score before the cube and optional rules are applied.
	Stake Score
}

func (SGOpening) Tag() SGTag { return SGTagOpening }
func (SGInPlay) Tag() SGTag  { return SGTagInPlay }
func (SGToRoll) Tag() SGTag  { return SGTagToRoll }
func (SGEoG) Tag() SGTag     { return SGTagEoG }

func (SGOpening) isSGState() {}
func (SGInPlay) isSGState()  {}
func (SGToRoll) isSGState()  {}
func (SGEoG) isSGState()     {}

func absBoard(b board.BoardState, isRed bool) board.BoardState {
	if isRed {
		return b.Revert()
	}
	return b
}

func (s SGOpening) AbsBoard() board.BoardState { return s.Board }
func (s SGInPlay) AbsBoard() board.BoardState  { return absBoard(s.Root.Board(), s.IsRed) }
func (s SGToRoll) AbsBoard() board.BoardState  { return absBoard(s.Board, s.IsRed) }
func (s SGEoG) AbsBoard() board.BoardState     { return absBoard(s.Board, s.IsRed) }

// DoOpening applies the opening roll, Dice1 for White and Dice2 for Red. A
// double is rerolled: the result is again an SGOpening carrying the pip.
// Otherwise the higher die moves first with the roll ordered winner's die
// first.
func (s SGOpening) DoOpening(roll board.DiceRoll) (SGState, error) {
	if err := roll.Validate(); err != nil {
		return nil, err
	}
	if roll.IsDouble() {
		return SGOpening{Board: s.Board, DicePip: roll.Dice1}, nil
	}

	isRed := roll.Dice2 > roll.Dice1
	b := s.Board
	if isRed {
		roll = roll.Reverted()
		b = b.Revert()
	}
	return SGInPlay{IsRed: isRed, Root: board.NewRootNode(b, roll)}, nil
}

// Board returns the position before the play, in the mover's view.
func (s SGInPlay) Board() board.BoardState { return s.Root.Board() }

// CheckerPlay returns a fresh play for this turn.
func (s SGInPlay) CheckerPlay() CheckerPlayState {
	return NewCheckerPlayState(s.IsRed, s.Root)
}

// belongs checks that c was played from this turn's tree by replaying its
// moves from the root.
func (s SGInPlay) belongs(c CheckerPlayCommitted) bool {
	if c.Node == nil || c.IsRed != s.IsRed || c.Node.Roll() != s.Root.Roll() {
		return false
	}
	n := s.Root
	for _, m := range c.Node.LastMoves() {
		if n = n.ChildNodeByPip(m.From, m.Pip); n == nil {
			return false
		}
	}
	return n.Board() == c.Node.Board() && n.IsCommitReady()
}

// DoCheckerPlayCommit ends the turn with a committed play. The result is
// SGEoG when the mover has borne off every checker, otherwise SGToRoll for
// the opponent.
func (s SGInPlay) DoCheckerPlayCommit(c CheckerPlayCommitted) (SGState, error) {
	if !s.belongs(c) {
		return nil, ErrForeignPlay
	}

	ply := Ply{
		IsRed:      s.IsRed,
		Roll:       s.Root.Roll(),
		Moves:      c.Node.LastMoves(),
		PositionID: s.Root.Board().PositionID(),
	}
	after := c.Node.Board()
	eog := after.EOGStatus()
	if eog.IsEndOfGame {
		result := ResultFor(s.IsRed)
		return SGEoG{
			IsRed:     s.IsRed,
			Board:     after,
			LastPly:   ply,
			Result:    result,
			EOGStatus: eog,
			Stake:     ScoreFor(result, eog.CalcStake(1, false)),
		}, nil
	}
	return SGToRoll{IsRed: !s.IsRed, Board: after.Revert(), LastPly: ply}, nil
}

// DoRoll starts the checker play for roll, in the given dice order.
func (s SGToRoll) DoRoll(roll board.DiceRoll) (SGInPlay, error) {
	if err := roll.Validate(); err != nil {
		return SGInPlay{}, err
	}
	return SGInPlay{IsRed: s.IsRed, Root: board.NewRootNode(s.Board, roll)}, nil
}
