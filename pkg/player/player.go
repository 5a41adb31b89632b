// Package player defines the decisions an automated player makes and a
// simple pip-count player.
package player

import (
	rand "math/rand/v2"

	"github.com/yourusername/bgmatch/internal/randutil"
	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/game"
)

// Engine makes every decision for one side. Boards are in that side's view.
type Engine interface {
	// CheckerPlay returns a complete play reachable from root.
	CheckerPlay(root *board.Node) *board.Node
	// CubeAction reports whether to double before rolling.
	CubeAction(b board.BoardState, cube game.CubeState) bool
	// CubeResponse reports whether to take a double.
	CubeResponse(b board.BoardState, cube game.CubeState) bool
}

// Default pip-count thresholds.
const (
	DefaultDoubleLead  = 0.10
	DefaultPassDeficit = 0.20
)

// PipCounter plays a random legal move and handles the cube by race
// count alone.
type PipCounter struct {
	// DoubleLead is the pip lead, relative to the doubler's count, needed
	// to double.
	DoubleLead float64
	// PassDeficit is the pip deficit, relative to the opponent's count,
	// beyond which a double is passed.
	PassDeficit float64

	rng *rand.Rand
}

// NewPipCounter returns a PipCounter with default thresholds whose move
// choices are fixed by seed. It is not safe for concurrent use.
func NewPipCounter(seed int64) *PipCounter {
	return &PipCounter{
		DoubleLead:  DefaultDoubleLead,
		PassDeficit: DefaultPassDeficit,
		rng:         randutil.New(seed),
	}
}

// CheckerPlay picks uniformly among the distinct resulting positions.
func (p *PipCounter) CheckerPlay(root *board.Node) *board.Node {
	leaves := root.Leaves()
	if len(leaves) == 0 {
		return root
	}
	return leaves[p.rng.IntN(len(leaves))]
}

// lead returns how far ahead the mover is in the race, relative to base.
func lead(b board.BoardState, base int) float64 {
	if base == 0 {
		return 0
	}
	return float64(b.OpponentPipCount()-b.MyPipCount()) / float64(base)
}

func (p *PipCounter) CubeAction(b board.BoardState, cube game.CubeState) bool {
	return lead(b, b.MyPipCount()) >= p.DoubleLead
}

func (p *PipCounter) CubeResponse(b board.BoardState, cube game.CubeState) bool {
	return -lead(b, b.OpponentPipCount()) <= p.PassDeficit
}
