package game

import "github.com/yourusername/bgmatch/pkg/board"

// Ply is one committed checker play.
type Ply struct {
	IsRed bool
	Roll  board.DiceRoll
	// Moves are in the mover's coordinates.
	Moves []board.Move
	// PositionID is the position before the play, mover on roll.
	PositionID string
}
