package match

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/game"
)

// ErrIllegalRecord is returned for records that cannot be parsed or played.
var ErrIllegalRecord = errors.New("illegal record")

// Replay drives the recorded game through c from the opening and returns
// the resulting game. Rolls, moves and cube actions must form a legal game;
// the first recorded roll is taken as the opening roll.
func (g *Game) Replay(c *game.Coordinator, cube game.CubeState) (game.CubeGame, error) {
	cg := game.NewCubeGame(cube)
	opening := true

	for i, a := range g.Actions {
		var ev game.Event
		switch a.Type {
		case ActionRoll:
			if opening {
				ev = game.OpeningRoll{Roll: openingRoll(a.IsRed, a.Roll)}
				opening = false
			} else {
				ev = game.Roll{Roll: a.Roll}
			}
		case ActionMove:
			sg, ok := cg.SG.(game.SGInPlay)
			if !ok || sg.IsRed != a.IsRed {
				return cg, fmt.Errorf("%w: action %d: move out of turn", ErrIllegalRecord, i+1)
			}
			n, err := playMoves(sg.Root, a.Moves)
			if err != nil {
				return cg, fmt.Errorf("action %d: %w", i+1, err)
			}
			ev = game.CommitCheckerPlay{Play: game.CheckerPlayCommitted{IsRed: a.IsRed, Node: n}}
		case ActionDouble:
			ev = game.Double{}
		case ActionTake:
			ev = game.Take{}
		case ActionPass:
			ev = game.Pass{}
		default:
			return cg, fmt.Errorf("%w: action %d: unknown type %d", ErrIllegalRecord, i+1, a.Type)
		}

		next, err := c.Apply(cg, ev)
		if err != nil {
			return cg, fmt.Errorf("%w: action %d: %w", ErrIllegalRecord, i+1, err)
		}
		cg = next
		// A skipped cube action needs no record: the next roll starts play.
	}
	return cg, nil
}

// openingRoll rebuilds the White-first opening roll from the winner's roll.
func openingRoll(winnerIsRed bool, r board.DiceRoll) board.DiceRoll {
	hi, lo := max(r.Dice1, r.Dice2), min(r.Dice1, r.Dice2)
	if winnerIsRed {
		return board.DiceRoll{Dice1: lo, Dice2: hi}
	}
	return board.DiceRoll{Dice1: hi, Dice2: lo}
}

// playMoves follows recorded moves down the move tree and checks the result
// is a complete play. Records name only source and destination, so the die
// behind each move is searched for.
func playMoves(root *board.Node, moves []board.Move) (*board.Node, error) {
	var partial *board.Node
	var follow func(n *board.Node, rest []board.Move) *board.Node
	follow = func(n *board.Node, rest []board.Move) *board.Node {
		if len(rest) == 0 {
			if n.IsCommitReady() {
				return n
			}
			partial = n
			return nil
		}
		for _, c := range reach(n, rest[0].From, rest[0].To) {
			if r := follow(c, rest[1:]); r != nil {
				return r
			}
		}
		return nil
	}

	if n := follow(root, moves); n != nil {
		return n, nil
	}
	if partial != nil {
		return nil, fmt.Errorf("%w: play %s does not use the dice fully", ErrIllegalRecord, FormatMoves(moves))
	}
	return nil, fmt.Errorf("%w: %s not playable with %s", ErrIllegalRecord, FormatMoves(moves), root.Roll())
}

// reach returns every node where one checker has moved from `from` to `to`,
// one die at a time.
func reach(n *board.Node, from, to int) []*board.Node {
	if from == to {
		return []*board.Node{n}
	}
	pips := n.Dice().Unused()
	slices.Sort(pips)
	pips = slices.Compact(pips)

	var out []*board.Node
	for _, pip := range pips {
		dest := from + pip
		if dest > to && to != board.BearOffPos {
			continue
		}
		c := n.ChildNodeByPip(from, pip)
		if c == nil {
			continue
		}
		if dest >= to {
			out = append(out, c)
			continue
		}
		out = append(out, reach(c, dest, to)...)
	}
	return out
}
