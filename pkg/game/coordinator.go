package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/yourusername/bgmatch/pkg/board"
)

// CubeGame is one game in progress: the single-game machine and the
// cube-game machine side by side.
type CubeGame struct {
	SG SGState
	CB CBState
}

// NewCubeGame starts a game from the standard position with cube.
func NewCubeGame(cube CubeState) CubeGame {
	return CubeGame{SG: NewSGOpening(), CB: CBOpening{CubeState: cube}}
}

// IsEndOfGame reports whether the game is decided, by bearing off or by a
// pass.
func (g CubeGame) IsEndOfGame() bool {
	return g.CB.Tag() == CBTagEoG
}

// Result returns the finished cube game. ok is false while play continues.
func (g CubeGame) Result() (eog CBEoG, ok bool) {
	eog, ok = g.CB.(CBEoG)
	return eog, ok
}

// Event is an input to Coordinator.Apply.
type Event interface {
	EventType() string
}

// OpeningRoll is the roll deciding who moves first. Dice1 is White's die.
type OpeningRoll struct{ Roll board.DiceRoll }

// Roll is a regular roll for the player on roll.
type Roll struct{ Roll board.DiceRoll }

// CommitCheckerPlay ends the mover's turn.
type CommitCheckerPlay struct{ Play CheckerPlayCommitted }

// Double offers the cube.
type Double struct{}

// Take accepts the cube.
type Take struct{}

// Pass refuses the cube and concedes.
type Pass struct{}

// SkipCubeAction declines to double.
type SkipCubeAction struct{}

func (OpeningRoll) EventType() string       { return "opening_roll" }
func (Roll) EventType() string              { return "roll" }
func (CommitCheckerPlay) EventType() string { return "commit" }
func (Double) EventType() string            { return "double" }
func (Take) EventType() string              { return "take" }
func (Pass) EventType() string              { return "pass" }
func (SkipCubeAction) EventType() string    { return "skip" }

// Coordinator advances a CubeGame. It holds no game state and may be shared.
type Coordinator struct {
	skip   SkipPredicate
	logger *log.Logger
}

// NewCoordinator returns a coordinator using skip to veto cube actions. A nil
// logger discards output.
func NewCoordinator(skip SkipPredicate, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{skip: skip, logger: logger.WithPrefix("coordinator")}
}

// Apply feeds ev to g. Both machines move together: a checker play commit
// also opens the opponent's cube action, a roll also starts the cube game's
// checker play. Events the current states cannot accept return a
// *MismatchError and leave g unchanged, as do a nil event and a zero g.
func (c *Coordinator) Apply(g CubeGame, ev Event) (CubeGame, error) {
	if ev == nil || g.SG == nil || g.CB == nil {
		err := c.mismatch(g, ev)
		c.logger.Error("Rejected event", "error", err)
		return g, err
	}
	next, err := c.apply(g, ev)
	if err != nil {
		c.logger.Error("Rejected event", "event", ev.EventType(), "sg", g.SG.Tag(), "cb", g.CB.Tag(), "error", err)
		return g, err
	}
	c.logger.Debug("Applied event", "event", ev.EventType(), "sg", next.SG.Tag(), "cb", next.CB.Tag())
	return next, nil
}

func (c *Coordinator) mismatch(g CubeGame, ev Event) error {
	name := "none"
	if ev != nil {
		name = ev.EventType()
	}
	return &MismatchError{Event: name, SG: sgTag(g.SG), CB: cbTag(g.CB)}
}

func (c *Coordinator) apply(g CubeGame, ev Event) (CubeGame, error) {
	switch e := ev.(type) {
	case OpeningRoll:
		sg, ok1 := g.SG.(SGOpening)
		cb, ok2 := g.CB.(CBOpening)
		if !ok1 || !ok2 {
			return g, c.mismatch(g, ev)
		}
		next, err := sg.DoOpening(e.Roll)
		if err != nil {
			return g, err
		}
		if inPlay, ok := next.(SGInPlay); ok {
			return CubeGame{SG: inPlay, CB: cb.DoStartCheckerPlay(inPlay.IsRed)}, nil
		}
		return CubeGame{SG: next, CB: cb}, nil

	case Roll:
		sg, ok := g.SG.(SGToRoll)
		if !ok {
			return g, c.mismatch(g, ev)
		}
		var cb CBInPlay
		switch s := g.CB.(type) {
		case CBToRoll:
			if s.IsRed != sg.IsRed {
				return g, c.mismatch(g, ev)
			}
			cb = s.DoStartCheckerPlay()
		case CBAction:
			if s.IsRed != sg.IsRed {
				return g, c.mismatch(g, ev)
			}
			cb = s.DoStartCheckerPlay()
		default:
			return g, c.mismatch(g, ev)
		}
		inPlay, err := sg.DoRoll(e.Roll)
		if err != nil {
			return g, err
		}
		return CubeGame{SG: inPlay, CB: cb}, nil

	case CommitCheckerPlay:
		sg, ok1 := g.SG.(SGInPlay)
		cb, ok2 := g.CB.(CBInPlay)
		if !ok1 || !ok2 || sg.IsRed != cb.IsRed {
			return g, c.mismatch(g, ev)
		}
		next, err := sg.DoCheckerPlayCommit(e.Play)
		if err != nil {
			return g, err
		}
		switch s := next.(type) {
		case SGEoG:
			return CubeGame{SG: s, CB: cb.DoEndOfCubeGame(s.Result, s.EOGStatus)}, nil
		default:
			return CubeGame{SG: next, CB: cb.DoStartCubeAction(c.skip)}, nil
		}

	case Double:
		sg, ok1 := g.SG.(SGToRoll)
		cb, ok2 := g.CB.(CBAction)
		if !ok1 || !ok2 || sg.IsRed != cb.IsRed {
			return g, c.mismatch(g, ev)
		}
		return CubeGame{SG: sg, CB: cb.DoDouble()}, nil

	case Take:
		cb, ok := g.CB.(CBResponse)
		if !ok {
			return g, c.mismatch(g, ev)
		}
		return CubeGame{SG: g.SG, CB: cb.DoTake()}, nil

	case Pass:
		cb, ok := g.CB.(CBResponse)
		if !ok {
			return g, c.mismatch(g, ev)
		}
		return CubeGame{SG: g.SG, CB: cb.DoPass()}, nil

	case SkipCubeAction:
		cb, ok := g.CB.(CBAction)
		if !ok {
			return g, c.mismatch(g, ev)
		}
		return CubeGame{SG: g.SG, CB: cb.DoSkipCubeAction()}, nil
	}
	return g, c.mismatch(g, ev)
}
