// Package autoplay drives games and matches between automated players.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/yourusername/bgmatch/internal/met"
	"github.com/yourusername/bgmatch/pkg/dice"
	"github.com/yourusername/bgmatch/pkg/game"
	"github.com/yourusername/bgmatch/pkg/match"
	"github.com/yourusername/bgmatch/pkg/player"
)

// maxEvents bounds a single game. Real games end far sooner.
const maxEvents = 10000

// ErrGameTooLong is returned when a game does not end within maxEvents.
var ErrGameTooLong = errors.New("game did not finish")

// Rules are the optional rules a runner plays by.
type Rules struct {
	Jacoby   bool
	Crawford bool
	MaxCube  int
}

// Players assigns an engine to each side.
type Players struct {
	White player.Engine
	Red   player.Engine
}

func (p Players) of(isRed bool) player.Engine {
	if isRed {
		return p.Red
	}
	return p.White
}

// Runner plays games by feeding engine decisions and dice through a
// coordinator.
type Runner struct {
	rules  Rules
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger
	met    *met.Table
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used for the decision delay.
func WithClock(c quartz.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithDelay pauses before every automated decision.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) { r.delay = d }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMET sets the match equity table used for progress logs.
func WithMET(t *met.Table) Option {
	return func(r *Runner) { r.met = t }
}

// New returns a Runner.
func New(rules Rules, opts ...Option) *Runner {
	r := &Runner{
		rules:  rules,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		met:    met.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("autoplay")
	return r
}

func (r *Runner) wait(ctx context.Context) error {
	if r.delay <= 0 {
		return ctx.Err()
	}
	t := r.clock.NewTimer(r.delay, "autoplay", "delay")
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// PlayGame plays one game at match state ms and records it into rec, which
// may be nil. It returns the finished cube game.
func (r *Runner) PlayGame(ctx context.Context, ms match.State, players Players, src dice.Source, rec *match.Game) (game.CBEoG, error) {
	return r.Resume(ctx, ms, game.NewCubeGame(game.NewCubeState(r.rules.MaxCube)), players, src, rec)
}

// Resume plays g, a game at match state ms, to the end.
func (r *Runner) Resume(ctx context.Context, ms match.State, g game.CubeGame, players Players, src dice.Source, rec *match.Game) (game.CBEoG, error) {
	coord := game.NewCoordinator(ms.SkipPredicate(r.rules.Crawford), r.logger)

	for range maxEvents {
		if eog, ok := g.Result(); ok {
			return eog, nil
		}
		ev, err := r.decide(ctx, g, players, src)
		if err != nil {
			return game.CBEoG{}, err
		}
		next, err := coord.Apply(g, ev)
		if err != nil {
			return game.CBEoG{}, err
		}
		record(rec, g, next, ev)
		g = next
	}
	return game.CBEoG{}, ErrGameTooLong
}

// decide produces the next event for g.
func (r *Runner) decide(ctx context.Context, g game.CubeGame, players Players, src dice.Source) (game.Event, error) {
	roll := func() (game.Roll, error) {
		d, err := src.Roll()
		if err != nil {
			return game.Roll{}, fmt.Errorf("rolling dice: %w", err)
		}
		return game.Roll{Roll: d}, nil
	}

	switch sg := g.SG.(type) {
	case game.SGOpening:
		d, err := src.Roll()
		if err != nil {
			return nil, fmt.Errorf("rolling dice: %w", err)
		}
		return game.OpeningRoll{Roll: d}, nil

	case game.SGInPlay:
		if err := r.wait(ctx); err != nil {
			return nil, err
		}
		n := players.of(sg.IsRed).CheckerPlay(sg.Root)
		return game.CommitCheckerPlay{Play: game.CheckerPlayCommitted{IsRed: sg.IsRed, Node: n}}, nil

	case game.SGToRoll:
		switch cb := g.CB.(type) {
		case game.CBAction:
			if err := r.wait(ctx); err != nil {
				return nil, err
			}
			if players.of(cb.IsRed).CubeAction(sg.Board, cb.CubeState) {
				return game.Double{}, nil
			}
			return roll()
		case game.CBResponse:
			if err := r.wait(ctx); err != nil {
				return nil, err
			}
			// sg.Board is the doubler's view.
			if players.of(cb.IsRed).CubeResponse(sg.Board.Revert(), cb.CubeState) {
				return game.Take{}, nil
			}
			return game.Pass{}, nil
		default:
			return roll()
		}
	}
	return nil, fmt.Errorf("no decision for sg=%s cb=%s", g.SG.Tag(), g.CB.Tag())
}

// record appends the effect of ev, applied to prev giving next, to rec.
func record(rec *match.Game, prev, next game.CubeGame, ev game.Event) {
	if rec == nil {
		return
	}
	switch e := ev.(type) {
	case game.OpeningRoll:
		if sg, ok := next.SG.(game.SGInPlay); ok {
			rec.AddRoll(sg.IsRed, sg.Root.Roll())
		}
	case game.Roll:
		if sg, ok := next.SG.(game.SGInPlay); ok {
			rec.AddRoll(sg.IsRed, e.Roll)
		}
	case game.CommitCheckerPlay:
		switch sg := next.SG.(type) {
		case game.SGToRoll:
			rec.AddPly(sg.LastPly)
		case game.SGEoG:
			rec.AddPly(sg.LastPly)
		}
	case game.Double:
		if cb, ok := prev.CB.(game.CBAction); ok {
			rec.AddDouble(cb.IsRed, cb.CubeState.Value*2)
		}
	case game.Take:
		if cb, ok := prev.CB.(game.CBResponse); ok {
			rec.AddTake(cb.IsRed)
		}
	case game.Pass:
		if cb, ok := prev.CB.(game.CBResponse); ok {
			rec.AddPass(cb.IsRed)
		}
	}
}

// PlayMatch plays rec.Length points, or games games of money play when the
// length is 0, recording every game into rec.
func (r *Runner) PlayMatch(ctx context.Context, rec *match.Match, players Players, src dice.Source, games int) (match.State, error) {
	state := match.NewState(rec.Length)
	for {
		if rec.Length > 0 && state.IsOver() {
			break
		}
		if rec.Length == 0 && state.Games >= games {
			break
		}

		g := rec.NewGame(state)
		logger := r.logger.With("game", g.Number)
		logger.Debug("Starting game", "score", state.Score, "crawford", g.Crawford)

		eog, err := r.PlayGame(ctx, state, players, src, g)
		if err != nil {
			return state, fmt.Errorf("game %d: %w", g.Number, err)
		}
		points := g.Finish(eog, state.StakeConf(r.rules.Jacoby))
		state = state.Advance(points)

		logger.Info("Game over",
			"winner", eog.Result,
			"points", g.Points,
			"result", g.Result,
			"score", state.Score,
			"redEquity", fmt.Sprintf("%.3f", state.Equity(r.met, true)))
	}

	r.logger.Info("Match over", "winner", state.Winner(), "score", state.Score, "games", state.Games)
	return state, nil
}
