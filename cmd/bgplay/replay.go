package main

import (
	"fmt"
	"os"

	"github.com/yourusername/bgmatch/pkg/game"
	"github.com/yourusername/bgmatch/pkg/match"
)

type ReplayCmd struct {
	File string `arg:"" type:"existingfile" help:"MAT file to replay"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := match.ImportMAT(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}

	state := match.NewState(m.Length)
	for _, rec := range m.Games {
		coord := game.NewCoordinator(state.SkipPredicate(cfg.Rules.Crawford), logger)
		cg, err := rec.Replay(coord, game.NewCubeState(cfg.Rules.MaxCube))
		if err != nil {
			return fmt.Errorf("game %d: %w", rec.Number, err)
		}

		eog, ok := cg.Result()
		if !ok {
			logger.Warn("Game unfinished", "game", rec.Number, "sg", cg.SG.Tag(), "cb", cg.CB.Tag())
			break
		}
		points := eog.Score(state.StakeConf(cfg.Rules.Jacoby))
		if rec.IsFinished() && points != game.ScoreFor(rec.Winner, rec.Points) {
			return fmt.Errorf("game %d: %w: recorded %s %d, replayed %s", rec.Number, match.ErrIllegalRecord, rec.Winner, rec.Points, points)
		}
		state = state.Advance(points)
		logger.Info("Replayed game", "game", rec.Number, "winner", eog.Result, "cube", eog.CubeState.Value, "score", state.Score)
	}

	fmt.Printf("%s %d - %s %d (%d games)\n", m.White, state.Score.White, m.Red, state.Score.Red, state.Games)
	return nil
}
