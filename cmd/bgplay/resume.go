package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/bgmatch/internal/randutil"
	"github.com/yourusername/bgmatch/pkg/autoplay"
	"github.com/yourusername/bgmatch/pkg/dice"
	"github.com/yourusername/bgmatch/pkg/fibs"
	"github.com/yourusername/bgmatch/pkg/player"
)

type ResumeCmd struct {
	Board string `arg:"" help:"FIBS board line of the game to finish"`
	Seed  int64  `help:"Seed for dice and players (default from config)"`
}

func (c *ResumeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Autoplay.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	fb, err := fibs.ParseBoard(c.Board)
	if err != nil {
		return err
	}
	cg, err := fb.CubeGame(cfg.Rules.MaxCube)
	if err != nil {
		return err
	}
	state := fb.State()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Autoplay.Seed
	runner := autoplay.New(rules(cfg), autoplay.WithLogger(logger), autoplay.WithDelay(cfg.Autoplay.Delay))
	players := autoplay.Players{
		White: player.NewPipCounter(randutil.Derive(seed, 1)),
		Red:   player.NewPipCounter(randutil.Derive(seed, 2)),
	}

	logger.Info("Resuming game", "player", fb.Player1, "sg", cg.SG.Tag(), "cb", cg.CB.Tag(), "cube", fb.Cube)
	eog, err := runner.Resume(ctx, state, cg, players, dice.NewRandom(randutil.Derive(seed, 0)), nil)
	if err != nil {
		return err
	}

	winner := fb.Player2
	if eog.Result.IsRedWon() == fb.IsRed() {
		winner = fb.Player1
	}
	points := eog.Score(state.StakeConf(cfg.Rules.Jacoby))
	fmt.Printf("%s wins %d point(s)\n", winner, points.Of(eog.Result.IsRedWon()))
	return nil
}
