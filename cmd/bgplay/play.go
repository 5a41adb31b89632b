package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/bgmatch/internal/randutil"
	"github.com/yourusername/bgmatch/pkg/autoplay"
	"github.com/yourusername/bgmatch/pkg/dice"
	"github.com/yourusername/bgmatch/pkg/match"
	"github.com/yourusername/bgmatch/pkg/player"
)

type PlayCmd struct {
	Length int           `default:"-1" help:"Match length, 0 for a money session (default from config)"`
	Games  int           `help:"Games in a money session (default from config)"`
	Seed   int64         `help:"Seed for dice and players (default from config)"`
	Delay  time.Duration `help:"Pause before each decision (default from config)"`
	White  string        `default:"white" help:"White player name"`
	Red    string        `default:"red" help:"Red player name"`
	Out    string        `short:"o" type:"path" help:"Write the MAT record here instead of stdout"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Length >= 0 {
		cfg.Match.Length = c.Length
	}
	if c.Games > 0 {
		cfg.Match.Games = c.Games
	}
	if c.Seed != 0 {
		cfg.Autoplay.Seed = c.Seed
	}
	if c.Delay > 0 {
		cfg.Autoplay.Delay = c.Delay
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)
	table, err := loadMET(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := autoplay.New(rules(cfg),
		autoplay.WithLogger(logger),
		autoplay.WithDelay(cfg.Autoplay.Delay),
		autoplay.WithMET(table),
	)

	seed := cfg.Autoplay.Seed
	players := autoplay.Players{
		White: player.NewPipCounter(randutil.Derive(seed, 1)),
		Red:   player.NewPipCounter(randutil.Derive(seed, 2)),
	}
	rec := match.NewMatch(c.White, c.Red, cfg.Match.Length)
	rec.Date = time.Now().Format("2006-01-02")
	rec.Event = "bgplay"

	logger.Info("Starting match", "length", rec.Length, "seed", seed,
		"redEquity", fmt.Sprintf("%.3f", match.NewState(rec.Length).Equity(table, true)))

	state, err := runner.PlayMatch(ctx, rec, players, dice.NewRandom(randutil.Derive(seed, 0)), cfg.Match.Games)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", c.Out, err)
		}
		defer f.Close()
		w = f
	}
	if err := match.ExportMAT(w, rec); err != nil {
		return fmt.Errorf("writing MAT: %w", err)
	}

	logger.Info("Final score", "white", state.Score.White, "red", state.Score.Red, "games", state.Games)
	return nil
}
