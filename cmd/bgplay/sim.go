package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/bgmatch/internal/randutil"
	"github.com/yourusername/bgmatch/pkg/autoplay"
	"github.com/yourusername/bgmatch/pkg/dice"
	"github.com/yourusername/bgmatch/pkg/game"
	"github.com/yourusername/bgmatch/pkg/match"
	"github.com/yourusername/bgmatch/pkg/player"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

type SimCmd struct {
	Matches int   `help:"Matches to play (default from config)"`
	Workers int   `help:"Matches played at once (default from config)"`
	Length  int   `default:"-1" help:"Match length, 0 for money sessions (default from config)"`
	Seed    int64 `help:"Base seed (default from config)"`

	RedDoubleLead float64 `default:"0.10" help:"Red's pip lead needed to double"`
	RedPass       float64 `default:"0.20" help:"Red's pip deficit beyond which it passes"`
}

// simResult is the outcome of one simulated match, from Red's side.
type simResult struct {
	won    float64 // 1 if Red won the match
	points float64 // Red's net points
	games  float64
}

func (c *SimCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Matches > 0 {
		cfg.Autoplay.Matches = c.Matches
	}
	if c.Workers > 0 {
		cfg.Autoplay.Workers = c.Workers
	}
	if c.Length >= 0 {
		cfg.Match.Length = c.Length
	}
	if c.Seed != 0 {
		cfg.Autoplay.Seed = c.Seed
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

	runner := autoplay.New(rules(cfg), autoplay.WithLogger(logger.With("cmd", "sim")), autoplay.WithMET(table))

	results := make([]simResult, cfg.Autoplay.Matches)
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Autoplay.Workers)
	for i := range results {
		seed := randutil.Derive(cfg.Autoplay.Seed, i)
		eg.Go(func() error {
			red := player.NewPipCounter(randutil.Derive(seed, 2))
			red.DoubleLead = c.RedDoubleLead
			red.PassDeficit = c.RedPass
			players := autoplay.Players{
				White: player.NewPipCounter(randutil.Derive(seed, 1)),
				Red:   red,
			}

			rec := match.NewMatch("white", "red", cfg.Match.Length)
			state, err := runner.PlayMatch(ctx, rec, players, dice.NewRandom(randutil.Derive(seed, 0)), cfg.Match.Games)
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}

			res := simResult{
				points: float64(state.Score.Red - state.Score.White),
				games:  float64(state.Games),
			}
			if state.Winner() == game.RedWon || (rec.Length == 0 && state.Score.Red > state.Score.White) {
				res.won = 1
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	won := make([]float64, len(results))
	points := make([]float64, len(results))
	games := make([]float64, len(results))
	for i, r := range results {
		won[i], points[i], games[i] = r.won, r.points, r.games
	}
	winMean, winStd := stat.MeanStdDev(won, nil)
	ptsMean, ptsStd := stat.MeanStdDev(points, nil)

	logger.Info("Simulation complete", "matches", len(results), "elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Printf("matches:      %d (length %d)\n", len(results), cfg.Match.Length)
	fmt.Printf("red wins:     %.3f ± %.3f\n", winMean, winStd)
	fmt.Printf("red points:   %+.3f ± %.3f per match\n", ptsMean, ptsStd)
	fmt.Printf("games/match:  %.2f\n", stat.Mean(games, nil))
	return nil
}
