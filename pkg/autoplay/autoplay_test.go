package autoplay

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/dice"
	"github.com/yourusername/bgmatch/pkg/game"
	"github.com/yourusername/bgmatch/pkg/match"
	"github.com/yourusername/bgmatch/pkg/player"
)

// fixedEngine plays the first legal play and answers the cube the same way
// every time.
type fixedEngine struct {
	double bool
	take   bool
}

func (fixedEngine) CheckerPlay(root *board.Node) *board.Node { return root.Leaves()[0] }

func (e fixedEngine) CubeAction(board.BoardState, game.CubeState) bool { return e.double }

func (e fixedEngine) CubeResponse(board.BoardState, game.CubeState) bool { return e.take }

func testRunner(rules Rules, opts ...Option) *Runner {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return New(rules, append([]Option{WithLogger(logger)}, opts...)...)
}

func pipCounters() Players {
	return Players{White: player.NewPipCounter(1), Red: player.NewPipCounter(2)}
}

func countActions(g *match.Game, typ match.ActionType) int {
	n := 0
	for _, a := range g.Actions {
		if a.Type == typ {
			n++
		}
	}
	return n
}

func TestPlayGameDoublePass(t *testing.T) {
	r := testRunner(Rules{})
	players := Players{
		White: fixedEngine{double: true, take: false},
		Red:   fixedEngine{double: true, take: false},
	}
	rec := match.NewMatch("white", "red", 0).NewGame(match.NewState(0))

	eog, err := r.PlayGame(context.Background(), match.NewState(0), players, dice.NewScripted(board.DiceRoll{Dice1: 3, Dice2: 1}), rec)
	require.NoError(t, err)

	assert.True(t, eog.IsWonByPass)
	assert.Equal(t, game.RedWon, eog.Result, "red doubles after white's opening play, white passes")
	require.Len(t, rec.Actions, 4)
	assert.Equal(t, match.Action{Type: match.ActionDouble, IsRed: true, Value: 2}, rec.Actions[2])
	assert.Equal(t, match.ActionPass, rec.Actions[3].Type)
	assert.False(t, rec.Actions[3].IsRed)
}

func TestPlayGameMaxCube(t *testing.T) {
	r := testRunner(Rules{MaxCube: 4})
	players := Players{
		White: fixedEngine{double: true, take: true},
		Red:   fixedEngine{double: true, take: true},
	}
	rec := match.NewMatch("white", "red", 0).NewGame(match.NewState(0))

	eog, err := r.PlayGame(context.Background(), match.NewState(0), players, dice.NewRandom(7), rec)
	require.NoError(t, err)

	assert.False(t, eog.IsWonByPass)
	assert.Equal(t, 4, eog.CubeState.Value)
	assert.Equal(t, 2, countActions(rec, match.ActionDouble), "no double past the cube limit")
}

func TestPlayGameCrawford(t *testing.T) {
	r := testRunner(Rules{Crawford: true})
	players := Players{
		White: fixedEngine{double: true, take: true},
		Red:   fixedEngine{double: true, take: true},
	}
	state := match.State{Length: 3, Score: game.Score{Red: 2}}
	require.True(t, state.IsCrawford())
	rec := match.NewMatch("white", "red", 3).NewGame(state)

	eog, err := r.PlayGame(context.Background(), state, players, dice.NewRandom(3), rec)
	require.NoError(t, err)

	assert.Equal(t, 1, eog.CubeState.Value)
	assert.Zero(t, countActions(rec, match.ActionDouble))
}

func TestPlayGameDiceExhausted(t *testing.T) {
	r := testRunner(Rules{})
	players := Players{White: fixedEngine{}, Red: fixedEngine{}}

	_, err := r.PlayGame(context.Background(), match.NewState(0), players, dice.NewScripted(board.DiceRoll{Dice1: 3, Dice2: 1}), nil)
	assert.ErrorIs(t, err, dice.ErrExhausted)
}

func TestPlayGameCanceled(t *testing.T) {
	r := testRunner(Rules{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.PlayGame(ctx, match.NewState(0), pipCounters(), dice.NewRandom(1), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayGameDelay(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	start := mClock.Now()
	r := testRunner(Rules{}, WithClock(mClock), WithDelay(time.Second))
	players := Players{
		White: fixedEngine{double: true, take: false},
		Red:   fixedEngine{double: true, take: false},
	}

	done := make(chan error, 1)
	go func() {
		_, err := r.PlayGame(ctx, match.NewState(0), players, dice.NewScripted(board.DiceRoll{Dice1: 3, Dice2: 1}), nil)
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("game finished before the clock moved")
	case <-time.After(50 * time.Millisecond):
	}

	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			// White's play, Red's double and White's pass each wait once.
			assert.GreaterOrEqual(t, mClock.Now().Sub(start), 3*time.Second)
			return
		default:
		}
		mClock.Advance(time.Second).MustWait(ctx)
		time.Sleep(time.Millisecond)
	}
}

func TestPlayMatch(t *testing.T) {
	r := testRunner(Rules{Jacoby: true, Crawford: true})
	rec := match.NewMatch("white", "red", 5)

	state, err := r.PlayMatch(context.Background(), rec, pipCounters(), dice.NewRandom(42), 0)
	require.NoError(t, err)

	assert.True(t, state.IsOver())
	assert.NotEqual(t, game.NoResult, state.Winner())
	require.Len(t, rec.Games, state.Games)

	var total game.Score
	for _, g := range rec.Games {
		assert.True(t, g.IsFinished(), "game %d", g.Number)
		assert.Equal(t, total, g.Score, "game %d starts at the running score", g.Number)
		total = total.Add(game.ScoreFor(g.Winner, g.Points))
	}
	assert.Equal(t, state.Score, total)
}

func TestPlayMatchMoney(t *testing.T) {
	r := testRunner(Rules{Jacoby: true})
	rec := match.NewMatch("white", "red", 0)

	state, err := r.PlayMatch(context.Background(), rec, pipCounters(), dice.NewRandom(9), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, state.Games)
	assert.Len(t, rec.Games, 4)
	assert.False(t, state.IsOver())
}

func TestPlayMatchDeterministic(t *testing.T) {
	export := func() string {
		rec := match.NewMatch("white", "red", 3)
		_, err := testRunner(Rules{Crawford: true}).PlayMatch(context.Background(), rec, pipCounters(), dice.NewRandom(5), 0)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, match.ExportMAT(&buf, rec))
		return buf.String()
	}
	assert.Equal(t, export(), export())
}

func TestRecordRoundTrip(t *testing.T) {
	r := testRunner(Rules{})
	rec := match.NewMatch("white", "red", 0)
	_, err := r.PlayMatch(context.Background(), rec, pipCounters(), dice.NewRandom(11), 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, match.ExportMAT(&buf, rec))
	imported, err := match.ImportMAT(&buf)
	require.NoError(t, err)
	require.Len(t, imported.Games, len(rec.Games))

	coord := game.NewCoordinator(nil, nil)
	for i, g := range imported.Games {
		cg, err := g.Replay(coord, game.NewCubeState(0))
		require.NoError(t, err, "game %d", g.Number)

		eog, ok := cg.Result()
		require.True(t, ok, "game %d replays to the end", g.Number)
		assert.Equal(t, rec.Games[i].Winner, eog.Result)
		assert.Equal(t, game.ScoreFor(rec.Games[i].Winner, rec.Games[i].Points), eog.Score(game.StakeConf{}))
	}
}
