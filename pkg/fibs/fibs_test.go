package fibs

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/game"
	"github.com/yourusername/bgmatch/pkg/match"
)

// redToRoll is the game after White opens with 31 and plays its first
// legal play: Red may double.
func redToRoll(t *testing.T) (*game.Coordinator, game.CubeGame) {
	t.Helper()
	c := game.NewCoordinator(nil, log.New(io.Discard))
	g, err := c.Apply(game.NewCubeGame(game.NewCubeState(0)), game.OpeningRoll{Roll: board.DiceRoll{Dice1: 3, Dice2: 1}})
	require.NoError(t, err)
	sg := g.SG.(game.SGInPlay)
	g, err = c.Apply(g, game.CommitCheckerPlay{Play: game.CheckerPlayCommitted{IsRed: false, Node: sg.Root.Leaves()[0]}})
	require.NoError(t, err)
	require.Equal(t, game.CBTagAction, g.CB.Tag())
	return c, g
}

func roundTrip(t *testing.T, g game.CubeGame, ms match.State) (*Board, game.CubeGame) {
	t.Helper()
	fb, err := FromCubeGame(g, ms, "alice", "bob")
	require.NoError(t, err)

	line := fb.String()
	assert.True(t, strings.HasPrefix(line, "board:"))
	assert.Len(t, strings.Split(strings.TrimPrefix(line, "board:"), ":"), numFields)

	parsed, err := ParseBoard(line)
	require.NoError(t, err)
	assert.Equal(t, fb, parsed)

	restored, err := parsed.CubeGame(0)
	require.NoError(t, err)
	return parsed, restored
}

func TestRoundTripCubeAction(t *testing.T) {
	_, g := redToRoll(t)
	ms := match.State{Length: 5, Score: game.Score{Red: 1, White: 3}}

	fb, restored := roundTrip(t, g, ms)
	assert.Equal(t, "bob", fb.Player1, "the side to play writes the line")
	assert.Equal(t, ColorRed, fb.Color)
	assert.Equal(t, 1, fb.Score1)
	assert.Equal(t, 3, fb.Score2)
	assert.Equal(t, ms.Score, fb.State().Score)

	want := g.SG.(game.SGToRoll)
	got, ok := restored.SG.(game.SGToRoll)
	require.True(t, ok)
	assert.True(t, got.IsRed)
	assert.Equal(t, want.Board, got.Board)
	assert.Equal(t, g.CB, restored.CB)
}

func TestRoundTripInPlay(t *testing.T) {
	c, g := redToRoll(t)
	g, err := c.Apply(g, game.Roll{Roll: board.DiceRoll{Dice1: 5, Dice2: 2}})
	require.NoError(t, err)

	fb, restored := roundTrip(t, g, match.NewState(0))
	assert.Equal(t, [2]int{5, 2}, fb.Dice)

	got, ok := restored.SG.(game.SGInPlay)
	require.True(t, ok)
	assert.Equal(t, g.SG.(game.SGInPlay).Board(), got.Board())
	assert.Equal(t, board.DiceRoll{Dice1: 5, Dice2: 2}, got.Root.Roll())
	assert.Equal(t, g.CB, restored.CB)
}

func TestRoundTripResponse(t *testing.T) {
	c, g := redToRoll(t)
	g, err := c.Apply(g, game.Double{})
	require.NoError(t, err)

	fb, restored := roundTrip(t, g, match.NewState(7))
	assert.True(t, fb.Doubled)
	assert.Equal(t, g.CB, restored.CB)

	// White answers the restored double.
	_, err = c.Apply(restored, game.Take{})
	assert.NoError(t, err)
}

func TestRoundTripOwnedCube(t *testing.T) {
	c, g := redToRoll(t)
	g, err := c.Apply(g, game.Double{})
	require.NoError(t, err)
	g, err = c.Apply(g, game.Take{})
	require.NoError(t, err)

	fb, restored := roundTrip(t, g, match.NewState(0))
	assert.Equal(t, 2, fb.Cube)
	assert.False(t, fb.CanDouble, "red doubled, white owns the cube")
	assert.True(t, fb.OppCanDouble)
	assert.Equal(t, game.CBTagToRoll, restored.CB.Tag())
	assert.Equal(t, g.CB.Cube(), restored.CB.Cube())
}

func TestCrawfordSkipsCube(t *testing.T) {
	_, g := redToRoll(t)
	ms := match.State{Length: 5, Score: game.Score{White: 4}}
	require.True(t, ms.IsCrawford())

	fb, restored := roundTrip(t, g, ms)
	assert.True(t, fb.Crawford)
	assert.Equal(t, game.CBTagToRoll, restored.CB.Tag())
	assert.False(t, fb.State().CrawfordPlayed)

	fb.Crawford = false
	assert.True(t, fb.State().CrawfordPlayed, "1-away outside the Crawford game is post-Crawford")
}

func TestFromCubeGameNotResumable(t *testing.T) {
	_, err := FromCubeGame(game.NewCubeGame(game.NewCubeState(0)), match.NewState(0), "a", "b")
	assert.ErrorIs(t, err, ErrNotResumable)
}

func TestParseBoardMinimal(t *testing.T) {
	parts := make([]string, 32)
	parts[0] = "P1"
	parts[1] = "P2"
	parts[2] = "7"
	parts[3] = "0"
	parts[4] = "0"
	for i := 5; i < 31; i++ {
		parts[i] = "0"
	}
	parts[31] = "1"

	fb, err := ParseBoard("board:" + strings.Join(parts, ":"))
	require.NoError(t, err)
	assert.Equal(t, "P1", fb.Player1)
	assert.Equal(t, 7, fb.MatchLength)
	assert.Equal(t, 1, fb.Cube, "missing cube defaults to 1")
	assert.Equal(t, ColorWhite, fb.Color)
}

func TestParseBoardInvalid(t *testing.T) {
	_, err := ParseBoard("invalid:board")
	assert.ErrorIs(t, err, ErrInvalidBoard)

	_, g := redToRoll(t)
	fb, err := FromCubeGame(g, match.NewState(0), "a", "b")
	require.NoError(t, err)

	parts := strings.Split(fb.String(), ":")
	parts[6] = "x"
	_, err = ParseBoard(strings.Join(parts, ":"))
	assert.ErrorIs(t, err, ErrInvalidBoard)

	bad := *fb
	bad.Board[10] = 9
	_, err = bad.CubeGame(0)
	assert.ErrorIs(t, err, ErrInvalidBoard, "too many checkers")

	bad = *fb
	bad.Cube = 3
	_, err = bad.CubeGame(0)
	assert.ErrorIs(t, err, ErrInvalidBoard)

	bad = *fb
	bad.Dice = [2]int{7, 1}
	_, err = bad.CubeGame(0)
	assert.ErrorIs(t, err, ErrInvalidBoard)
}

func TestSaveLineFromSideToPlay(t *testing.T) {
	_, g := redToRoll(t)
	fb, err := FromCubeGame(g, match.NewState(0), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, ColorRed, fb.Color)
	assert.Equal(t, 1, fb.Direction, "slots always run in the direction of the side to play")
	assert.Equal(t, "bob", fb.Player1)
	assert.Equal(t, "alice", fb.Player2)
	assert.Equal(t, 2, fb.Board[1], "red's 24-point")
	assert.Equal(t, 5, fb.Board[12], "red's mid-point")
	assert.Equal(t, 3, fb.Board[17], "red's 8-point")
	assert.Equal(t, 5, fb.Board[19], "red's 6-point")
	assert.Zero(t, fb.Board[board.BarPos])

	bad := *fb
	bad.Direction = -1
	_, err = bad.CubeGame(0)
	assert.ErrorIs(t, err, ErrInvalidBoard, "FIBS direction is not accepted")
}
