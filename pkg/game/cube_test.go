package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/bgmatch/pkg/board"
)

func TestNewCubeState(t *testing.T) {
	c := NewCubeState(0)
	assert.Equal(t, CubeState{Value: 1, Owner: CubeCenter, Max: DefaultMaxCube}, c)
	assert.True(t, c.IsCentered())
	assert.Equal(t, 64, NewCubeState(64).Max)
}

func TestMayDoubleFor(t *testing.T) {
	tests := []struct {
		name  string
		cube  CubeState
		owner CubeOwner
		want  bool
	}{
		{"centered red", NewCubeState(8), CubeRed, true},
		{"centered white", NewCubeState(8), CubeWhite, true},
		{"owned by red, red asks", CubeState{Value: 2, Owner: CubeRed, Max: 8}, CubeRed, true},
		{"owned by red, white asks", CubeState{Value: 2, Owner: CubeRed, Max: 8}, CubeWhite, false},
		{"at cap", CubeState{Value: 8, Owner: CubeWhite, Max: 8}, CubeWhite, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cube.MayDoubleFor(tt.owner))
		})
	}
}

func TestCubeDouble(t *testing.T) {
	c := NewCubeState(0).Double(CubeRed)
	assert.Equal(t, 2, c.Value)
	assert.Equal(t, CubeRed, c.Owner)
	assert.Equal(t, DefaultMaxCube, c.Max)
}

func TestCubeCap(t *testing.T) {
	c := NewCubeState(4)
	owner := CubeWhite
	for c.MayDoubleFor(owner) {
		// The taker owns the cube, so the next double comes from the other side.
		if owner == CubeWhite {
			owner = CubeRed
		} else {
			owner = CubeWhite
		}
		c = c.Double(owner)
	}
	assert.Equal(t, 4, c.Value)
	assert.True(t, c.IsMax())
	assert.False(t, c.MayDoubleFor(CubeRed))
	assert.False(t, c.MayDoubleFor(CubeWhite))
}

func TestCalcStake(t *testing.T) {
	single := board.EOGStatus{IsEndOfGame: true}
	gammon := board.EOGStatus{IsEndOfGame: true, IsGammon: true}
	backgammon := board.EOGStatus{IsEndOfGame: true, IsGammon: true, IsBackgammon: true}

	tests := []struct {
		name   string
		cube   int
		eog    board.EOGStatus
		jacoby bool
		want   StakeResult
	}{
		{"single on 1", 1, single, false, StakeResult{Stake: 1}},
		{"gammon on 2", 2, gammon, false, StakeResult{Stake: 4}},
		{"backgammon on 1", 1, backgammon, false, StakeResult{Stake: 3}},
		{"jacoby gammon on 1", 1, gammon, true, StakeResult{Stake: 1, JacobyApplied: true}},
		{"jacoby backgammon on 1", 1, backgammon, true, StakeResult{Stake: 1, JacobyApplied: true}},
		{"jacoby ignored once doubled", 2, gammon, true, StakeResult{Stake: 4}},
		{"jacoby single is not applied", 1, single, true, StakeResult{Stake: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcStake(tt.cube, tt.eog, tt.jacoby))
		})
	}
}

func TestScore(t *testing.T) {
	s := ScoreAsRed(2).Add(ScoreAsWhite(3)).Add(ScoreFor(RedWon, 1))
	assert.Equal(t, Score{Red: 3, White: 3}, s)
	assert.Equal(t, 3, s.Of(true))
	assert.Equal(t, Score{}, ScoreFor(NoResult, 4))
	assert.Equal(t, Score{White: 4}, StakeResult{Stake: 4}.ScoreFor(WhiteWon))
	assert.Equal(t, "WHITEWON", WhiteWon.String())
}
