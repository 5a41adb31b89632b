package positionid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startingBoard() Board {
	var b Board
	for side := 0; side < 2; side++ {
		b[side][5] = 5
		b[side][7] = 3
		b[side][12] = 5
		b[side][23] = 2
	}
	return b
}

// Known position ID for the starting position from gnubg.
const startingID = "4HPwATDgc/ABMA"

func TestIDStartingPosition(t *testing.T) {
	assert.Equal(t, startingID, ID(startingBoard()))
}

func TestParseStartingPosition(t *testing.T) {
	b, err := Parse(startingID + ":cIkqAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, startingBoard(), b)
}

func TestRoundTrip(t *testing.T) {
	var b Board
	b[1][24] = 1 // on the bar
	b[1][0] = 4
	b[1][3] = 10
	b[0][5] = 2
	b[0][22] = 13

	got, err := Parse(ID(b))
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "4HPwATDgc"},
		{"bad character", "4HPwATDgc/AB!A"},
		{"too many checkers", "//////////////"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.id)
			assert.ErrorIs(t, err, ErrInvalidPositionID)
		})
	}
}

func TestCheck(t *testing.T) {
	assert.True(t, Check(startingBoard()))

	shared := startingBoard()
	shared[0][0] = 1
	shared[1][23] = 1
	assert.False(t, Check(shared))
}
