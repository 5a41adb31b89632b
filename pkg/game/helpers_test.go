package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bgmatch/pkg/board"
)

func boardOf(points map[int]int) board.BoardState {
	var p [26]int
	for pos, n := range points {
		p[pos] = n
	}
	return board.NewBoardState(p)
}

func testCoordinator(skip SkipPredicate) *Coordinator {
	return NewCoordinator(skip, log.New(io.Discard))
}

// firstLeaf commits the first complete play of the current turn.
func firstLeaf(t *testing.T, g CubeGame) CommitCheckerPlay {
	t.Helper()
	sg, ok := g.SG.(SGInPlay)
	require.True(t, ok, "expected SGInPlay, got %s", g.SG.Tag())
	leaves := sg.Root.Leaves()
	require.NotEmpty(t, leaves)
	return CommitCheckerPlay{Play: CheckerPlayCommitted{IsRed: sg.IsRed, Node: leaves[0]}}
}
