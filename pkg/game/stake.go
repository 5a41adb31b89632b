package game

import "github.com/yourusername/bgmatch/pkg/board"

// StakeConf selects the optional scoring rules. It is applied when a stake is
// read, not when the game ends, so a finished game can be scored under either
// rule set.
type StakeConf struct {
	// JacobyRule: gammons and backgammons count single while the cube has
	// never been turned.
	JacobyRule bool
}

// StakeResult is the points won and whether the Jacoby rule reduced them.
type StakeResult struct {
	Stake         int
	JacobyApplied bool
}

// CalcStake computes the points for a finished game at cubeValue. A cube on
// 1 means nobody doubled this game.
func CalcStake(cubeValue int, eog board.EOGStatus, jacobyRule bool) StakeResult {
	jacoby := jacobyRule && cubeValue == 1 && eog.IsGammon
	return StakeResult{
		Stake:         eog.CalcStake(cubeValue, jacoby),
		JacobyApplied: jacoby,
	}
}

// ScoreFor orients the stake to the winner.
func (r StakeResult) ScoreFor(result Result) Score {
	return ScoreFor(result, r.Stake)
}
