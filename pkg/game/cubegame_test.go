package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bgmatch/pkg/board"
)

func TestCBOpening(t *testing.T) {
	o := CBOpening{CubeState: NewCubeState(0)}
	assert.Equal(t, CBInPlay{CubeState: o.CubeState, IsRed: true}, o.DoStartCheckerPlayRed())
	assert.Equal(t, CBInPlay{CubeState: o.CubeState, IsRed: false}, o.DoStartCheckerPlayWhite())
}

func TestDoStartCubeAction(t *testing.T) {
	always := func(CBAction) bool { return true }

	tests := []struct {
		name    string
		state   CBInPlay
		skip    SkipPredicate
		wantTag CBTag
	}{
		{"centered cube", CBInPlay{CubeState: NewCubeState(0), IsRed: false}, nil, CBTagAction},
		{"opponent owns cube", CBInPlay{CubeState: CubeState{Value: 2, Owner: CubeRed, Max: 64}, IsRed: false}, nil, CBTagAction},
		{"mover owns cube", CBInPlay{CubeState: CubeState{Value: 2, Owner: CubeWhite, Max: 64}, IsRed: false}, nil, CBTagToRoll},
		{"cube at cap", CBInPlay{CubeState: CubeState{Value: 64, Owner: CubeRed, Max: 64}, IsRed: false}, nil, CBTagToRoll},
		{"predicate skips", CBInPlay{CubeState: NewCubeState(0), IsRed: false}, always, CBTagToRoll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := tt.state.DoStartCubeAction(tt.skip)
			require.Equal(t, tt.wantTag, next.Tag())
			assert.Equal(t, tt.state.CubeState, next.Cube())

			switch s := next.(type) {
			case CBAction:
				assert.True(t, s.IsRed, "the opponent decides")
			case CBToRoll:
				assert.True(t, s.IsRed)
				assert.Equal(t, CubeActionSkip, s.LastAction)
			}
		})
	}
}

func TestSkipPredicateSeesAction(t *testing.T) {
	var seen CBAction
	in := CBInPlay{CubeState: NewCubeState(0), IsRed: true}
	in.DoStartCubeAction(func(a CBAction) bool {
		seen = a
		return false
	})
	assert.Equal(t, CBAction{CubeState: in.CubeState, IsRed: false}, seen)
}

func TestDoubleTake(t *testing.T) {
	action := CBAction{CubeState: NewCubeState(0), IsRed: true}

	resp := action.DoDouble()
	assert.False(t, resp.IsRed, "white responds")
	assert.True(t, resp.Doubler())

	toRoll := resp.DoTake()
	assert.Equal(t, CBToRoll{
		CubeState:  CubeState{Value: 2, Owner: CubeWhite, Max: DefaultMaxCube},
		IsRed:      true,
		LastAction: CubeActionTake,
	}, toRoll)
	assert.Equal(t, CBInPlay{CubeState: toRoll.CubeState, IsRed: true}, toRoll.DoStartCheckerPlay())
}

func TestDoublePass(t *testing.T) {
	cube := CubeState{Value: 4, Owner: CubeRed, Max: 64}
	eog := CBAction{CubeState: cube, IsRed: true}.DoDouble().DoPass()

	assert.True(t, eog.IsWonByPass)
	assert.Equal(t, RedWon, eog.Result)
	assert.Equal(t, cube, eog.CubeState, "a pass does not turn the cube")

	for _, jacoby := range []bool{false, true} {
		assert.Equal(t, StakeResult{Stake: 4}, eog.CalcStake(StakeConf{JacobyRule: jacoby}))
	}
	assert.Equal(t, Score{Red: 4}, eog.Score(StakeConf{}))
}

func TestCBEoGCalcStake(t *testing.T) {
	gammon := board.EOGStatus{IsEndOfGame: true, IsGammon: true}

	onTwo := CBInPlay{CubeState: NewCubeState(0).Double(CubeRed), IsRed: false}.DoEndOfCubeGame(WhiteWon, gammon)
	assert.Equal(t, StakeResult{Stake: 4}, onTwo.CalcStake(StakeConf{}))
	assert.Equal(t, Score{White: 4}, onTwo.Score(StakeConf{JacobyRule: true}))

	onOne := CBInPlay{CubeState: NewCubeState(0), IsRed: false}.DoEndOfCubeGame(WhiteWon, gammon)
	assert.Equal(t, StakeResult{Stake: 2}, onOne.CalcStake(StakeConf{}))
	assert.Equal(t, StakeResult{Stake: 1, JacobyApplied: true}, onOne.CalcStake(StakeConf{JacobyRule: true}))
}
