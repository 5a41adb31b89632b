package game

import (
	"fmt"

	"github.com/yourusername/bgmatch/pkg/board"
)

// CBTag names a cube-game state.
type CBTag int

// CBTagNone stands for a missing state, as in a zero CubeGame.
const CBTagNone CBTag = -1

const (
	CBTagOpening CBTag = iota
	CBTagInPlay
	CBTagAction
	CBTagResponse
	CBTagToRoll
	CBTagEoG
)

func (t CBTag) String() string {
	switch t {
	case CBTagNone:
		return "none"
	case CBTagOpening:
		return "CBOpening"
	case CBTagInPlay:
		return "CBInPlay"
	case CBTagAction:
		return "CBAction"
	case CBTagResponse:
		return "CBResponse"
	case CBTagToRoll:
		return "CBToRoll"
	case CBTagEoG:
		return "CBEoG"
	default:
		return fmt.Sprintf("CBTag(%d)", int(t))
	}
}

func cbTag(s CBState) CBTag {
	if s == nil {
		return CBTagNone
	}
	return s.Tag()
}

// CubeAction is a decision taken on the cube.
type CubeAction int

const (
	CubeActionNone CubeAction = iota
	CubeActionSkip
	CubeActionDouble
	CubeActionTake
	CubeActionPass
)

func (a CubeAction) String() string {
	switch a {
	case CubeActionSkip:
		return "skip"
	case CubeActionDouble:
		return "double"
	case CubeActionTake:
		return "take"
	case CubeActionPass:
		return "pass"
	default:
		return "none"
	}
}

// SkipPredicate decides whether an offered cube action is skipped without
// asking the player, as under the Crawford rule. A nil predicate never skips.
type SkipPredicate func(CBAction) bool

// CBState is one state of the cube-game machine.
type CBState interface {
	Tag() CBTag
	Cube() CubeState
	isCBState()
}

// CBOpening is the cube before the opening roll is settled.
type CBOpening struct {
	CubeState CubeState
}

// CBInPlay is the cube while IsRed moves checkers.
type CBInPlay struct {
	CubeState CubeState
	IsRed     bool
}

// CBAction is IsRed deciding whether to double before rolling.
type CBAction struct {
	CubeState CubeState
	IsRed     bool
}

// CBResponse is IsRed deciding whether to take a double.
type CBResponse struct {
	CubeState CubeState
	IsRed     bool
}

// CBToRoll is IsRed cleared to roll. LastAction is CubeActionSkip or
// CubeActionTake.
type CBToRoll struct {
	CubeState  CubeState
	IsRed      bool
	LastAction CubeAction
}

// CBEoG is a finished cube game.
type CBEoG struct {
	CubeState   CubeState
	Result      Result
	EOGStatus   board.EOGStatus
	IsWonByPass bool
}

func (CBOpening) Tag() CBTag  { return CBTagOpening }
func (CBInPlay) Tag() CBTag   { return CBTagInPlay }
func (CBAction) Tag() CBTag   { return CBTagAction }
func (CBResponse) Tag() CBTag { return CBTagResponse }
func (CBToRoll) Tag() CBTag   { return CBTagToRoll }
func (CBEoG) Tag() CBTag      { return CBTagEoG }

func (s CBOpening) Cube() CubeState  { return s.CubeState }
func (s CBInPlay) Cube() CubeState   { return s.CubeState }
func (s CBAction) Cube() CubeState   { return s.CubeState }
func (s CBResponse) Cube() CubeState { return s.CubeState }
func (s CBToRoll) Cube() CubeState   { return s.CubeState }
func (s CBEoG) Cube() CubeState      { return s.CubeState }

func (CBOpening) isCBState()  {}
func (CBInPlay) isCBState()   {}
func (CBAction) isCBState()   {}
func (CBResponse) isCBState() {}
func (CBToRoll) isCBState()   {}
func (CBEoG) isCBState()      {}

// DoStartCheckerPlay hands the opening checker play to the roll winner.
func (s CBOpening) DoStartCheckerPlay(isRed bool) CBInPlay {
	return CBInPlay{CubeState: s.CubeState, IsRed: isRed}
}

// DoStartCheckerPlayRed hands the opening checker play to Red.
func (s CBOpening) DoStartCheckerPlayRed() CBInPlay { return s.DoStartCheckerPlay(true) }

// DoStartCheckerPlayWhite hands the opening checker play to White.
func (s CBOpening) DoStartCheckerPlayWhite() CBInPlay { return s.DoStartCheckerPlay(false) }

// DoStartCubeAction moves the cube to the opponent once IsRed has played.
// The opponent gets a cube action only if it may double and skip does not
// veto it; otherwise the action is skipped on its behalf.
func (s CBInPlay) DoStartCubeAction(skip SkipPredicate) CBState {
	opponent := !s.IsRed
	action := CBAction{CubeState: s.CubeState, IsRed: opponent}
	if s.CubeState.MayDoubleFor(OwnerFor(opponent)) && (skip == nil || !skip(action)) {
		return action
	}
	return action.DoSkipCubeAction()
}

// DoEndOfCubeGame records a game ended by bearing off.
func (s CBInPlay) DoEndOfCubeGame(result Result, eog board.EOGStatus) CBEoG {
	return CBEoG{CubeState: s.CubeState, Result: result, EOGStatus: eog}
}

// DoDouble offers the cube to the opponent.
func (s CBAction) DoDouble() CBResponse {
	return CBResponse{CubeState: s.CubeState, IsRed: !s.IsRed}
}

// DoSkipCubeAction declines to double.
func (s CBAction) DoSkipCubeAction() CBToRoll {
	return CBToRoll{CubeState: s.CubeState, IsRed: s.IsRed, LastAction: CubeActionSkip}
}

// DoStartCheckerPlay rolls without an explicit cube decision.
func (s CBAction) DoStartCheckerPlay() CBInPlay {
	return CBInPlay{CubeState: s.CubeState, IsRed: s.IsRed}
}

// Doubler returns the side that offered the cube.
func (s CBResponse) Doubler() bool { return !s.IsRed }

// DoTake accepts: the cube doubles, the taker owns it, and the doubler rolls.
func (s CBResponse) DoTake() CBToRoll {
	return CBToRoll{
		CubeState:  s.CubeState.Double(OwnerFor(s.IsRed)),
		IsRed:      s.Doubler(),
		LastAction: CubeActionTake,
	}
}

// DoPass refuses: the doubler wins the current cube value.
func (s CBResponse) DoPass() CBEoG {
	return CBEoG{
		CubeState:   s.CubeState,
		Result:      ResultFor(s.Doubler()),
		EOGStatus:   board.EOGStatus{IsEndOfGame: true},
		IsWonByPass: true,
	}
}

// DoStartCheckerPlay starts IsRed's checker play.
func (s CBToRoll) DoStartCheckerPlay() CBInPlay {
	return CBInPlay{CubeState: s.CubeState, IsRed: s.IsRed}
}

// CalcStake scores the game under conf. A pass always scores the current
// cube value.
func (s CBEoG) CalcStake(conf StakeConf) StakeResult {
	if s.IsWonByPass {
		return StakeResult{Stake: s.CubeState.Value}
	}
	return CalcStake(s.CubeState.Value, s.EOGStatus, conf.JacobyRule)
}

// Score returns the winner's points under conf.
func (s CBEoG) Score(conf StakeConf) Score {
	return s.CalcStake(conf).ScoreFor(s.Result)
}
