// Package match records backgammon matches and tracks match score.
// Records are exported and imported in the MAT (Jellyfish) text format.
package match

import (
	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/game"
)

// Match represents a complete backgammon match.
type Match struct {
	White  string // Player 1 in MAT files
	Red    string // Player 2 in MAT files
	Length int    // Match length (0 = money session)
	Date   string // YYYY-MM-DD
	Event  string
	Place  string
	Games  []*Game
}

// Game represents a single game within a match.
type Game struct {
	Number   int        // 1-indexed
	Score    game.Score // score at the start of the game
	Crawford bool
	Actions  []Action
	Winner   game.Result
	Points   int
	Result   GameResult
}

// ActionType represents the type of game action.
type ActionType int

const (
	ActionRoll ActionType = iota
	ActionMove
	ActionDouble
	ActionTake
	ActionPass
)

// Action represents a single game action (roll, move, cube action).
type Action struct {
	Type  ActionType
	IsRed bool
	Roll  board.DiceRoll // ActionRoll
	// Moves are in the mover's coordinates (ActionMove).
	Moves []board.Move
	// PositionID is the position before the move, mover on roll. Empty for
	// imported records.
	PositionID string
	Value      int // new cube value (ActionDouble)
}

// GameResult indicates how a game ended.
type GameResult int

const (
	ResultInProgress GameResult = iota
	ResultSingle
	ResultGammon
	ResultBackgammon
	ResultDrop
)

func (r GameResult) String() string {
	switch r {
	case ResultSingle:
		return "single"
	case ResultGammon:
		return "gammon"
	case ResultBackgammon:
		return "backgammon"
	case ResultDrop:
		return "drop"
	default:
		return "in progress"
	}
}

// NewMatch creates a new empty match.
func NewMatch(white, red string, length int) *Match {
	return &Match{
		White:  white,
		Red:    red,
		Length: length,
		Games:  make([]*Game, 0),
	}
}

// NewGame appends a game starting at state's score.
func (m *Match) NewGame(state State) *Game {
	g := &Game{
		Number:   len(m.Games) + 1,
		Score:    state.Score,
		Crawford: state.IsCrawford(),
		Actions:  make([]Action, 0),
	}
	m.Games = append(m.Games, g)
	return g
}

// AddRoll records a roll. The opening roll is recorded once, for the
// winner, in winner-first order.
func (g *Game) AddRoll(isRed bool, roll board.DiceRoll) {
	g.Actions = append(g.Actions, Action{
		Type:  ActionRoll,
		IsRed: isRed,
		Roll:  roll,
	})
}

// AddPly records a committed checker play.
func (g *Game) AddPly(ply game.Ply) {
	g.Actions = append(g.Actions, Action{
		Type:       ActionMove,
		IsRed:      ply.IsRed,
		Moves:      ply.Moves,
		PositionID: ply.PositionID,
	})
}

// AddDouble records a double to value.
func (g *Game) AddDouble(isRed bool, value int) {
	g.Actions = append(g.Actions, Action{
		Type:  ActionDouble,
		IsRed: isRed,
		Value: value,
	})
}

// AddTake records a take.
func (g *Game) AddTake(isRed bool) {
	g.Actions = append(g.Actions, Action{
		Type:  ActionTake,
		IsRed: isRed,
	})
}

// AddPass records a pass (drop).
func (g *Game) AddPass(isRed bool) {
	g.Actions = append(g.Actions, Action{
		Type:  ActionPass,
		IsRed: isRed,
	})
}

// Finish records the outcome of a finished game and returns the points
// scored.
func (g *Game) Finish(eog game.CBEoG, conf game.StakeConf) game.Score {
	stake := eog.CalcStake(conf)
	g.Winner = eog.Result
	g.Points = stake.Stake
	switch {
	case eog.IsWonByPass:
		g.Result = ResultDrop
	case eog.EOGStatus.IsBackgammon:
		g.Result = ResultBackgammon
	case eog.EOGStatus.IsGammon:
		g.Result = ResultGammon
	default:
		g.Result = ResultSingle
	}
	return stake.ScoreFor(eog.Result)
}

// IsFinished reports whether the game has a winner.
func (g *Game) IsFinished() bool {
	return g.Result != ResultInProgress
}
