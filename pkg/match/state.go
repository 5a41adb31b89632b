package match

import (
	"github.com/yourusername/bgmatch/internal/met"
	"github.com/yourusername/bgmatch/pkg/game"
)

// State is the running score of a match.
type State struct {
	Length int // 0 for a money session
	Score  game.Score
	Games  int // games finished
	// CrawfordPlayed is set once the Crawford game is over; later games at
	// 1-away are post-Crawford.
	CrawfordPlayed bool
}

// NewState returns the state before the first game.
func NewState(length int) State {
	return State{Length: length}
}

// Away returns the points a side still needs. It is 0 in a money session.
func (s State) Away(isRed bool) int {
	if s.Length == 0 {
		return 0
	}
	return max(s.Length-s.Score.Of(isRed), 0)
}

// IsOver reports whether a side has reached the match length.
func (s State) IsOver() bool {
	return s.Length > 0 && (s.Away(true) == 0 || s.Away(false) == 0)
}

// Winner returns the match winner, or game.NoResult.
func (s State) Winner() game.Result {
	switch {
	case !s.IsOver():
		return game.NoResult
	case s.Away(true) == 0:
		return game.RedWon
	default:
		return game.WhiteWon
	}
}

// IsCrawford reports whether the next game is the Crawford game: the first
// game after a side reaches 1-away.
func (s State) IsCrawford() bool {
	if s.Length == 0 || s.CrawfordPlayed || s.IsOver() {
		return false
	}
	return s.Away(true) == 1 || s.Away(false) == 1
}

// Advance adds the points of a finished game.
func (s State) Advance(points game.Score) State {
	if s.IsCrawford() {
		s.CrawfordPlayed = true
	}
	s.Score = s.Score.Add(points)
	s.Games++
	return s
}

// SkipPredicate returns the cube veto for the next game: every cube action
// is skipped in the Crawford game when crawfordRule is on.
func (s State) SkipPredicate(crawfordRule bool) game.SkipPredicate {
	if !crawfordRule || !s.IsCrawford() {
		return nil
	}
	return func(game.CBAction) bool { return true }
}

// StakeConf returns the scoring rules for the next game. The Jacoby rule
// only applies to money play.
func (s State) StakeConf(jacobyRule bool) game.StakeConf {
	return game.StakeConf{JacobyRule: jacobyRule && s.Length == 0}
}

// Equity returns a side's chance to win the match from here. Money
// sessions have no match equity and report 0.5.
func (s State) Equity(t *met.Table, isRed bool) float64 {
	if s.Length == 0 {
		return 0.5
	}
	return t.Equity(s.Away(isRed), s.Away(!isRed), s.IsCrawford())
}
