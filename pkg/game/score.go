package game

import "fmt"

// Result is the winner of a finished game.
type Result int

const (
	NoResult Result = iota
	RedWon
	WhiteWon
)

// ResultFor returns the result for a win by the given side.
func ResultFor(isRed bool) Result {
	if isRed {
		return RedWon
	}
	return WhiteWon
}

// IsRedWon reports whether Red won.
func (r Result) IsRedWon() bool { return r == RedWon }

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case RedWon:
		return "REDWON"
	case WhiteWon:
		return "WHITEWON"
	default:
		return "NONE"
	}
}

// Score holds the points of each side.
type Score struct {
	Red   int
	White int
}

// ScoreAsRed returns n points for Red.
func ScoreAsRed(n int) Score { return Score{Red: n} }

// ScoreAsWhite returns n points for White.
func ScoreAsWhite(n int) Score { return Score{White: n} }

// ScoreFor orients n points to the winner of result.
func ScoreFor(result Result, n int) Score {
	switch result {
	case RedWon:
		return ScoreAsRed(n)
	case WhiteWon:
		return ScoreAsWhite(n)
	default:
		return Score{}
	}
}

// Add returns the sum of two scores.
func (s Score) Add(o Score) Score {
	return Score{Red: s.Red + o.Red, White: s.White + o.White}
}

// Of returns the points of one side.
func (s Score) Of(isRed bool) int {
	if isRed {
		return s.Red
	}
	return s.White
}

func (s Score) String() string {
	return fmt.Sprintf("red %d - white %d", s.Red, s.White)
}
