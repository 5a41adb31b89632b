// Package dice provides the dice sources a match is played with.
package dice

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/yourusername/bgmatch/internal/randutil"
	"github.com/yourusername/bgmatch/pkg/board"
)

// ErrExhausted is returned by a scripted source with no rolls left.
var ErrExhausted = errors.New("dice source exhausted")

// Source produces rolls. There is no separate opening roll: the opening is
// an ordinary roll read as Dice1 for White and Dice2 for Red, and a double
// is rolled again through game.SGOpening.DoOpening.
type Source interface {
	Roll() (board.DiceRoll, error)
}

// Random rolls uniformly distributed dice. It is not safe for concurrent use;
// give each match its own source.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a source whose sequence is fixed by seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: randutil.New(seed)}
}

// Roll never fails.
func (r *Random) Roll() (board.DiceRoll, error) {
	return board.DiceRoll{Dice1: r.rng.IntN(6) + 1, Dice2: r.rng.IntN(6) + 1}, nil
}

// Scripted replays a fixed list of rolls, for tests and replays.
type Scripted struct {
	rolls []board.DiceRoll
	next  int
}

// NewScripted returns a source that yields rolls in order.
func NewScripted(rolls ...board.DiceRoll) *Scripted {
	return &Scripted{rolls: rolls}
}

// Remaining returns how many rolls are left.
func (s *Scripted) Remaining() int {
	return len(s.rolls) - s.next
}

func (s *Scripted) Roll() (board.DiceRoll, error) {
	if s.next >= len(s.rolls) {
		return board.DiceRoll{}, ErrExhausted
	}
	r := s.rolls[s.next]
	s.next++
	if err := r.Validate(); err != nil {
		return board.DiceRoll{}, fmt.Errorf("scripted roll %d: %w", s.next, err)
	}
	return r, nil
}
