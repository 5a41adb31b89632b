package board

import (
	"errors"
	"fmt"
)

// ErrInvalidRoll is returned for dice values outside 1-6.
var ErrInvalidRoll = errors.New("invalid dice roll")

// DiceRoll is the raw two-value roll supplied by a dice source.
type DiceRoll struct {
	Dice1 int
	Dice2 int
}

// IsDouble reports whether both dice show the same pip.
func (r DiceRoll) IsDouble() bool {
	return r.Dice1 == r.Dice2
}

// Reverted swaps the two dice.
func (r DiceRoll) Reverted() DiceRoll {
	return DiceRoll{Dice1: r.Dice2, Dice2: r.Dice1}
}

// Validate checks both dice are in range.
func (r DiceRoll) Validate() error {
	if r.Dice1 < 1 || r.Dice1 > 6 || r.Dice2 < 1 || r.Dice2 > 6 {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRoll, r.Dice1, r.Dice2)
	}
	return nil
}

// Pips returns the dice uses the roll grants: two, or four for a double.
func (r DiceRoll) Pips() []int {
	if r.IsDouble() {
		return []int{r.Dice1, r.Dice1, r.Dice1, r.Dice1}
	}
	return []int{r.Dice1, r.Dice2}
}

func (r DiceRoll) String() string {
	return fmt.Sprintf("%d%d", r.Dice1, r.Dice2)
}

// Die is one use of a die within a turn.
type Die struct {
	Pip  int
	Used bool
}

// Dice is the ordered list of dice uses for a turn.
type Dice []Die

func newDice(r DiceRoll) Dice {
	pips := r.Pips()
	d := make(Dice, len(pips))
	for i, p := range pips {
		d[i] = Die{Pip: p}
	}
	return d
}

// Unused returns the pips not yet consumed, in order.
func (d Dice) Unused() []int {
	var pips []int
	for _, die := range d {
		if !die.Used {
			pips = append(pips, die.Pip)
		}
	}
	return pips
}

// AllUnused reports whether no die has been consumed.
func (d Dice) AllUnused() bool {
	for _, die := range d {
		if die.Used {
			return false
		}
	}
	return true
}

// use marks the first unused die showing pip as used.
func (d Dice) use(pip int) Dice {
	out := make(Dice, len(d))
	copy(out, d)
	for i := range out {
		if !out[i].Used && out[i].Pip == pip {
			out[i].Used = true
			break
		}
	}
	return out
}
