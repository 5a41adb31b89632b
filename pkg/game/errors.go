package game

import (
	"errors"
	"fmt"
)

var (
	// ErrStateMismatch is returned when an event arrives while the two
	// machines are not in the states that event requires.
	ErrStateMismatch = errors.New("state mismatch")

	// ErrPlayIncomplete is returned when committing a checker play that does
	// not yet use the dice as the rules require.
	ErrPlayIncomplete = errors.New("checker play incomplete")

	// ErrForeignPlay is returned when a committed play was built for another
	// turn.
	ErrForeignPlay = errors.New("committed play does not belong to this turn")
)

// MismatchError describes an event the current CubeGame cannot accept.
type MismatchError struct {
	Event string
	SG    SGTag
	CB    CBTag
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: event %s not allowed in sg=%s cb=%s", ErrStateMismatch, e.Event, e.SG, e.CB)
}

func (e *MismatchError) Unwrap() error { return ErrStateMismatch }
