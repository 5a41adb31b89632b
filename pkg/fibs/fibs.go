// Package fibs reads and writes save lines for a game in progress, laid out
// after the FIBS board_state line so a game can be resumed later.
//
// See: http://www.fibs.com/fibs_interface.html#board_state
//
// The field order follows FIBS but the line is not meant for a FIBS client.
// It is always written from the side to play ("you"), and the board slots
// use the board package layout: 0 is your bar, 1-24 run in your direction of
// travel and 25 is the opponent's bar, whatever your color. Direction is
// therefore always 1, and a line with any other direction is rejected.
package fibs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/game"
	"github.com/yourusername/bgmatch/pkg/match"
)

var (
	// ErrInvalidBoard is returned for lines that are not a usable board.
	ErrInvalidBoard = errors.New("invalid FIBS board")
	// ErrNotResumable is returned for games with no position to save: before
	// the opening roll is settled and after the end.
	ErrNotResumable = errors.New("game cannot be saved")
)

// numFields is the field count of a full board line, without the prefix.
const numFields = 52

// Colors as FIBS writes them.
const (
	ColorWhite = 1
	ColorRed   = -1
)

// Board is a parsed save line.
type Board struct {
	Player1      string  // you, the side to play
	Player2      string  // opponent
	MatchLength  int     // 0 = unlimited
	Score1       int     // your score
	Score2       int     // opponent's score
	Board        [26]int // -n = opponent, +n = you
	Turn         int     // 1 = you
	Dice         [2]int  // your dice, 0,0 if not rolled
	OppDice      [2]int
	Cube         int
	CanDouble    bool
	OppCanDouble bool
	Doubled      bool // you have doubled and wait for the answer
	Color        int  // ColorWhite or ColorRed
	Direction    int
	OnHome       int // your checkers borne off
	OppOnHome    int
	OnBar        int
	OppOnBar     int
	Crawford     bool // this is the Crawford game
}

// IsRed reports whether you play Red.
func (fb *Board) IsRed() bool {
	return fb.Color == ColorRed
}

// ParseBoard parses a save line. The "board:" prefix is optional.
func ParseBoard(s string) (*Board, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "board:")

	parts := strings.Split(s, ":")
	if len(parts) < 32 {
		return nil, fmt.Errorf("%w: expected at least 32 fields, got %d", ErrInvalidBoard, len(parts))
	}

	var err error
	num := func(i int) int {
		if i >= len(parts) || err != nil {
			return 0
		}
		var n int
		n, err = strconv.Atoi(parts[i])
		if err != nil {
			err = fmt.Errorf("%w: field %d: %w", ErrInvalidBoard, i+1, err)
		}
		return n
	}
	flag := func(i int) bool { return num(i) == 1 }

	fb := &Board{
		Player1:      parts[0],
		Player2:      parts[1],
		MatchLength:  num(2),
		Score1:       num(3),
		Score2:       num(4),
		Turn:         num(31),
		Dice:         [2]int{num(32), num(33)},
		OppDice:      [2]int{num(34), num(35)},
		Cube:         num(36),
		CanDouble:    flag(37),
		OppCanDouble: flag(38),
		Doubled:      flag(39),
		Color:        num(40),
		Direction:    num(41),
		OnHome:       num(44),
		OppOnHome:    num(45),
		OnBar:        num(46),
		OppOnBar:     num(47),
		Crawford:     flag(50),
	}
	for i := range fb.Board {
		fb.Board[i] = num(5 + i)
	}
	if err != nil {
		return nil, err
	}
	if fb.Cube == 0 {
		fb.Cube = 1
	}
	if fb.Color == 0 {
		fb.Color = ColorWhite
	}
	return fb, nil
}

func itoa(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// String formats the board line, with the "board:" prefix.
func (fb *Board) String() string {
	parts := make([]string, 0, numFields)
	parts = append(parts,
		fb.Player1, fb.Player2,
		strconv.Itoa(fb.MatchLength), strconv.Itoa(fb.Score1), strconv.Itoa(fb.Score2))
	for _, n := range fb.Board {
		parts = append(parts, strconv.Itoa(n))
	}
	parts = append(parts,
		strconv.Itoa(fb.Turn),
		strconv.Itoa(fb.Dice[0]), strconv.Itoa(fb.Dice[1]),
		strconv.Itoa(fb.OppDice[0]), strconv.Itoa(fb.OppDice[1]),
		strconv.Itoa(fb.Cube),
		itoa(fb.CanDouble), itoa(fb.OppCanDouble), itoa(fb.Doubled),
		strconv.Itoa(fb.Color), strconv.Itoa(fb.Direction),
		"25", "0", // home, bar
		strconv.Itoa(fb.OnHome), strconv.Itoa(fb.OppOnHome),
		strconv.Itoa(fb.OnBar), strconv.Itoa(fb.OppOnBar),
		"0", "0", // canmove, forcedmove
		itoa(fb.Crawford),
		"0", // redoubles
	)
	return "board:" + strings.Join(parts, ":")
}

// FromCubeGame saves g, played at match state ms between white and red.
// The game must be between events with a side to play: rolling, deciding
// on the cube or moving checkers.
func FromCubeGame(g game.CubeGame, ms match.State, white, red string) (*Board, error) {
	var (
		isRed bool
		b     board.BoardState
		dice  [2]int
	)
	switch sg := g.SG.(type) {
	case game.SGToRoll:
		isRed, b = sg.IsRed, sg.Board
	case game.SGInPlay:
		isRed, b = sg.IsRed, sg.Root.Board()
		r := sg.Root.Roll()
		dice = [2]int{r.Dice1, r.Dice2}
	default:
		return nil, fmt.Errorf("%w: single game is %s", ErrNotResumable, g.SG.Tag())
	}

	cube := g.CB.Cube()
	fb := &Board{
		Player1:      white,
		Player2:      red,
		MatchLength:  ms.Length,
		Score1:       ms.Score.Of(isRed),
		Score2:       ms.Score.Of(!isRed),
		Board:        b.Points(),
		Turn:         1,
		Dice:         dice,
		Cube:         cube.Value,
		CanDouble:    cube.MayDoubleFor(game.OwnerFor(isRed)),
		OppCanDouble: cube.MayDoubleFor(game.OwnerFor(!isRed)),
		Color:        ColorWhite,
		Direction:    1,
		OnHome:       b.MyBornOff(),
		OppOnHome:    b.OpponentBornOff(),
		OnBar:        b.PiecesAt(board.BarPos),
		OppOnBar:     -b.PiecesAt(board.OpponentBarPos),
		Crawford:     ms.IsCrawford(),
	}
	if isRed {
		fb.Player1, fb.Player2 = red, white
		fb.Color = ColorRed
	}

	switch cb := g.CB.(type) {
	case game.CBResponse:
		fb.Doubled = true
	case game.CBInPlay, game.CBAction, game.CBToRoll:
	default:
		return nil, fmt.Errorf("%w: cube game is %s", ErrNotResumable, cb.Tag())
	}
	return fb, nil
}

// cubeState rebuilds the cube from the double flags. With neither side
// able to double the cube is taken to be centered at its limit, or owned
// by you below it.
func (fb *Board) cubeState(maxCube int) game.CubeState {
	cube := game.NewCubeState(maxCube)
	cube.Value = fb.Cube
	you := game.OwnerFor(fb.IsRed())
	switch {
	case fb.CanDouble && fb.OppCanDouble:
		cube.Owner = game.CubeCenter
	case fb.CanDouble:
		cube.Owner = you
	case fb.OppCanDouble:
		cube.Owner = game.OwnerFor(!fb.IsRed())
	case cube.IsMax():
		cube.Owner = game.CubeCenter
	default:
		cube.Owner = you
	}
	return cube
}

func (fb *Board) validate() error {
	if fb.Direction != 1 {
		return fmt.Errorf("%w: direction %d", ErrInvalidBoard, fb.Direction)
	}
	if fb.Turn != 1 {
		return fmt.Errorf("%w: not your turn", ErrInvalidBoard)
	}
	mine, theirs := 0, 0
	for _, n := range fb.Board {
		if n > 0 {
			mine += n
		} else {
			theirs -= n
		}
	}
	if mine > board.NumCheckers || theirs > board.NumCheckers {
		return fmt.Errorf("%w: %d and %d checkers", ErrInvalidBoard, mine, theirs)
	}
	if fb.Cube < 1 || fb.Cube&(fb.Cube-1) != 0 {
		return fmt.Errorf("%w: cube %d", ErrInvalidBoard, fb.Cube)
	}
	return nil
}

// CubeGame restores the saved game. maxCube is the cube limit in force,
// 0 for the default.
func (fb *Board) CubeGame(maxCube int) (game.CubeGame, error) {
	if err := fb.validate(); err != nil {
		return game.CubeGame{}, err
	}

	isRed := fb.IsRed()
	b := board.NewBoardState(fb.Board)
	cube := fb.cubeState(maxCube)

	if fb.Dice != [2]int{} {
		roll := board.DiceRoll{Dice1: fb.Dice[0], Dice2: fb.Dice[1]}
		if err := roll.Validate(); err != nil {
			return game.CubeGame{}, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
		}
		return game.CubeGame{
			SG: game.SGInPlay{IsRed: isRed, Root: board.NewRootNode(b, roll)},
			CB: game.CBInPlay{CubeState: cube, IsRed: isRed},
		}, nil
	}

	sg := game.SGToRoll{IsRed: isRed, Board: b}
	switch {
	case fb.Doubled:
		return game.CubeGame{SG: sg, CB: game.CBResponse{CubeState: cube, IsRed: !isRed}}, nil
	case fb.CanDouble && !fb.Crawford:
		// A skipped cube action is offered again.
		return game.CubeGame{SG: sg, CB: game.CBAction{CubeState: cube, IsRed: isRed}}, nil
	default:
		return game.CubeGame{SG: sg, CB: game.CBToRoll{CubeState: cube, IsRed: isRed, LastAction: game.CubeActionSkip}}, nil
	}
}

// State returns the match state saved with the board. The games count is
// not part of the line and is left at 0.
func (fb *Board) State() match.State {
	s := match.NewState(fb.MatchLength)
	if fb.IsRed() {
		s.Score = game.Score{Red: fb.Score1, White: fb.Score2}
	} else {
		s.Score = game.Score{White: fb.Score1, Red: fb.Score2}
	}
	// A 1-away score outside the Crawford game is post-Crawford.
	if !fb.Crawford && (s.Away(true) == 1 || s.Away(false) == 1) {
		s.CrawfordPlayed = true
	}
	return s
}
