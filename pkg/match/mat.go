package match

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/bgmatch/pkg/board"
	"github.com/yourusername/bgmatch/pkg/game"
)

// MAT format is the Jellyfish/gnubg match format. Player 1 is White and
// takes the left column.
//
//	; [Player 1 "white"]
//	; [Player 2 "red"]
//	7 point match
//
//	Game 1
//	white : 0                          red : 0
//	  1) 31: 8/5 6/5                    52: 24/22 13/8
//	  2) 43: 24/20 13/10                Doubles => 2
//	  3) Takes                          ...

// matColumn is the width of White's column, after the move number.
const matColumn = 34

var (
	matchLengthRE = regexp.MustCompile(`(\d+)\s+point\s+match`)
	gameHeaderRE  = regexp.MustCompile(`^Game\s+(\d+)`)
	scoreLineRE   = regexp.MustCompile(`^(.+?)\s*:\s*(\d+)\s+(.+?)\s*:\s*(\d+)$`)
	moveLineRE    = regexp.MustCompile(`^\s*(\d+)\)`)
	tagRE         = regexp.MustCompile(`\[([\w ]+?)\s+"([^"]*)"\]`)
	winsRE        = regexp.MustCompile(`^Wins\s+(\d+)\s+points?`)
	doublesRE     = regexp.MustCompile(`^Doubles\s*=>\s*(\d+)`)
)

// ImportMAT reads a match from MAT format.
func ImportMAT(r io.Reader) (*Match, error) {
	scanner := bufio.NewScanner(r)
	m := &Match{Games: make([]*Game, 0)}

	var current *Game
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ";") {
			if tag := tagRE.FindStringSubmatch(line); tag != nil {
				switch strings.ToLower(tag[1]) {
				case "player 1", "player1":
					m.White = tag[2]
				case "player 2", "player2":
					m.Red = tag[2]
				case "site", "place":
					m.Place = tag[2]
				case "event":
					m.Event = tag[2]
				case "date":
					m.Date = tag[2]
				}
			}
			continue
		}

		if current == nil {
			if sub := matchLengthRE.FindStringSubmatch(line); sub != nil {
				m.Length, _ = strconv.Atoi(sub[1])
				continue
			}
		}

		if sub := gameHeaderRE.FindStringSubmatch(line); sub != nil {
			n, _ := strconv.Atoi(sub[1])
			current = &Game{Number: n, Actions: make([]Action, 0)}
			m.Games = append(m.Games, current)
			continue
		}
		if current == nil {
			continue
		}

		if sub := scoreLineRE.FindStringSubmatch(line); sub != nil && !moveLineRE.MatchString(line) {
			if m.White == "" {
				m.White = sub[1]
			}
			if m.Red == "" {
				m.Red = sub[3]
			}
			current.Score.White, _ = strconv.Atoi(sub[2])
			current.Score.Red, _ = strconv.Atoi(sub[4])
			continue
		}

		white, red := splitColumns(raw)
		if err := parseHalfMAT(white, false, current); err != nil {
			return nil, fmt.Errorf("game %d: %w", current.Number, err)
		}
		if err := parseHalfMAT(red, true, current); err != nil {
			return nil, fmt.Errorf("game %d: %w", current.Number, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MAT file: %w", err)
	}
	return m, nil
}

// splitColumns cuts a move line (or a trailing "Wins" line) into White's
// and Red's halves.
func splitColumns(line string) (white, red string) {
	start := 0
	if loc := moveLineRE.FindStringIndex(line); loc != nil {
		start = loc[1] + 1
	}
	if start > len(line) {
		return "", ""
	}
	body := line[start:]
	if len(body) <= matColumn {
		return strings.TrimSpace(body), ""
	}
	return strings.TrimSpace(body[:matColumn]), strings.TrimSpace(body[matColumn:])
}

// parseHalfMAT parses one player's entry: "31: 8/5 6/5", "Doubles => 2",
// "Takes", "Drops" or "Wins 2 points".
func parseHalfMAT(text string, isRed bool, g *Game) error {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	if sub := doublesRE.FindStringSubmatch(text); sub != nil {
		v, _ := strconv.Atoi(sub[1])
		g.AddDouble(isRed, v)
		return nil
	}
	switch lower {
	case "takes":
		g.AddTake(isRed)
		return nil
	case "drops", "passes":
		g.AddPass(isRed)
		g.Result = ResultDrop
		return nil
	}
	if sub := winsRE.FindStringSubmatch(text); sub != nil {
		g.Points, _ = strconv.Atoi(sub[1])
		g.Winner = game.ResultFor(isRed)
		if g.Result == ResultInProgress {
			g.Result = ResultSingle
		}
		return nil
	}

	colon := strings.Index(text, ":")
	if colon != 2 {
		return fmt.Errorf("%w: %q", ErrIllegalRecord, text)
	}
	d1, d2 := int(text[0]-'0'), int(text[1]-'0')
	roll := board.DiceRoll{Dice1: d1, Dice2: d2}
	if err := roll.Validate(); err != nil {
		return err
	}
	g.AddRoll(isRed, roll)

	moves, err := parseMoveNotation(strings.TrimSpace(text[colon+1:]))
	if err != nil {
		return err
	}
	g.Actions = append(g.Actions, Action{Type: ActionMove, IsRed: isRed, Moves: moves})
	return nil
}

// parseMoveNotation parses moves like "8/5 6/5", "bar/22*" or "24/22(2)"
// into mover coordinates. A combined move such as "24/13" keeps Pip 0 and
// is split into dice on replay.
func parseMoveNotation(notation string) ([]board.Move, error) {
	var moves []board.Move
	if notation == "" || strings.Contains(strings.ToLower(notation), "cannot") {
		return moves, nil
	}
	for _, part := range strings.Fields(notation) {
		count := 1
		if i := strings.Index(part, "("); i != -1 {
			j := strings.Index(part, ")")
			if j > i {
				count, _ = strconv.Atoi(part[i+1 : j])
			}
			part = part[:i]
		}

		hit := strings.HasSuffix(part, "*")
		part = strings.TrimSuffix(part, "*")
		fromTo := strings.Split(part, "/")
		if len(fromTo) != 2 {
			return nil, fmt.Errorf("%w: move %q", ErrIllegalRecord, part)
		}
		from, err := parsePoint(fromTo[0])
		if err != nil {
			return nil, err
		}
		to, err := parsePoint(fromTo[1])
		if err != nil {
			return nil, err
		}
		if to <= from {
			return nil, fmt.Errorf("%w: move %q goes backwards", ErrIllegalRecord, part)
		}
		for range count {
			mv := board.Move{From: from, To: to, IsHit: hit}
			if to-from <= 6 {
				mv.Pip = to - from
			}
			moves = append(moves, mv)
		}
	}
	return moves, nil
}

// parsePoint converts MAT point notation (the mover's 24..1, "bar", "off")
// into a mover position.
func parsePoint(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar":
		return board.BarPos, nil
	case "off":
		return board.BearOffPos, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 24 {
		return 0, fmt.Errorf("%w: point %q", ErrIllegalRecord, s)
	}
	return board.BearOffPos - p, nil
}

// formatPoint converts a mover position into MAT point notation.
func formatPoint(pos int) string {
	switch pos {
	case board.BarPos:
		return "bar"
	case board.BearOffPos:
		return "off"
	}
	return strconv.Itoa(board.BearOffPos - pos)
}

// FormatMoves formats a checker play in MAT notation.
func FormatMoves(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, mv := range moves {
		s := formatPoint(mv.From) + "/" + formatPoint(mv.To)
		if mv.IsHit {
			s += "*"
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

// ExportMAT writes a match in MAT format.
func ExportMAT(w io.Writer, m *Match) error {
	bw := bufio.NewWriter(w)

	if m.Place != "" {
		fmt.Fprintf(bw, " ; [Site \"%s\"]\n", m.Place)
	}
	if m.Event != "" {
		fmt.Fprintf(bw, " ; [Event \"%s\"]\n", m.Event)
	}
	if m.Date != "" {
		fmt.Fprintf(bw, " ; [Date \"%s\"]\n", m.Date)
	}
	fmt.Fprintf(bw, " ; [Player 1 \"%s\"]\n", m.White)
	fmt.Fprintf(bw, " ; [Player 2 \"%s\"]\n", m.Red)
	if m.Length > 0 {
		fmt.Fprintf(bw, " %d point match\n\n", m.Length)
	} else {
		fmt.Fprintf(bw, " 0 point match\n\n")
	}

	for _, g := range m.Games {
		exportGameMAT(bw, m, g)
	}
	return bw.Flush()
}

// matEntries renders a game's actions into per-player column entries.
func matEntries(g *Game) []Action {
	var out []Action
	for _, a := range g.Actions {
		if a.Type == ActionMove && len(out) > 0 && out[len(out)-1].Type == ActionRoll {
			// Folded into the preceding roll's entry.
			out[len(out)-1].Moves = a.Moves
			continue
		}
		out = append(out, a)
	}
	return out
}

func entryText(a Action) string {
	switch a.Type {
	case ActionRoll:
		return strings.TrimSpace(fmt.Sprintf("%d%d: %s", a.Roll.Dice1, a.Roll.Dice2, FormatMoves(a.Moves)))
	case ActionDouble:
		return fmt.Sprintf("Doubles => %d", a.Value)
	case ActionTake:
		return "Takes"
	case ActionPass:
		return "Drops"
	}
	return ""
}

func exportGameMAT(w io.Writer, m *Match, g *Game) {
	fmt.Fprintf(w, " Game %d\n", g.Number)
	fmt.Fprintf(w, " %s : %d                          %s : %d\n", m.White, g.Score.White, m.Red, g.Score.Red)

	num := 0
	open := false // a line with White's entry waits for Red's
	for _, a := range matEntries(g) {
		text := entryText(a)
		if !a.IsRed {
			if open {
				fmt.Fprintln(w)
			}
			num++
			fmt.Fprintf(w, "%3d) %-*s", num, matColumn, text)
			open = true
			continue
		}
		if !open {
			num++
			fmt.Fprintf(w, "%3d) %-*s", num, matColumn, "")
		}
		fmt.Fprintln(w, text)
		open = false
	}
	if open {
		fmt.Fprintln(w)
	}

	if g.IsFinished() {
		plural := "s"
		if g.Points == 1 {
			plural = ""
		}
		wins := fmt.Sprintf("Wins %d point%s", g.Points, plural)
		if g.Winner.IsRedWon() {
			fmt.Fprintf(w, "     %-*s%s\n", matColumn, "", wins)
		} else {
			fmt.Fprintf(w, "     %s\n", wins)
		}
	}
	fmt.Fprintln(w)
}
