package board

// usage measures how much of a roll a sequence of moves consumes. A legal
// play must reach the maximum usage available from the root: as many dice as
// possible and, when only one die fits, the larger one.
type usage struct {
	dice int
	pips int
}

func (u usage) less(o usage) bool {
	if u.dice != o.dice {
		return u.dice < o.dice
	}
	return u.pips < o.pips
}

func (u usage) plus(o usage) usage {
	return usage{dice: u.dice + o.dice, pips: u.pips + o.pips}
}

func (u usage) addPip(pip int) usage {
	return usage{dice: u.dice + 1, pips: u.pips + pip}
}

func fullUsage(pips []int) usage {
	u := usage{}
	for _, p := range pips {
		u = u.addPip(p)
	}
	return u
}

// maxUsage searches every ordering of the remaining pips for the largest
// usage reachable from b.
func maxUsage(b BoardState, pips []int) usage {
	var best usage
	full := fullUsage(pips)
	var tried [7]bool
	for i, pip := range pips {
		if tried[pip] {
			continue
		}
		tried[pip] = true

		rest := make([]int, 0, len(pips)-1)
		rest = append(rest, pips[:i]...)
		rest = append(rest, pips[i+1:]...)

		for from := BarPos; from <= 24; from++ {
			next, _, ok := b.Move(from, pip)
			if !ok {
				continue
			}
			u := maxUsage(next, rest).addPip(pip)
			if best.less(u) {
				best = u
			}
			if best == full {
				return best
			}
		}
	}
	return best
}

// Node is a position in the tree of legal continuations for one roll. Nodes
// are immutable and may be shared freely; children are derived on demand
// from (this node, chosen sub-move), so reverting to the root is just keeping
// a reference to it.
type Node struct {
	board BoardState
	roll  DiceRoll
	dice  Dice
	moves []Move
	used  usage
	best  usage
}

// NewRootNode returns the root of the move tree for b and roll, with dice in
// roll order.
func NewRootNode(b BoardState, roll DiceRoll) *Node {
	return &Node{
		board: b,
		roll:  roll,
		dice:  newDice(roll),
		best:  maxUsage(b, roll.Pips()),
	}
}

// Board returns the position at this node.
func (n *Node) Board() BoardState { return n.board }

// Roll returns the roll the tree was built for.
func (n *Node) Roll() DiceRoll { return n.roll }

// Dice returns a copy of the dice with their used flags.
func (n *Node) Dice() Dice {
	out := make(Dice, len(n.dice))
	copy(out, n.dice)
	return out
}

// LastMoves returns the moves taken from the root to reach this node.
func (n *Node) LastMoves() []Move {
	out := make([]Move, len(n.moves))
	copy(out, n.moves)
	return out
}

// IsRoot reports whether no move has been made yet.
func (n *Node) IsRoot() bool {
	return len(n.moves) == 0
}

// IsCommitReady reports whether the moves so far form a complete legal play.
func (n *Node) IsCommitReady() bool {
	return n.used == n.best
}

// WithDiceReverted returns the node with its two dice in swapped order. It
// returns n itself for doubles or once a die is used.
func (n *Node) WithDiceReverted() *Node {
	if n.roll.IsDouble() || len(n.dice) != 2 || !n.dice.AllUnused() {
		return n
	}
	r := *n
	r.dice = Dice{n.dice[1], n.dice[0]}
	return &r
}

func (n *Node) hasUnused(pip int) bool {
	for _, d := range n.dice {
		if !d.Used && d.Pip == pip {
			return true
		}
	}
	return false
}

// ChildNodeByPip moves the checker at pos with the given die. It returns nil
// when the move is illegal or cannot lead to a complete legal play.
func (n *Node) ChildNodeByPip(pos, pip int) *Node {
	if !n.hasUnused(pip) {
		return nil
	}
	next, m, ok := n.board.Move(pos, pip)
	if !ok {
		return nil
	}
	dice := n.dice.use(pip)
	used := n.used.addPip(pip)
	if used.plus(maxUsage(next, dice.Unused())) != n.best {
		return nil
	}

	moves := make([]Move, len(n.moves), len(n.moves)+1)
	copy(moves, n.moves)
	return &Node{
		board: next,
		roll:  n.roll,
		dice:  dice,
		moves: append(moves, m),
		used:  used,
		best:  n.best,
	}
}

// ChildNode moves the checker at pos by the first unused die, in dice order,
// that gives a legal continuation.
func (n *Node) ChildNode(pos int) *Node {
	var tried [7]bool
	for _, d := range n.dice {
		if d.Used || tried[d.Pip] {
			continue
		}
		tried[d.Pip] = true
		if c := n.ChildNodeByPip(pos, d.Pip); c != nil {
			return c
		}
	}
	return nil
}

// Children returns every legal single-move continuation, by ascending source
// position then dice order.
func (n *Node) Children() []*Node {
	if n.IsCommitReady() {
		return nil
	}
	var out []*Node
	for from := BarPos; from <= 24; from++ {
		if n.board.points[from] <= 0 {
			continue
		}
		var tried [7]bool
		for _, d := range n.dice {
			if d.Used || tried[d.Pip] {
				continue
			}
			tried[d.Pip] = true
			if c := n.ChildNodeByPip(from, d.Pip); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

type leafKey struct {
	board  BoardState
	unused [4]int
}

func keyOf(n *Node) leafKey {
	k := leafKey{board: n.board}
	copy(k.unused[:], n.dice.Unused())
	return k
}

// Leaves returns the complete plays reachable from n, one per distinct
// resulting position.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	seenLeaf := make(map[BoardState]bool)
	visited := make(map[leafKey]bool)

	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.IsCommitReady() {
			if !seenLeaf[cur.board] {
				seenLeaf[cur.board] = true
				leaves = append(leaves, cur)
			}
			return
		}
		k := keyOf(cur)
		if visited[k] {
			return
		}
		visited[k] = true
		for _, c := range cur.Children() {
			walk(c)
		}
	}
	walk(n)
	return leaves
}

func lastTo(n *Node) int {
	return n.moves[len(n.moves)-1].To
}

// MakePoint looks for two moves that both land on the empty or
// opponent-blot point pos.
func (n *Node) MakePoint(pos int) *Node {
	if pos < 1 || pos > 24 || n.board.points[pos] > 0 {
		return nil
	}
	for _, first := range n.Children() {
		if lastTo(first) != pos {
			continue
		}
		for _, second := range first.Children() {
			if lastTo(second) == pos && second.board.points[pos] >= 2 {
				return second
			}
		}
	}
	return nil
}

// MakeLeap looks for the shallowest continuation in which a single checker
// moves one or more times and ends on pos. pos may be BearOffPos.
func (n *Node) MakeLeap(pos int) *Node {
	if pos < 1 || pos > BearOffPos {
		return nil
	}
	frontier := n.Children()
	for len(frontier) > 0 {
		for _, c := range frontier {
			if lastTo(c) == pos {
				return c
			}
		}
		var next []*Node
		for _, c := range frontier {
			at := lastTo(c)
			if at == BearOffPos {
				continue
			}
			for _, gc := range c.Children() {
				if gc.moves[len(gc.moves)-1].From == at {
					next = append(next, gc)
				}
			}
		}
		frontier = next
	}
	return nil
}
