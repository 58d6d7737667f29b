package nussinov

import (
	"fmt"
	"slices"
	"strings"
)

// Pair is a base pair (I, J) with I < J.
type Pair struct {
	I, J int
}

// String formats the pair as "(i, j)".
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}

// Pairing is a set of base pairs in emission order.
type Pairing []Pair

// Validate checks the pairing against a sequence of length n: every pair has
// 0 <= i < j < n, no index is shared, and no two pairs cross.
func (p Pairing) Validate(n int) error {
	partner := make([]int, n)
	for i := range partner {
		partner[i] = -1
	}
	for _, pr := range p {
		if pr.I < 0 || pr.J >= n || pr.I >= pr.J {
			return fmt.Errorf("pair %v out of range for length %d", pr, n)
		}
		if partner[pr.I] >= 0 || partner[pr.J] >= 0 {
			return fmt.Errorf("pair %v reuses a paired position", pr)
		}
		partner[pr.I], partner[pr.J] = pr.J, pr.I
	}
	// Non-crossing: closing partners must match a stack of openers.
	stack := make([]int, 0, len(p))
	for i, j := range partner {
		switch {
		case j < 0:
		case j > i:
			stack = append(stack, i)
		default:
			if len(stack) == 0 || stack[len(stack)-1] != j {
				return fmt.Errorf("pair (%d, %d) crosses another pair", j, i)
			}
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// Contains reports whether (i, j) is in the pairing.
func (p Pairing) Contains(i, j int) bool {
	return slices.Contains(p, Pair{I: i, J: j})
}

// Sorted returns a copy ordered by I.
func (p Pairing) Sorted() Pairing {
	out := slices.Clone(p)
	slices.SortFunc(out, func(a, b Pair) int { return a.I - b.I })
	return out
}

// DotBracket renders a pairing over a sequence of length n: '(' at each I,
// ')' at each J and '.' elsewhere.
func DotBracket(n int, p Pairing) string {
	b := []byte(strings.Repeat(".", n))
	for _, pr := range p {
		b[pr.I] = '('
		b[pr.J] = ')'
	}
	return string(b)
}

// ParseDotBracket recovers the pairing from a dot-bracket string. Any byte
// other than '(' and ')' is an unpaired position. The result is ordered by I.
func ParseDotBracket(s string) (Pairing, error) {
	var stack []int
	var p Pairing
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced ')' at position %d", i)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p = append(p, Pair{I: open, J: i})
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unbalanced '(' at position %d", stack[len(stack)-1])
	}
	return p.Sorted(), nil
}

// PairingScore sums the pair scores of p over seq.
func PairingScore(seq Sequence, p Pairing, s Scoring) int {
	total := 0
	for _, pr := range p {
		total += s.pairScoreAt(seq, pr.I, pr.J)
	}
	return total
}

// Cell addresses one table cell.
type Cell struct {
	I, J int
}

// Structure is one optimal secondary structure.
type Structure struct {
	// Pairs in the order traceback emitted them.
	Pairs Pairing
	// Bracket is the dot-bracket rendering, len == sequence length.
	Bracket string
	// Score is table cell (0, n-1).
	Score int
	// Path lists every interval traceback visited, in visiting order. Only
	// intervals with i <= j appear: the inner cell of a pair closing an
	// empty loop, such as (i+1, i) under (i, i+1), is never visited and so
	// is not outlined.
	Path []Cell
}
