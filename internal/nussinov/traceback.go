package nussinov

import "fmt"

// Reconstruct walks a finished table and returns one optimal structure.
//
// table must have been built from seq with the same opts. Starting at
// (0, n-1), each interval is explained by the first branch that reproduces
// its stored value: i unpaired, j unpaired, (i, j) paired, then the first
// split point k. The walk uses an explicit stack, so deep tables cannot
// exhaust the goroutine stack; the left half of a split is visited first and
// pairs come out in the same order as a recursive walk would emit them.
func Reconstruct(seq Sequence, table *Table, opts Options) (*Structure, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := seq.Len()
	if table.Size() != n {
		return nil, fmt.Errorf("%w: table size %d, sequence length %d", ErrInconsistentTable, table.Size(), n)
	}

	s := &Structure{Score: table.Score()}
	if n == 0 {
		return s, nil
	}

	scoring := opts.Scoring()
	stack := []Cell{{I: 0, J: n - 1}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j := c.I, c.J
		if i > j {
			continue
		}
		s.Path = append(s.Path, c)
		if i == j {
			continue
		}

		v := table.At(i, j)
		switch {
		case v == table.At(i+1, j):
			stack = append(stack, Cell{I: i + 1, J: j})
		case v == table.At(i, j-1):
			stack = append(stack, Cell{I: i, J: j - 1})
		case j-i > opts.MinLoopLength && v == table.At(i+1, j-1)+scoring.pairScoreAt(seq, i, j):
			s.Pairs = append(s.Pairs, Pair{I: i, J: j})
			stack = append(stack, Cell{I: i + 1, J: j - 1})
		default:
			k := splitPoint(table, i, j, v)
			if k < 0 {
				return nil, &TracebackError{I: i, J: j, Value: v}
			}
			// Right half first so the left half is popped next.
			stack = append(stack, Cell{I: k + 1, J: j}, Cell{I: i, J: k})
		}
	}

	s.Bracket = DotBracket(n, s.Pairs)
	return s, nil
}

// splitPoint returns the first k in [i, j) with dp[i][k] + dp[k+1][j] == v,
// or -1.
func splitPoint(t *Table, i, j, v int) int {
	for k := i; k < j; k++ {
		if t.At(i, k)+t.At(k+1, j) == v {
			return k
		}
	}
	return -1
}
