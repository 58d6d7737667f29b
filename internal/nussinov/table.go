package nussinov

// Table is the n×n score table. Cell (i, j) with i <= j holds the best pairing
// score for positions i..j. Storage is a flat row-major slice; cells below the
// diagonal are never written and read as zero.
//
// A Table is written only by the builder that created it and is read-only
// afterwards, so it may be shared between goroutines once returned.
type Table struct {
	n     int
	cells []int
}

// newTable allocates a zeroed n×n table.
func newTable(n int) *Table {
	return &Table{n: n, cells: make([]int, n*n)}
}

// Size returns n, the side of the table.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return t.n
}

// At returns cell (i, j). Any reference with i >= j, or outside the table,
// contributes 0; the recurrence relies on this for its base cases.
func (t *Table) At(i, j int) int {
	if i >= j || i < 0 || j >= t.n {
		return 0
	}
	return t.cells[i*t.n+j]
}

// set writes cell (i, j). Only builders call it.
func (t *Table) set(i, j, v int) {
	t.cells[i*t.n+j] = v
}

// Score returns the optimum for the whole sequence, cell (0, n-1).
// Empty and single-symbol tables score 0.
func (t *Table) Score() int {
	if t.Size() == 0 {
		return 0
	}
	return t.At(0, t.n-1)
}

// Bytes returns the memory footprint of the cell storage: n² × CellSize.
func (t *Table) Bytes() uint64 {
	return TableBytes(t.Size())
}

// TableBytes returns the cell storage needed for a sequence of length n.
func TableBytes(n int) uint64 {
	return uint64(n) * uint64(n) * CellSize
}

// Rows returns a copy of the table as a slice of rows, for rendering.
func (t *Table) Rows() [][]int {
	n := t.Size()
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, n)
		copy(rows[i], t.cells[i*n:(i+1)*n])
	}
	return rows
}

// Equal reports whether two tables have the same size and cell values.
func (t *Table) Equal(other *Table) bool {
	if t.Size() != other.Size() {
		return false
	}
	if t.Size() == 0 {
		return true
	}
	for i := range t.cells {
		if t.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
