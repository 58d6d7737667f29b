package nussinov

// Sequence is an ordered, immutable run of nucleotide symbols. Symbols outside
// {A, U, G, C} are accepted and simply never score as complementary.
type Sequence []byte

// NewSequence copies s into a Sequence without transforming it.
func NewSequence(s string) Sequence {
	return Sequence(s)
}

// Len returns the number of symbols.
func (s Sequence) Len() int { return len(s) }

// String returns the symbols as a string.
func (s Sequence) String() string { return string(s) }

// At returns the symbol at position i.
func (s Sequence) At(i int) byte { return s[i] }
