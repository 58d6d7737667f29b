package nussinov

// complementary lists the pairs that can hydrogen-bond: Watson-Crick A-U and
// G-C, and the G·U wobble pair, in both orientations.
var complementary = [256][256]bool{
	'A': {'U': true},
	'U': {'A': true, 'G': true},
	'G': {'C': true, 'U': true},
	'C': {'G': true},
}

// IsComplementary reports whether symbols a and b form a complementary pair.
// The relation is symmetric.
func IsComplementary(a, b byte) bool {
	return complementary[a][b]
}

// Scoring holds the values awarded to paired positions.
type Scoring struct {
	// Match is awarded when the paired symbols are complementary.
	Match int
	// Mismatch is awarded when they are not.
	Mismatch int
}

// DefaultScoring returns match=1, mismatch=0.
func DefaultScoring() Scoring {
	return Scoring{Match: DefaultMatchScore, Mismatch: DefaultMismatchScore}
}

// PairScore returns the score for pairing symbols a and b.
func (s Scoring) PairScore(a, b byte) int {
	if IsComplementary(a, b) {
		return s.Match
	}
	return s.Mismatch
}

// pairScoreAt returns the score for pairing positions i and j of seq.
func (s Scoring) pairScoreAt(seq Sequence, i, j int) int {
	return s.PairScore(seq[i], seq[j])
}
