package nussinov

import (
	"context"

	"github.com/agbru/rnafold/internal/progress"
)

// Result bundles a score table with the structure reconstructed from it.
type Result struct {
	Table     *Table
	Structure *Structure
}

// Fold builds the score table for seq and reconstructs one optimal structure.
func Fold(seq Sequence, opts Options) (*Result, error) {
	return FoldContext(context.Background(), seq, opts, nil)
}

// FoldContext is Fold with cancellation and progress reporting for the fill.
func FoldContext(ctx context.Context, seq Sequence, opts Options, report progress.ProgressCallback) (*Result, error) {
	table, err := BuildScoreTableContext(ctx, seq, opts, report)
	if err != nil {
		return nil, err
	}
	st, err := Reconstruct(seq, table, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Table: table, Structure: st}, nil
}
