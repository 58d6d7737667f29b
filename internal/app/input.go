package app

import (
	"context"
	"fmt"
	"slices"

	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/seqio"
)

// readInput resolves the single sequence to fold from --sequence, --file or
// --random. Only the first non-empty record of a multi-record file is folded.
func (a *Application) readInput(ctx context.Context) (seqio.Record, error) {
	cfg := a.Config
	switch {
	case cfg.Random > 0:
		rec := seqio.RandomRecord(cfg.Random, seqio.NewRand(cfg.Seed))
		a.Logger.Debug().Int("length", cfg.Random).Uint64("seed", cfg.Seed).Msg("generated random sequence")
		return rec, nil

	case cfg.File != "":
		var (
			records []seqio.Record
			err     error
		)
		if cfg.File == "-" {
			records, err = seqio.ReadRecords(ctx, a.In)
		} else {
			records, err = seqio.ReadFile(ctx, cfg.File)
		}
		if err != nil {
			return seqio.Record{}, apperrors.ValidationError{Field: "file", Message: err.Error()}
		}
		idx := slices.IndexFunc(records, func(r seqio.Record) bool { return r.Seq.Len() > 0 })
		if idx < 0 {
			return seqio.Record{}, apperrors.ValidationError{Field: "file", Message: "every record is empty"}
		}
		if idx > 0 {
			a.Logger.Warn().
				Str("file", cfg.File).
				Int("skipped", idx).
				Msg("skipping empty records")
		}
		if len(records) > 1 {
			a.Logger.Warn().
				Str("file", cfg.File).
				Int("records", len(records)).
				Str("folded", records[idx].ID).
				Msg("input holds several records; folding the first non-empty one")
		}
		return records[idx], nil

	case cfg.Sequence != "":
		rec := seqio.FromString(cfg.Sequence)
		if rec.Seq.Len() == 0 {
			return seqio.Record{}, apperrors.ValidationError{Field: "sequence", Message: "empty after removing whitespace"}
		}
		return rec, nil
	}
	return seqio.Record{}, apperrors.NewConfigError("no input: use --sequence, --file or --random")
}

func describeInput(rec seqio.Record) string {
	return fmt.Sprintf("%s (%d nt)", rec.ID, rec.Seq.Len())
}
