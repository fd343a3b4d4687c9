// Package ingest converts raw per-game tuples into validated GameRecords.
// Malformed games are skipped with an explicit error value, never by
// aborting the batch.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/enginelab/crosstable/internal/domain/model"
)

// Validate converts one raw tuple into a GameRecord. A tuple whose result
// is not one of the three literal PGN outcomes fails with ErrInvalidResult;
// an unparsable date is stored as absent, not an error.
func Validate(raw model.RawGame) (model.GameRecord, error) {
	result := model.Result(raw.Result)
	if !result.Valid() {
		return model.GameRecord{}, fmt.Errorf("%w: %q", ErrInvalidResult, raw.Result)
	}

	rec := model.GameRecord{
		White:       raw.White,
		Black:       raw.Black,
		Result:      result,
		Tournament:  raw.Tournament,
		Termination: raw.Termination,
		Opening:     raw.Opening,
		ECO:         raw.ECO,
	}
	if d, err := time.Parse(model.DateLayout, strings.TrimSpace(raw.Date)); err == nil {
		rec.Date = d
	}
	return rec, nil
}

// Skipped describes one rejected tuple, kept for diagnostics.
type Skipped struct {
	Index int
	Raw   model.RawGame
	Err   error
}

// Ingest validates a sequence of raw tuples, preserving input order for the
// valid records. One bad record never aborts the batch.
func Ingest(raws []model.RawGame) ([]model.GameRecord, []Skipped) {
	records := make([]model.GameRecord, 0, len(raws))
	var skipped []Skipped
	for i, raw := range raws {
		rec, err := Validate(raw)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Raw: raw, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}
