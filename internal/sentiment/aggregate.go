package sentiment

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spacesedan/reviewlens/internal/apperr"
	"github.com/spacesedan/reviewlens/internal/tabular"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

// Aggregate is the accumulated outcome of scoring a tabular file.
type Aggregate struct {
	Counts        map[Label]int
	RowsProcessed int
	Truncated     bool
	LimitInfo     string
}

// AggregateRows drives a strategy over the lazy row stream, stopping
// strictly after the strategy's row cap. Rows that clean to empty are
// skipped silently; a scoring failure on one row is logged and skipped so a
// single malformed row never voids the whole file. A backend that is not
// ready aborts immediately instead.
func AggregateRows(rows *tabular.RowIter, strategy Strategy) (Aggregate, error) {
	limit := strategy.Limit()
	agg := Aggregate{
		Counts: map[Label]int{
			LabelPositive: 0,
			LabelNegative: 0,
			LabelNeutral:  0,
		},
	}

	for {
		cell, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Aggregate{}, err
		}

		if rows.Scanned() > limit.MaxRows {
			slog.Info("[Aggregator] Row cap reached, stopping scan",
				slog.String("strategy", strategy.Name()),
				slog.Int("max_rows", limit.MaxRows))
			agg.Truncated = true
			agg.LimitInfo = limit.Message()
			break
		}

		cleaned := textutil.Clean(cell)
		if cleaned == "" {
			continue
		}

		score, err := strategy.Score(cleaned)
		if err != nil {
			var appErr *apperr.Error
			if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotReady {
				return Aggregate{}, err
			}
			slog.Warn("[Aggregator] Row scoring failed, skipping",
				slog.String("strategy", strategy.Name()),
				slog.Int("row", rows.Scanned()),
				slog.String("error", err.Error()))
			continue
		}

		agg.Counts[score.Label]++
		agg.RowsProcessed++
	}

	if agg.RowsProcessed == 0 && !agg.Truncated {
		if rows.Scanned() == 0 {
			return Aggregate{}, apperr.New(apperr.KindClientInput, "CSV has no data rows.")
		}
		return Aggregate{}, apperr.New(apperr.KindClientInput, "No valid reviews processed.")
	}

	return agg, nil
}
