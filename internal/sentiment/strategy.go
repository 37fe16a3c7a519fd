// Package sentiment holds the two scoring strategies and the batch
// aggregation that drives them over tabular input.
package sentiment

import "fmt"

// Label is a sentiment class.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
	LabelUnknown  Label = "Unknown"
)

// Score is the result of scoring a single text. Distribution always carries
// Positive, Negative and Neutral and sums to 1. Compound is the lexicon
// engine's raw polarity in [-1,1]; HasCompound marks strategies that report
// it, so response assembly knows which number to surface as the score.
type Score struct {
	Label        Label
	Confidence   float64
	Distribution map[Label]float64
	Compound     float64
	HasCompound  bool
}

// neutralScore is the shared short-circuit for empty normalized text.
// Neither backend is defined on empty input.
func neutralScore() Score {
	return Score{
		Label:      LabelNeutral,
		Confidence: 0.5,
		Distribution: map[Label]float64{
			LabelPositive: 0.0,
			LabelNegative: 0.0,
			LabelNeutral:  1.0,
		},
	}
}

// Limit is a strategy's per-file row budget.
type Limit struct {
	MaxRows int
	Reason  string
}

// Message renders the human-readable truncation notice.
func (l Limit) Message() string {
	return fmt.Sprintf("Analysis limited to the first %d rows %s.", l.MaxRows, l.Reason)
}

// Strategy maps a normalized string to a Score. Implementations are
// immutable after construction and safe for concurrent use.
type Strategy interface {
	Name() string
	Score(text string) (Score, error)
	Limit() Limit
}
