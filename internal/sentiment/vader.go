package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/spacesedan/reviewlens/internal/apperr"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05

	vaderRowCap = 50
)

// VADER scores text with the rule-based govader engine.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Name() string { return "VADER" }

func (v *VADER) Limit() Limit {
	return Limit{MaxRows: vaderRowCap, Reason: "for comparison consistency"}
}

func (v *VADER) Score(text string) (Score, error) {
	if v == nil || v.analyzer == nil {
		return Score{}, apperr.New(apperr.KindNotReady, "VADER analyzer not loaded")
	}

	cleaned := textutil.Clean(text)
	if cleaned == "" {
		score := neutralScore()
		score.HasCompound = true
		return score, nil
	}

	polarity := v.analyzer.PolarityScores(cleaned)

	label := LabelNeutral
	switch {
	case polarity.Compound > positiveThreshold:
		label = LabelPositive
	case polarity.Compound < negativeThreshold:
		label = LabelNegative
	}

	distribution := map[Label]float64{
		LabelPositive: polarity.Positive,
		LabelNegative: polarity.Negative,
		LabelNeutral:  polarity.Neutral,
	}

	return Score{
		Label:        label,
		Confidence:   distribution[label],
		Distribution: distribution,
		Compound:     polarity.Compound,
		HasCompound:  true,
	}, nil
}
