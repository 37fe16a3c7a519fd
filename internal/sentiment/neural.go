package sentiment

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/spacesedan/reviewlens/internal/apperr"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

const neuralRowCap = 20

// ClassScore is one class probability as reported by a classifier backend.
type ClassScore struct {
	Label string
	Score float64
}

// Classifier is the neural backend contract. The production implementation
// wraps an ONNX pipeline; tests substitute fakes.
type Classifier interface {
	Classify(text string) ([]ClassScore, error)
	MaxInputTokens() int
}

// Neural scores text with a pretrained transformer classifier. The neural
// path is far more expensive per row than the lexicon one, hence the
// tighter row cap.
type Neural struct {
	classifier Classifier
}

func NewNeural(classifier Classifier) *Neural {
	return &Neural{classifier: classifier}
}

func (n *Neural) Name() string { return "Hugging Face" }

func (n *Neural) Limit() Limit {
	return Limit{MaxRows: neuralRowCap, Reason: "for performance"}
}

func (n *Neural) Score(text string) (Score, error) {
	if n == nil || n.classifier == nil {
		return Score{}, apperr.New(apperr.KindNotReady, "transformer model not loaded")
	}

	cleaned := textutil.Clean(text)
	if cleaned == "" {
		return neutralScore(), nil
	}

	classes, err := n.classifier.Classify(truncateTokens(cleaned, n.classifier.MaxInputTokens()))
	if err != nil {
		return Score{}, err
	}
	if len(classes) == 0 {
		return Score{}, apperr.New(apperr.KindInternal, "classifier returned no classes")
	}

	raw := make([]float64, len(classes))
	for i, c := range classes {
		raw[i] = c.Score
	}
	// The pipeline reports independent per-class scores; renormalize so the
	// distribution sums to 1.
	if sum := floats.Sum(raw); sum > 0 {
		floats.Scale(1/sum, raw)
	}

	distribution := map[Label]float64{
		LabelPositive: 0.0,
		LabelNegative: 0.0,
		LabelNeutral:  0.0,
	}
	best := 0
	for i, c := range classes {
		distribution[canonicalLabel(c.Label)] += raw[i]
		if raw[i] > raw[best] {
			best = i
		}
	}

	return Score{
		Label:        canonicalLabel(classes[best].Label),
		Confidence:   raw[best],
		Distribution: distribution,
	}, nil
}

// canonicalLabel folds whatever label set the backend declares onto the
// three expected classes; anything unrecognized counts as Unknown.
func canonicalLabel(raw string) Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "pos":
		return LabelPositive
	case "negative", "neg":
		return LabelNegative
	case "neutral", "neu":
		return LabelNeutral
	default:
		return LabelUnknown
	}
}

func truncateTokens(text string, max int) string {
	if max <= 0 {
		return text
	}
	fields := strings.Fields(text)
	if len(fields) <= max {
		return text
	}
	return strings.Join(fields[:max], " ")
}
