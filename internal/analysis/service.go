// Package analysis orchestrates the per-request flow: input shape dispatch,
// scoring, aggregation, keyword attachment and response assembly.
package analysis

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/spacesedan/reviewlens/internal/apperr"
	"github.com/spacesedan/reviewlens/internal/keywords"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/sentiment"
	"github.com/spacesedan/reviewlens/internal/tabular"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

// keywordsModel is the tokenizer label the frontend displays for the
// keyword-only feature.
const keywordsModel = "NLTK"

// Service holds the immutable per-process analysis context. It is built
// once at startup and shared read-only across concurrent requests.
type Service struct {
	lexicon   sentiment.Strategy
	neural    sentiment.Strategy
	extractor *keywords.Extractor
}

func NewService(lexicon, neural sentiment.Strategy, extractor *keywords.Extractor) *Service {
	return &Service{lexicon: lexicon, neural: neural, extractor: extractor}
}

// AnalyzeLexicon runs single-model analysis with the rule-based scorer.
func (s *Service) AnalyzeLexicon(in Input) (*models.AnalysisResponse, error) {
	return s.analyze(s.lexicon, in)
}

// AnalyzeNeural runs single-model analysis with the transformer scorer.
func (s *Service) AnalyzeNeural(in Input) (*models.AnalysisResponse, error) {
	return s.analyze(s.neural, in)
}

func (s *Service) analyze(strategy sentiment.Strategy, in Input) (*models.AnalysisResponse, error) {
	start := time.Now()
	resp := &models.AnalysisResponse{Model: strategy.Name()}

	// fullText feeds keyword extraction and is always the undecorated
	// original content, not the scored subset.
	var fullText string

	switch in.Kind {
	case KindText:
		fullText = in.Text
		if err := scoreInto(resp, strategy, textutil.Clean(in.Text)); err != nil {
			return nil, err
		}

	case KindTxtFile:
		decoded, err := textutil.Decode(in.Data)
		if err != nil {
			return nil, err
		}
		fullText = decoded
		if err := scoreInto(resp, strategy, textutil.FlattenDocument(decoded)); err != nil {
			return nil, err
		}

	case KindCsvFile:
		decoded, err := textutil.Decode(in.Data)
		if err != nil {
			return nil, err
		}
		fullText = decoded

		resp.PreviewData = tabular.BuildPreview(in.Data)
		doc, err := tabular.Parse(in.Data)
		if err != nil {
			return nil, err
		}
		agg, err := sentiment.AggregateRows(doc.Rows(), strategy)
		if err != nil {
			return nil, err
		}

		resp.AnalysisType = "csv"
		resp.Sentiment = "Summary"
		resp.Score = float64(agg.RowsProcessed)
		resp.ChartData = countChart(agg.Counts)
		resp.LimitInfo = agg.LimitInfo
	}

	switch result := s.extractor.Top(fullText, keywords.DefaultTopN); result.Status {
	case keywords.StatusOK:
		resp.TopWords = result.Words
	case keywords.StatusUnavailable:
		slog.Warn("[Orchestrator] Keyword extractor unavailable, omitting top words",
			slog.String("model", strategy.Name()))
	}

	resp.ExecutionTime = roundSeconds(time.Since(start))
	return resp, nil
}

// Keywords runs the keyword-only feature over text or any decodable file.
func (s *Service) Keywords(in Input) (*models.KeywordsResponse, error) {
	var content string
	switch in.Kind {
	case KindText:
		content = in.Text
	default:
		decoded, err := textutil.Decode(in.Data)
		if err != nil {
			return nil, err
		}
		content = decoded
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.New(apperr.KindClientInput, "Input text empty.")
	}

	start := time.Now()
	result := s.extractor.Top(content, keywords.KeywordsTopN)
	if result.Status == keywords.StatusUnavailable {
		return nil, apperr.New(apperr.KindResourceMissing, "stopword set not loaded")
	}

	resp := &models.KeywordsResponse{
		AnalysisType:  "top_words",
		Model:         keywordsModel,
		TopWords:      result.Words,
		ExecutionTime: roundSeconds(time.Since(start)),
	}
	if resp.TopWords == nil {
		resp.TopWords = []string{}
	}
	if result.Status == keywords.StatusNoKeywords {
		resp.Note = "No significant keywords found."
	}
	return resp, nil
}

func scoreInto(resp *models.AnalysisResponse, strategy sentiment.Strategy, cleaned string) error {
	score, err := strategy.Score(cleaned)
	if err != nil {
		return err
	}

	chart := make(map[string]float64, len(score.Distribution)+1)
	for label, value := range score.Distribution {
		chart[string(label)] = value
	}

	resp.AnalysisType = "text"
	resp.Sentiment = string(score.Label)
	resp.Score = score.Confidence
	if score.HasCompound {
		resp.Score = score.Compound
		chart["Compound"] = score.Compound
	}
	resp.ChartData = chart
	return nil
}

func countChart(counts map[sentiment.Label]int) map[string]float64 {
	chart := make(map[string]float64, len(counts))
	for label, count := range counts {
		chart[string(label)] = float64(count)
	}
	return chart
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10000) / 10000
}
