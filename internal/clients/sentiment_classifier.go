// Package clients wraps the external inference backends.
package clients

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelineBackends"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/reviewlens/internal/sentiment"
)

// The tokenizer truncates anything past this many tokens.
const sentimentMaxTokens = 512

// SentimentClassifier runs a pretrained transformer sentiment model through
// an ONNX runtime session. It is loaded once at startup and read-only after.
type SentimentClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewSentimentClassifier ensures the model is present locally (downloading
// it on first start), opens the runtime session and builds the
// classification pipeline.
func NewSentimentClassifier(modelName, modelDir string) (*SentimentClassifier, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	slog.Info("[SentimentClassifier] Ensuring model is available",
		slog.String("model", modelName),
		slog.String("dir", modelDir))
	modelPath, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to download model %s: %w", modelName, err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
		Options: []pipelineBackends.PipelineOption[*pipelines.TextClassificationPipeline]{
			pipelines.WithMultiLabel(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize classification pipeline: %w", err)
	}

	slog.Info("[SentimentClassifier] Model loaded", slog.String("path", modelPath))
	return &SentimentClassifier{session: session, pipeline: pipeline}, nil
}

// Classify returns the per-class scores for a single text.
func (c *SentimentClassifier) Classify(text string) ([]sentiment.ClassScore, error) {
	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	raw := output.GetOutput()
	if len(raw) == 0 {
		return nil, fmt.Errorf("classifier produced no output")
	}
	classes, ok := raw[0].([]pipelines.ClassificationOutput)
	if !ok {
		return nil, fmt.Errorf("unexpected output format from classification pipeline")
	}

	scores := make([]sentiment.ClassScore, len(classes))
	for i, class := range classes {
		scores[i] = sentiment.ClassScore{
			Label: class.Label,
			Score: float64(class.Score),
		}
	}
	return scores, nil
}

func (c *SentimentClassifier) MaxInputTokens() int { return sentimentMaxTokens }

// Close releases the runtime session.
func (c *SentimentClassifier) Close() {
	if c.session != nil {
		c.session.Destroy()
	}
}
