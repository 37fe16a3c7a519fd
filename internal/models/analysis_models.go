package models

// AnalysisResponse is the single shape every sentiment code path returns.
// For text analyses Score is the strategy score and ChartData the class
// distribution; for csv analyses Score is the processed row count and
// ChartData the per-label counts.
type AnalysisResponse struct {
	AnalysisType  string             `json:"analysis_type"`
	Model         string             `json:"model"`
	Sentiment     string             `json:"sentiment"`
	Score         float64            `json:"score"`
	ChartData     map[string]float64 `json:"chart_data"`
	ExecutionTime float64            `json:"execution_time"`
	PreviewData   [][]string         `json:"preview_data"`
	TopWords      []string           `json:"top_words,omitempty"`
	LimitInfo     string             `json:"limit_info,omitempty"`
}

// KeywordsResponse is returned by the keyword-only endpoint.
type KeywordsResponse struct {
	AnalysisType  string   `json:"analysis_type"`
	Model         string   `json:"model"`
	TopWords      []string `json:"top_words"`
	Note          string   `json:"note,omitempty"`
	ExecutionTime float64  `json:"execution_time"`
}

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Detail string `json:"detail"`
}
