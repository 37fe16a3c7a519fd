// Package server exposes the analysis features over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/analysis"
	"github.com/spacesedan/reviewlens/internal/apperr"
	"github.com/spacesedan/reviewlens/internal/models"
)

var analysisCounter *prometheus.CounterVec

func init() {
	analysisCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewlens_analyses_total",
			Help: "Total number of analysis requests by model and outcome.",
		},
		[]string{"model", "outcome"},
	)
	prometheus.MustRegister(analysisCounter)
}

const fallbackPage = `<html><body><h1>Configuration Error</h1><p>index.html not found.</p></body></html>`

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP server until ctx is canceled or the listener fails,
// then drains in-flight requests before returning.
func Serve(ctx context.Context, httpServer *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("[Server] Shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

type Server struct {
	cfg *config.Config
	svc *analysis.Service
}

func New(cfg *config.Config, svc *analysis.Service) *Server {
	return &Server{cfg: cfg, svc: svc}
}

// Router wires every route of the public surface.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleHomepage)
	router.Static("/static", s.cfg.StaticDir)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/analyze-vader/", func(c *gin.Context) {
		s.handleAnalysis(c, "VADER", s.svc.AnalyzeLexicon)
	})
	router.POST("/analyze-huggingface/", func(c *gin.Context) {
		s.handleAnalysis(c, "Hugging Face", s.svc.AnalyzeNeural)
	})
	router.POST("/analyze-topwords/", s.handleTopWords)

	return router
}

func (s *Server) handleAnalysis(c *gin.Context, model string, run func(analysis.Input) (*models.AnalysisResponse, error)) {
	file, err := s.formFile(c)
	if err != nil {
		s.fail(c, model, err)
		return
	}

	in, err := analysis.ResolveDocument(c.PostForm("text_input"), file)
	if err != nil {
		s.fail(c, model, err)
		return
	}

	resp, err := run(in)
	if err != nil {
		s.fail(c, model, err)
		return
	}

	analysisCounter.WithLabelValues(model, "success").Inc()
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTopWords(c *gin.Context) {
	const model = "NLTK"

	file, err := s.formFile(c)
	if err != nil {
		s.fail(c, model, err)
		return
	}

	in, err := analysis.ResolveText(c.PostForm("text_input"), file)
	if err != nil {
		s.fail(c, model, err)
		return
	}

	resp, err := s.svc.Keywords(in)
	if err != nil {
		s.fail(c, model, err)
		return
	}

	analysisCounter.WithLabelValues(model, "success").Inc()
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHomepage(c *gin.Context) {
	page, err := os.ReadFile(filepath.Join(s.cfg.StaticDir, "index.html"))
	if err != nil {
		slog.Error("[Server] Homepage asset missing", slog.String("error", err.Error()))
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(fallbackPage))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// formFile reads the optional file_input field. A missing field is not an
// error; an unreadable or oversized one is.
func (s *Server) formFile(c *gin.Context) (*analysis.FileUpload, error) {
	header, err := c.FormFile("file_input")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindClientInput, "Could not read uploaded file.", err)
	}
	if s.cfg.MaxUploadBytes > 0 && header.Size > s.cfg.MaxUploadBytes {
		return nil, apperr.Clientf("File too large. Limit is %d bytes.", s.cfg.MaxUploadBytes)
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindClientInput, "Could not read uploaded file.", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindClientInput, "Could not read uploaded file.", err)
	}
	return &analysis.FileUpload{Filename: header.Filename, Data: data}, nil
}

func (s *Server) fail(c *gin.Context, model string, err error) {
	status, detail := apperr.HTTPStatus(err)
	slog.Error("[Server] Analysis request failed",
		slog.String("model", model),
		slog.Int("status", status),
		slog.String("error", err.Error()))

	analysisCounter.WithLabelValues(model, "error").Inc()
	c.JSON(status, models.ErrorEnvelope{Detail: detail})
}
