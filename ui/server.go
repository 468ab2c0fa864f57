// Package ui exposes the survey analysis pipeline as a JSON API for the
// dashboard. Datasets are uploaded once, processed, and held in an
// in-memory session store; every analysis endpoint operates on a stored
// dataset addressed by id.
package ui

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/cleaner"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/config"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/testkit"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
)

// DemoDatasetID is the fixed id the demo survey is preloaded under, so
// a dashboard can render without an upload.
const DemoDatasetID = survey.DatasetID("demo")

// Server is the dashboard API server.
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	sessions *sessionStore
	cleaning cleaner.Options
}

// NewServer builds the server and registers all routes. The cleaning
// options are applied to every upload.
func NewServer(cfg *config.Config, cleaning cleaner.Options) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		cfg:      cfg,
		router:   gin.New(),
		sessions: newSessionStore(),
		cleaning: cleaning,
	}
	s.router.Use(gin.Recovery(), requestLog())
	s.registerRoutes()
	return s
}

// Router exposes the gin engine, used by tests and by custom mounting.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)

	api.POST("/datasets", s.handleUpload)
	api.GET("/datasets", s.handleListDatasets)

	ds := api.Group("/datasets/:id")
	ds.DELETE("", s.handleDeleteDataset)
	ds.GET("/summary", s.withDataset(s.handleSummary))
	ds.GET("/countries", s.withDataset(s.handleCountries))
	ds.GET("/questions", s.withDataset(s.handleQuestions))
	ds.GET("/breakdown", s.withDataset(s.handleBreakdown))
	ds.GET("/overall", s.withDataset(s.handleOverall))
	ds.GET("/distribution", s.withDataset(s.handleDistribution))
	ds.GET("/crosstab", s.withDataset(s.handleCrossTab))
	ds.GET("/statistics", s.withDataset(s.handleStatistics))
	ds.GET("/ranking", s.withDataset(s.handleRanking))
	ds.GET("/report", s.withDataset(s.handleReport))

	ds.POST("/compare", s.withDataset(s.handleCompare))
	ds.POST("/compare/difference", s.withDataset(s.handleCompareDifference))
	ds.POST("/compare/significance", s.withDataset(s.handleCompareSignificance))
	ds.POST("/compare/batch", s.withDataset(s.handleCompareBatch))
	ds.POST("/reprocess", s.withDataset(s.handleReprocess))
}

// withDataset resolves the dataset id before the handler runs. Unknown
// ids get the 404 envelope without entering the handler.
func (s *Server) withDataset(h func(*gin.Context, *processor.Processor)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := survey.DatasetID(c.Param("id"))
		p, ok := s.sessions.get(id)
		if !ok {
			notFound(c, "dataset "+id.String()+" not found")
			return
		}
		h(c, p)
	}
}

// PreloadFile processes a survey file at startup and stores it under a
// fresh dataset id.
func (s *Server) PreloadFile(path, sheet string) (survey.DatasetID, error) {
	p := processor.New(s.cleaning)
	if err := p.ProcessPipelineSheet(path, sheet); err != nil {
		return "", err
	}
	id := survey.NewDatasetID()
	s.sessions.put(id, p)
	logger.Logger.Infof("[Server] Preloaded %s as dataset %s", path, id)
	return id, nil
}

// PreloadDemo generates a synthetic survey and stores it under the fixed
// demo id.
func (s *Server) PreloadDemo() (survey.DatasetID, error) {
	table := testkit.NewSurveyGenerator(testkit.DefaultSurveyConfig()).Generate()
	data, err := testkit.CSVBytes(table)
	if err != nil {
		return "", err
	}

	p := processor.New(s.cleaning)
	if err := p.ProcessUpload(bytes.NewReader(data), "demo-survey.csv"); err != nil {
		return "", err
	}
	s.sessions.put(DemoDatasetID, p)
	logger.Logger.Infof("[Server] Demo dataset preloaded as %s", DemoDatasetID)
	return DemoDatasetID, nil
}

// Run serves until the context is cancelled, then drains connections
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Logger.Infof("[Server] Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Logger.Info("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "datasets": len(s.sessions.ids())})
}

// requestLog logs each request through the application logger rather
// than gin's own writer.
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Logger.Debugf("[Server] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
