package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
)

const maxUploadSize = 50 * 1024 * 1024

// handleUpload accepts a multipart survey export, runs the pipeline,
// and stores the result under a fresh dataset id.
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		badRequest(c, "file exceeds the 50MB upload limit")
		return
	}

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".xlsx") {
		badRequest(c, "only .csv and .xlsx files are supported")
		return
	}

	p := processor.New(s.cleaning)
	if err := p.ProcessUpload(file, header.Filename); err != nil {
		logger.Logger.Warnf("[Server] Upload %q failed: %v", header.Filename, err)
		writeError(c, err)
		return
	}

	id := survey.NewDatasetID()
	s.sessions.put(id, p)

	summary, err := p.Summary()
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Logger.Infof("[Server] Upload %q stored as dataset %s (%d rows)",
		header.Filename, id, summary.CleanedRows)

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"summary": summary,
	})
}

func (s *Server) handleListDatasets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": s.sessions.ids()})
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	id := survey.DatasetID(c.Param("id"))
	if !s.sessions.remove(id) {
		notFound(c, "dataset "+id.String()+" not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) handleSummary(c *gin.Context, p *processor.Processor) {
	summary, err := p.Summary()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleCountries(c *gin.Context, p *processor.Processor) {
	countries, err := p.Countries()
	if err != nil {
		writeError(c, err)
		return
	}
	counts, err := p.NationalityCounts()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries, "counts": counts})
}

func (s *Server) handleQuestions(c *gin.Context, p *processor.Processor) {
	questions, err := p.QuestionColumns(true)
	if err != nil {
		writeError(c, err)
		return
	}
	categories, err := p.CategorizedQuestions()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "categories": categories})
}

// handleBreakdown returns the per-country percentage breakdown of one
// question: GET .../breakdown?column=Q&exclude_na=true.
func (s *Server) handleBreakdown(c *gin.Context, p *processor.Processor) {
	column := c.Query("column")
	if column == "" {
		badRequest(c, "column query parameter is required")
		return
	}

	opts := calc.DefaultOptions()
	opts.ExcludeNotApplicable = queryBool(c, "exclude_na")

	rows, err := p.NationalityPercentages(column, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": column, "rows": rows})
}

// handleOverall returns the ungrouped distribution of one question.
func (s *Server) handleOverall(c *gin.Context, p *processor.Processor) {
	column := c.Query("column")
	if column == "" {
		badRequest(c, "column query parameter is required")
		return
	}

	table, err := p.Table()
	if err != nil {
		writeError(c, err)
		return
	}
	opts := calc.DefaultOptions()
	opts.ExcludeNotApplicable = queryBool(c, "exclude_na")

	values, err := calc.OverallPercentage(table, column, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": column, "values": values})
}

// handleDistribution returns the country x response pivot for one
// question. counts=true returns raw counts instead of row percentages.
func (s *Server) handleDistribution(c *gin.Context, p *processor.Processor) {
	column := c.Query("column")
	if column == "" {
		badRequest(c, "column query parameter is required")
		return
	}

	table, err := p.Table()
	if err != nil {
		writeError(c, err)
		return
	}
	countryColumn, err := p.CountryColumn()
	if err != nil {
		writeError(c, err)
		return
	}

	pivot, err := calc.ResponseDistribution(table, countryColumn, column, !queryBool(c, "counts"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pivot)
}

// handleCrossTab builds an arbitrary two-column pivot, optionally scoped
// to a country subset: GET .../crosstab?row=A&col=B&countries=India,Nigeria.
func (s *Server) handleCrossTab(c *gin.Context, p *processor.Processor) {
	rowColumn := c.Query("row")
	colColumn := c.Query("col")
	if rowColumn == "" || colColumn == "" {
		badRequest(c, "row and col query parameters are required")
		return
	}

	table, err := p.Table()
	if err != nil {
		writeError(c, err)
		return
	}
	countryColumn, err := p.CountryColumn()
	if err != nil {
		writeError(c, err)
		return
	}

	pivot, err := calc.FilteredCrossTabulation(table, countryColumn, queryList(c, "countries"),
		rowColumn, colColumn, !queryBool(c, "counts"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pivot)
}

// handleStatistics summarizes a numeric column per country. With stat=
// set it returns just that statistic for each country.
func (s *Server) handleStatistics(c *gin.Context, p *processor.Processor) {
	column := c.Query("column")
	if column == "" {
		badRequest(c, "column query parameter is required")
		return
	}

	table, err := p.Table()
	if err != nil {
		writeError(c, err)
		return
	}
	countryColumn, err := p.CountryColumn()
	if err != nil {
		writeError(c, err)
		return
	}

	if stat := c.Query("stat"); stat != "" {
		values, err := calc.CountryStatistics(table, countryColumn, column, stat)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"column": column, "statistic": stat, "values": values})
		return
	}

	summary, err := calc.CountryStatisticsSummary(table, countryColumn, column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": column, "summary": summary})
}

// handleRanking ranks importance-factor questions by their combined
// top-two rating share: GET .../ranking?columns=a,b,c&countries=India.
func (s *Server) handleRanking(c *gin.Context, p *processor.Processor) {
	columns := queryList(c, "columns")
	if len(columns) == 0 {
		badRequest(c, "columns query parameter is required")
		return
	}

	table, err := p.Table()
	if err != nil {
		writeError(c, err)
		return
	}
	countryColumn, err := p.CountryColumn()
	if err != nil {
		writeError(c, err)
		return
	}

	factors, err := calc.RankImportanceFactors(table, countryColumn, columns, queryList(c, "countries"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"factors": factors})
}

// handleReprocess re-cleans the retained raw upload with new options, so
// the dashboard can flip cleaning toggles without a second upload.
func (s *Server) handleReprocess(c *gin.Context, p *processor.Processor) {
	var req struct {
		NormalizeCountries *bool    `json:"normalize_countries"`
		NormalizeRatings   *bool    `json:"normalize_ratings"`
		RemoveEmptyRows    *bool    `json:"remove_empty_rows"`
		RemoveTestRows     *bool    `json:"remove_test_rows"`
		EmptyThreshold     *float64 `json:"empty_threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	opts := s.cleaning
	if req.NormalizeCountries != nil {
		opts.NormalizeCountries = *req.NormalizeCountries
	}
	if req.NormalizeRatings != nil {
		opts.NormalizeRatings = *req.NormalizeRatings
	}
	if req.RemoveEmptyRows != nil {
		opts.RemoveEmptyRows = *req.RemoveEmptyRows
	}
	if req.RemoveTestRows != nil {
		opts.RemoveTestRows = *req.RemoveTestRows
	}
	if req.EmptyThreshold != nil {
		opts.EmptyThreshold = *req.EmptyThreshold
	}

	if err := p.Reprocess(opts); err != nil {
		writeError(c, err)
		return
	}

	summary, err := p.Summary()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.DefaultQuery(key, "false"))
	return err == nil && v
}

// queryList splits a comma-separated query parameter, dropping empty
// entries so "a,,b" and "" behave sensibly.
func queryList(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
