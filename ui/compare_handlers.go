package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/compare"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
)

type compareRequest struct {
	Question             string   `json:"question" binding:"required"`
	Countries            []string `json:"countries"`
	ShowCounts           bool     `json:"show_counts"`
	ExcludeNotApplicable bool     `json:"exclude_na"`
}

// handleCompare builds the side-by-side percentage table for one
// question across the requested countries.
func (s *Server) handleCompare(c *gin.Context, p *processor.Processor) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	table, countryColumn, ok := tableAndCountry(c, p)
	if !ok {
		return
	}

	result, err := compare.SideBySide(table, countryColumn, req.Question, req.Countries,
		compare.SideBySideOptions{
			ShowCounts:           req.ShowCounts,
			ExcludeNotApplicable: req.ExcludeNotApplicable,
		})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type pairRequest struct {
	Question string `json:"question" binding:"required"`
	Country1 string `json:"country1" binding:"required"`
	Country2 string `json:"country2" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

func (s *Server) handleCompareDifference(c *gin.Context, p *processor.Processor) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	table, countryColumn, ok := tableAndCountry(c, p)
	if !ok {
		return
	}

	result, err := compare.Difference(table, countryColumn, req.Question,
		req.Country1, req.Country2, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCompareSignificance(c *gin.Context, p *processor.Processor) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	table, countryColumn, ok := tableAndCountry(c, p)
	if !ok {
		return
	}

	result, err := compare.Significance(table, countryColumn, req.Question,
		req.Country1, req.Country2, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type batchRequest struct {
	Questions  []string `json:"questions" binding:"required"`
	Countries  []string `json:"countries"`
	FocusValue string   `json:"focus_value"`
}

// handleCompareBatch compares many questions at once, reporting one
// percentage per (question, country) for the focus value.
func (s *Server) handleCompareBatch(c *gin.Context, p *processor.Processor) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	table, countryColumn, ok := tableAndCountry(c, p)
	if !ok {
		return
	}

	result, err := compare.CompareMany(table, countryColumn, req.Questions, req.Countries, req.FocusValue)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleReport renders the comparison report for one question, returning
// the plain-text layout alongside its HTML rendering:
// GET .../report?question=Q&countries=India,Nigeria.
func (s *Server) handleReport(c *gin.Context, p *processor.Processor) {
	question := c.Query("question")
	if question == "" {
		badRequest(c, "question query parameter is required")
		return
	}
	countries := queryList(c, "countries")

	table, countryColumn, ok := tableAndCountry(c, p)
	if !ok {
		return
	}

	text, err := compare.TextReport(table, countryColumn, question, countries)
	if err != nil {
		writeError(c, err)
		return
	}
	html, err := compare.HTMLReport(table, countryColumn, question, countries)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":  question,
		"countries": countries,
		"text":      text,
		"html":      string(html),
	})
}

// tableAndCountry unpacks the processor state every comparison endpoint
// needs, writing the error envelope on failure.
func tableAndCountry(c *gin.Context, p *processor.Processor) (*survey.Table, string, bool) {
	t, err := p.Table()
	if err != nil {
		writeError(c, err)
		return nil, "", false
	}
	col, err := p.CountryColumn()
	if err != nil {
		writeError(c, err)
		return nil, "", false
	}
	return t, col, true
}
