// Package api serves the JSON risk and insight endpoints.
package api

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/models"
)

type Handler struct {
	analyzer *analysis.Analyzer
}

func NewHandler(analyzer *analysis.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// Register mounts the API routes. Other methods on these paths answer 405.
func (h *Handler) Register(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		errorResponse(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/analyze-risk", h.AnalyzeRisk)
	api.POST("/explore-insights", h.ExploreInsights)
	api.POST("/invest-insights", h.InvestInsights)
	api.POST("/pathways-insights", h.PathwaysInsights)
	api.POST("/pathway-insights", h.PathwayInsights)
	api.POST("/explore-score", h.ExploreScore)
	api.POST("/invest-score", h.InvestScore)
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func jsonResponse(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// fail maps err to a status, logs server-side failures with their details
// and writes the client-facing message.
func fail(c *gin.Context, err error, generic string) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.From(c.Request.Context()).Error(generic, logging.ErrAttrs(err)...)
	}
	errorResponse(c, status, clientMessage(err, generic))
}

// bind decodes the JSON body into dst, answering 400 on malformed input.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logging.From(c.Request.Context()).Warn("invalid request body", "error", err.Error())
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

type profileBody struct {
	JobTitle    string `json:"jobTitle"`
	AgeRange    string `json:"ageRange"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Region      string `json:"region"`
}

func (b profileBody) profile() models.Profile {
	return models.Profile{
		JobTitle:    b.JobTitle,
		AgeRange:    b.AgeRange,
		Industry:    b.Industry,
		CompanySize: b.CompanySize,
		Region:      b.Region,
	}
}

// scoredBody is a profile plus the score from an earlier analysis. Browsers
// may send the score as a float, so it is rounded here.
type scoredBody struct {
	profileBody
	RiskScore *float64 `json:"riskScore"`
	RiskTier  string   `json:"riskTier"`
}

func (b scoredBody) score() *int {
	if b.RiskScore == nil {
		return nil
	}
	v := int(math.Round(*b.RiskScore))
	return &v
}

type insightBody struct {
	scoredBody
	Category     string `json:"category"`
	TargetCareer string `json:"targetCareer"`
}

func (b insightBody) request() analysis.InsightRequest {
	return analysis.InsightRequest{
		Category:     b.Category,
		Profile:      b.profile(),
		RiskScore:    b.score(),
		RiskTier:     b.RiskTier,
		TargetCareer: b.TargetCareer,
	}
}

type pathwayBody struct {
	PathwayType string `json:"pathwayType"`
	Input       string `json:"input"`
	JobTitle    string `json:"jobTitle"`
	Industry    string `json:"industry"`
	AgeRange    string `json:"ageRange"`
	Region      string `json:"region"`
}

func (h *Handler) AnalyzeRisk(c *gin.Context) {
	var body profileBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.AnalyzeRisk(c.Request.Context(), body.profile())
	if err != nil {
		fail(c, err, "Failed to analyze risk")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}

func (h *Handler) ExploreInsights(c *gin.Context) {
	var body insightBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.Explore(c.Request.Context(), body.request())
	if err != nil {
		fail(c, err, "Failed to generate exploration insight")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}

func (h *Handler) InvestInsights(c *gin.Context) {
	var body insightBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.Invest(c.Request.Context(), body.request())
	if err != nil {
		fail(c, err, "Failed to generate investment insight")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}

func (h *Handler) PathwaysInsights(c *gin.Context) {
	var body insightBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.Pathways(c.Request.Context(), body.request())
	if err != nil {
		fail(c, err, "Failed to generate pathways insight")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}

func (h *Handler) PathwayInsights(c *gin.Context) {
	var body pathwayBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.Pathway(c.Request.Context(), analysis.PathwayRequest{
		PathwayType: body.PathwayType,
		Input:       body.Input,
		JobTitle:    body.JobTitle,
		Industry:    body.Industry,
		AgeRange:    body.AgeRange,
		Region:      body.Region,
	})
	if err != nil {
		fail(c, err, "Failed to generate pathway insight")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}

func (h *Handler) ExploreScore(c *gin.Context) {
	var body scoredBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.ExploreScore(c.Request.Context(), analysis.ScoreRequest{
		Profile: body.profile(), RiskScore: body.score(), RiskTier: body.RiskTier,
	})
	if err != nil {
		fail(c, err, "Failed to generate insights")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}

func (h *Handler) InvestScore(c *gin.Context) {
	var body scoredBody
	if !bind(c, &body) {
		return
	}
	result, err := h.analyzer.InvestScore(c.Request.Context(), analysis.ScoreRequest{
		Profile: body.profile(), RiskScore: body.score(), RiskTier: body.RiskTier,
	})
	if err != nil {
		fail(c, err, "Failed to generate insights")
		return
	}
	jsonResponse(c, http.StatusOK, result)
}
