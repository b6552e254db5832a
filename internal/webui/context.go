package webui

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/career-risk-agent/internal/models"
)

// ClientContext is the profile and score carried between pages in the query
// string. Nothing is stored server-side.
type ClientContext struct {
	JobTitle    string `form:"jobTitle" binding:"required"`
	AgeRange    string `form:"ageRange" binding:"required"`
	Industry    string `form:"industry" binding:"required"`
	CompanySize string `form:"companySize" binding:"required"`
	Region      string `form:"region" binding:"required"`
	RiskScore   *int   `form:"riskScore" binding:"required,min=0,max=100"`
	RiskTier    string `form:"riskTier" binding:"required"`
	Summary     string `form:"summary"`
}

// BindContext reads the client context from the request query. It fails
// when a required field is absent or the score is out of range.
func BindContext(c *gin.Context) (ClientContext, error) {
	var cc ClientContext
	err := c.ShouldBindQuery(&cc)
	return cc, err
}

// NewContext builds the context handed from the results view to premium insights.
func NewContext(p models.Profile, r models.RiskAnalysis) ClientContext {
	score := r.RiskScore
	return ClientContext{
		JobTitle:    p.JobTitle,
		AgeRange:    p.AgeRange,
		Industry:    p.Industry,
		CompanySize: p.CompanySize,
		Region:      p.Region,
		RiskScore:   &score,
		RiskTier:    string(r.RiskTier),
		Summary:     r.Summary,
	}
}

func (cc ClientContext) Profile() models.Profile {
	return models.Profile{
		JobTitle:    cc.JobTitle,
		AgeRange:    cc.AgeRange,
		Industry:    cc.Industry,
		CompanySize: cc.CompanySize,
		Region:      cc.Region,
	}
}

func (cc ClientContext) Score() int {
	if cc.RiskScore == nil {
		return 0
	}
	return *cc.RiskScore
}

// Values encodes the context as query parameters, omitting empty fields.
func (cc ClientContext) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("jobTitle", cc.JobTitle)
	set("ageRange", cc.AgeRange)
	set("industry", cc.Industry)
	set("companySize", cc.CompanySize)
	set("region", cc.Region)
	if cc.RiskScore != nil {
		v.Set("riskScore", strconv.Itoa(*cc.RiskScore))
	}
	set("riskTier", cc.RiskTier)
	set("summary", cc.Summary)
	return v
}

// Encode returns the context as a query string.
func (cc ClientContext) Encode() string {
	return cc.Values().Encode()
}
