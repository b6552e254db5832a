package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/BerylCAtieno/career-risk-agent/internal/gateway"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/models"
	"github.com/BerylCAtieno/career-risk-agent/internal/prompts"
)

// NoInsight replaces an empty free-text model reply.
const NoInsight = "No insight generated"

// InsightRequest asks for one category of explore, invest or pathways insight.
// RiskScore is a pointer so an explicit 0 can be told apart from a missing score.
type InsightRequest struct {
	Category     string
	Profile      models.Profile
	RiskScore    *int
	RiskTier     string
	TargetCareer string
}

func (r InsightRequest) validate() error {
	var fields []string
	if r.Category == "" {
		fields = append(fields, "category")
	}
	if r.Profile.JobTitle == "" {
		fields = append(fields, "jobTitle")
	}
	if r.Profile.Industry == "" {
		fields = append(fields, "industry")
	}
	if r.RiskScore == nil {
		fields = append(fields, "riskScore")
	}
	if r.RiskTier == "" {
		fields = append(fields, "riskTier")
	}
	return missing(fields...)
}

func (r InsightRequest) input() prompts.Input {
	in := prompts.Input{Profile: r.Profile, RiskTier: r.RiskTier, TargetCareer: r.TargetCareer}
	if r.RiskScore != nil {
		in.RiskScore = *r.RiskScore
	}
	return in
}

// Explore returns a free-text explore insight for the requested category.
func (a *Analyzer) Explore(ctx context.Context, req InsightRequest) (models.InsightContent, error) {
	return a.textInsight(ctx, prompts.SectionExplore, req, prompts.ExplorePrompt)
}

// Invest returns a free-text invest insight for the requested category.
func (a *Analyzer) Invest(ctx context.Context, req InsightRequest) (models.InsightContent, error) {
	return a.textInsight(ctx, prompts.SectionInvest, req, prompts.InvestPrompt)
}

type categoryBuilder func(prompts.Category, prompts.Input) (prompts.Prompt, error)

func (a *Analyzer) textInsight(ctx context.Context, section prompts.Section, req InsightRequest, build categoryBuilder) (models.InsightContent, error) {
	p, err := a.categoryPrompt(section, req, build)
	if err != nil {
		return models.InsightContent{}, err
	}

	text, err := a.gw.Complete(ctx, gateway.Request{System: p.System, Prompt: p.User})
	if err != nil {
		return models.InsightContent{}, goerr.Wrap(err, "insight generation failed",
			goerr.V("section", string(section)), goerr.V("category", req.Category))
	}
	if strings.TrimSpace(text) == "" {
		text = NoInsight
	}
	return models.InsightContent{Category: req.Category, Content: text}, nil
}

// Pathways returns titled sections for a pathway category. "Switch Careers"
// needs TargetCareer.
func (a *Analyzer) Pathways(ctx context.Context, req InsightRequest) (models.InsightSections, error) {
	p, err := a.categoryPrompt(prompts.SectionPathways, req, prompts.PathwaysPrompt)
	if err != nil {
		return models.InsightSections{}, err
	}

	var out struct {
		Sections []models.InsightSection `json:"sections"`
	}
	if err := gateway.CompleteJSON(ctx, a.gw, gateway.Request{System: p.System, Prompt: p.User}, &out); err != nil {
		return models.InsightSections{}, goerr.Wrap(err, "pathways generation failed", goerr.V("category", req.Category))
	}
	if out.Sections == nil {
		out.Sections = []models.InsightSection{}
	}
	return models.InsightSections{Category: req.Category, Sections: out.Sections}, nil
}

func (a *Analyzer) categoryPrompt(section prompts.Section, req InsightRequest, build categoryBuilder) (prompts.Prompt, error) {
	if err := req.validate(); err != nil {
		return prompts.Prompt{}, err
	}
	category, err := prompts.ResolveCategory(section, req.Category)
	if err != nil {
		return prompts.Prompt{}, err
	}
	if prompts.RequiresTargetCareer(category) && strings.TrimSpace(req.TargetCareer) == "" {
		return prompts.Prompt{}, &ValidationError{
			Fields: []string{"targetCareer"},
			Reason: "Target career is required for career switch analysis",
		}
	}
	return build(category, req.input())
}

// PathwayRequest asks for a structured business or career pathway analysis.
type PathwayRequest struct {
	PathwayType string
	Input       string
	JobTitle    string
	Industry    string
	AgeRange    string
	Region      string
}

// Pathway analyses a business idea or target career for the given profile.
func (a *Analyzer) Pathway(ctx context.Context, req PathwayRequest) (models.PathwayInsight, error) {
	var fields []string
	for _, f := range []struct{ name, value string }{
		{"pathwayType", req.PathwayType},
		{"input", req.Input},
		{"jobTitle", req.JobTitle},
		{"industry", req.Industry},
		{"ageRange", req.AgeRange},
		{"region", req.Region},
	} {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, f.name)
		}
	}
	if err := missing(fields...); err != nil {
		return models.PathwayInsight{}, err
	}

	kind := prompts.PathwayKind(req.PathwayType)
	if kind != prompts.PathwayBusiness && kind != prompts.PathwayCareer {
		return models.PathwayInsight{}, &ValidationError{
			Fields: []string{"pathwayType"},
			Reason: fmt.Sprintf("pathwayType must be %q or %q", prompts.PathwayBusiness, prompts.PathwayCareer),
		}
	}

	profile := models.Profile{JobTitle: req.JobTitle, Industry: req.Industry, AgeRange: req.AgeRange, Region: req.Region}
	p, err := prompts.PathwayPrompt(kind, profile, req.Input)
	if err != nil {
		return models.PathwayInsight{}, err
	}

	var out models.PathwayInsight
	if err := gateway.CompleteJSON(ctx, a.pathway, gateway.Request{System: p.System, Prompt: p.User}, &out); err != nil {
		return models.PathwayInsight{}, goerr.Wrap(err, "pathway generation failed", goerr.V("pathway_type", req.PathwayType))
	}
	logging.From(ctx).Info("pathway insight complete", "pathway_type", req.PathwayType)
	return out, nil
}

// ScoreRequest carries a full profile with its previously computed score.
type ScoreRequest struct {
	Profile   models.Profile
	RiskScore *int
	RiskTier  string
}

func (r ScoreRequest) input() (prompts.Input, error) {
	fields := r.Profile.MissingFields()
	if r.RiskScore == nil {
		fields = append(fields, "riskScore")
	}
	if r.RiskTier == "" {
		fields = append(fields, "riskTier")
	}
	if err := missing(fields...); err != nil {
		return prompts.Input{}, err
	}
	return prompts.Input{Profile: r.Profile, RiskScore: *r.RiskScore, RiskTier: r.RiskTier}, nil
}

// ExploreScore returns the fixed three-part explore overview.
func (a *Analyzer) ExploreScore(ctx context.Context, req ScoreRequest) (models.ExploreScore, error) {
	in, err := req.input()
	if err != nil {
		return models.ExploreScore{}, err
	}
	p := prompts.ExploreScorePrompt(in)

	var out models.ExploreScore
	if err := gateway.CompleteJSON(ctx, a.gw, gateway.Request{System: p.System, Prompt: p.User}, &out); err != nil {
		return models.ExploreScore{}, goerr.Wrap(err, "explore overview failed")
	}
	return out, nil
}

// InvestScore returns the fixed three-part invest overview.
func (a *Analyzer) InvestScore(ctx context.Context, req ScoreRequest) (models.InvestScore, error) {
	in, err := req.input()
	if err != nil {
		return models.InvestScore{}, err
	}
	p := prompts.InvestScorePrompt(in)

	var out models.InvestScore
	if err := gateway.CompleteJSON(ctx, a.gw, gateway.Request{System: p.System, Prompt: p.User}, &out); err != nil {
		return models.InvestScore{}, goerr.Wrap(err, "invest overview failed")
	}
	return out, nil
}
