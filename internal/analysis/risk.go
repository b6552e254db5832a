package analysis

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/BerylCAtieno/career-risk-agent/internal/gateway"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/models"
	"github.com/BerylCAtieno/career-risk-agent/internal/prompts"
)

// modelRisk is the risk object as the model writes it. Older prompt
// variants use summaryOfFindings and may quote the score.
type modelRisk struct {
	RiskScore              *flexScore `json:"riskScore"`
	RiskTier               string     `json:"riskTier"`
	Summary                string     `json:"summary"`
	SummaryOfFindings      string     `json:"summaryOfFindings"`
	WhatTheDataSays        []string   `json:"whatTheDataSays"`
	KeyPotentialDisruptors []string   `json:"keyPotentialDisruptors"`
	ResearchReferences     []string   `json:"researchReferences"`
}

type flexScore float64

func (s *flexScore) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) {
		return fmt.Errorf("riskScore %q is not a number", data)
	}
	*s = flexScore(f)
	return nil
}

// AnalyzeRisk scores p. Model failures are absorbed: the caller receives a
// neutral fallback analysis instead of an error. Only validation fails.
func (a *Analyzer) AnalyzeRisk(ctx context.Context, p models.Profile) (models.RiskAnalysis, error) {
	if err := missing(p.MissingFields()...); err != nil {
		return models.RiskAnalysis{}, err
	}

	logger := logging.From(ctx)
	prompt := prompts.RiskPrompt(p)

	var raw modelRisk
	err := gateway.CompleteJSON(ctx, a.gw, gateway.Request{System: prompt.System, Prompt: prompt.User}, &raw)
	if err == nil {
		var result models.RiskAnalysis
		if result, err = normalizeRisk(raw); err == nil {
			logger.Info("risk analysis complete", "job_title", p.JobTitle, "risk_score", result.RiskScore, "risk_tier", string(result.RiskTier))
			return result, nil
		}
	}

	logger.Warn("risk analysis failed, using fallback", logging.ErrAttrs(err)...)
	return FallbackRisk(p), nil
}

func normalizeRisk(raw modelRisk) (models.RiskAnalysis, error) {
	result := models.RiskAnalysis{
		RiskTier:               models.NormalizeTier(raw.RiskTier),
		Summary:                strings.TrimSpace(raw.Summary),
		WhatTheDataSays:        raw.WhatTheDataSays,
		KeyPotentialDisruptors: raw.KeyPotentialDisruptors,
		ResearchReferences:     raw.ResearchReferences,
	}
	if result.Summary == "" {
		result.Summary = strings.TrimSpace(raw.SummaryOfFindings)
	}

	switch {
	case raw.RiskScore != nil:
		// clamp before converting so infinities map to the bounds
		score := math.Max(0, math.Min(100, math.Round(float64(*raw.RiskScore))))
		result.RiskScore = int(score)
		if result.RiskTier == "" {
			result.RiskTier = models.TierForScore(result.RiskScore)
		}
	case result.RiskTier != "":
		score, ok := result.RiskTier.NominalScore()
		if !ok {
			return result, goerr.Wrap(gateway.ErrMalformedResponse, "model returned neither score nor known tier",
				goerr.V("risk_tier", string(result.RiskTier)))
		}
		result.RiskScore = score
	default:
		return result, goerr.Wrap(gateway.ErrMalformedResponse, "model returned neither score nor tier")
	}
	return result, nil
}

// FallbackRisk is the analysis returned when the model cannot be reached or
// its answer cannot be used.
func FallbackRisk(p models.Profile) models.RiskAnalysis {
	return models.RiskAnalysis{
		RiskScore: 50,
		RiskTier:  models.TierModerate,
		Summary: fmt.Sprintf("Based on your input as a %s (age %s) in the %s industry, working for a %s company in %s, "+
			"we've assessed your role's displacement risk as moderate. However, we encountered an issue getting detailed analysis. "+
			"Please try again later.", p.JobTitle, p.AgeRange, p.Industry, p.CompanySize, p.Region),
		WhatTheDataSays: []string{
			"Current market conditions suggest moderate disruption risk",
			"Your industry is experiencing ongoing technological changes",
			"Company size may influence adaptation requirements",
		},
		KeyPotentialDisruptors: []string{
			"Emerging automation technologies",
			"Changing industry dynamics",
			"Economic factors",
		},
		ResearchReferences: []string{
			"Industry trend reports",
			"Market analysis studies",
			"Economic forecasts",
		},
	}
}
