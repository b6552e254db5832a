package models

import "strings"

// RiskTier is the qualitative band reported alongside a risk score.
type RiskTier string

const (
	TierLow      RiskTier = "Low"
	TierModerate RiskTier = "Moderate"
	TierHigh     RiskTier = "High"
	TierCritical RiskTier = "Critical"
)

// tierAliases maps labels produced by older prompt variants onto the canonical set.
var tierAliases = map[string]RiskTier{
	"very high": TierCritical,
}

// NormalizeTier maps a model-reported tier onto the canonical set.
// Unknown values are returned unchanged; the model's wording is not corrected.
func NormalizeTier(raw string) RiskTier {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	for _, t := range []RiskTier{TierLow, TierModerate, TierHigh, TierCritical} {
		if lower == strings.ToLower(string(t)) {
			return t
		}
	}
	if t, ok := tierAliases[lower]; ok {
		return t
	}
	return RiskTier(trimmed)
}

// NominalScore is the score used when the model returns a tier without one.
func (t RiskTier) NominalScore() (int, bool) {
	switch t {
	case TierLow:
		return 25, true
	case TierModerate:
		return 50, true
	case TierHigh:
		return 75, true
	case TierCritical:
		return 90, true
	}
	return 0, false
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TierForScore bands a score when the model reports one without a tier.
func TierForScore(score int) RiskTier {
	switch score = ClampScore(score); {
	case score < 35:
		return TierLow
	case score < 60:
		return TierModerate
	case score < 80:
		return TierHigh
	default:
		return TierCritical
	}
}
