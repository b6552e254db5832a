package prompts

import (
	"fmt"
	"strconv"

	"github.com/BerylCAtieno/career-risk-agent/internal/models"
)

// Prompt is a fully rendered model request.
type Prompt struct {
	System string
	User   string
	// JSON is set when the template asks the model for a JSON object.
	JSON bool
}

// Input carries the values interpolated into insight templates.
type Input struct {
	Profile      models.Profile
	RiskScore    int
	RiskTier     string
	TargetCareer string
}

func (in Input) values() map[string]string {
	return map[string]string{
		"JobTitle":     in.Profile.JobTitle,
		"AgeRange":     in.Profile.AgeRange,
		"Industry":     in.Profile.Industry,
		"CompanySize":  in.Profile.CompanySize,
		"Region":       in.Profile.Region,
		"RiskScore":    strconv.Itoa(in.RiskScore),
		"RiskTier":     in.RiskTier,
		"TargetCareer": in.TargetCareer,
	}
}

// PathwayKind selects between the two free-text pathway analyses.
type PathwayKind string

const (
	PathwayBusiness PathwayKind = "business"
	PathwayCareer   PathwayKind = "career"
)

// RiskPrompt builds the displacement-risk scoring prompt.
func RiskPrompt(p models.Profile) Prompt {
	in := Input{Profile: p}
	return Prompt{
		System: mustGet("risk", "system"),
		User:   format(mustGet("risk", "user"), in.values()),
		JSON:   true,
	}
}

// ExplorePrompt builds a free-text explore insight prompt.
func ExplorePrompt(c Category, in Input) (Prompt, error) {
	return categoryPrompt(SectionExplore, c, in, false)
}

// InvestPrompt builds a free-text invest insight prompt.
func InvestPrompt(c Category, in Input) (Prompt, error) {
	return categoryPrompt(SectionInvest, c, in, false)
}

// PathwaysPrompt builds a section-array pathways prompt.
func PathwaysPrompt(c Category, in Input) (Prompt, error) {
	if RequiresTargetCareer(c) && in.TargetCareer == "" {
		return Prompt{}, fmt.Errorf("category %s requires a target career", c)
	}
	return categoryPrompt(SectionPathways, c, in, true)
}

func categoryPrompt(section Section, c Category, in Input, jsonOut bool) (Prompt, error) {
	if s, ok := sectionOf(c); !ok || s != section {
		return Prompt{}, &UnknownCategoryError{Section: section, Label: string(c)}
	}
	file := string(section)
	user, err := get(file, string(c))
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		System: mustGet(file, "system"),
		User:   format(user, in.values()),
		JSON:   jsonOut,
	}, nil
}

// PathwayPrompt builds the structured business or career pathway prompt.
// input is the business idea or the target career description.
func PathwayPrompt(kind PathwayKind, p models.Profile, input string) (Prompt, error) {
	switch kind {
	case PathwayBusiness, PathwayCareer:
	default:
		return Prompt{}, fmt.Errorf("unknown pathway type: %q", kind)
	}
	values := Input{Profile: p}.values()
	values["Input"] = input
	return Prompt{
		System: mustGet("pathway", "system_"+string(kind)),
		User:   format(mustGet("pathway", string(kind)), values),
		JSON:   true,
	}, nil
}

// ExploreScorePrompt builds the fixed-key explore overview prompt.
func ExploreScorePrompt(in Input) Prompt {
	return Prompt{
		System: mustGet("risk", "explore_score_system"),
		User:   format(mustGet("risk", "explore_score"), in.values()),
		JSON:   true,
	}
}

// InvestScorePrompt builds the fixed-key invest overview prompt.
func InvestScorePrompt(in Input) Prompt {
	return Prompt{
		System: mustGet("risk", "invest_score_system"),
		User:   format(mustGet("risk", "invest_score"), in.values()),
		JSON:   true,
	}
}
