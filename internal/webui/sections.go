package webui

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/prompts"
	"github.com/BerylCAtieno/career-risk-agent/internal/report"
)

// selection is the category chosen for each premium section. Section names
// the panel the visitor acted on; it is the only one loaded on a page view.
type selection struct {
	Section      prompts.Section
	Explore      string
	Invest       string
	Pathway      string
	TargetCareer string
}

func (s selection) category(section prompts.Section) string {
	switch section {
	case prompts.SectionExplore:
		return s.Explore
	case prompts.SectionInvest:
		return s.Invest
	default:
		return s.Pathway
	}
}

var sectionTitles = map[prompts.Section]string{
	prompts.SectionExplore:  "Explore",
	prompts.SectionInvest:   "Invest",
	prompts.SectionPathways: "Pathways",
}

var premiumSections = []prompts.Section{prompts.SectionExplore, prompts.SectionInvest, prompts.SectionPathways}

// hasOverview reports whether section shows a score overview before a
// category is picked.
func hasOverview(section prompts.Section) bool {
	return section == prompts.SectionExplore || section == prompts.SectionInvest
}

// fetcher returns the load for one section, or nil when the section stays
// idle. Explore and invest show an overview until a category is picked.
func (u *UI) fetcher(section prompts.Section, cc ClientContext, sel selection) report.Fetch {
	category := sel.category(section)
	req := analysis.InsightRequest{
		Category:     category,
		Profile:      cc.Profile(),
		RiskScore:    cc.RiskScore,
		RiskTier:     cc.RiskTier,
		TargetCareer: sel.TargetCareer,
	}
	score := analysis.ScoreRequest{Profile: cc.Profile(), RiskScore: cc.RiskScore, RiskTier: cc.RiskTier}

	switch {
	case section == prompts.SectionExplore && category == "":
		return func(ctx context.Context) (report.Section, error) {
			out, err := u.analyzer.ExploreScore(ctx, score)
			if err != nil {
				return report.Section{}, err
			}
			return overview("Explore Overview",
				"Industry Trends", out.IndustryTrends,
				"Technology Disruptors", out.TechDisruptors,
				"Role Considerations", out.RoleConsiderations), nil
		}
	case section == prompts.SectionInvest && category == "":
		return func(ctx context.Context) (report.Section, error) {
			out, err := u.analyzer.InvestScore(ctx, score)
			if err != nil {
				return report.Section{}, err
			}
			return overview("Invest Overview",
				"Skills Needed", out.SkillsNeeded,
				"Reskilling Options", out.ReskillingOptions,
				"Adjacent Roles", out.AdjacentRoles), nil
		}
	case category == "":
		return nil
	case section == prompts.SectionExplore:
		return func(ctx context.Context) (report.Section, error) {
			out, err := u.analyzer.Explore(ctx, req)
			return report.Section{Heading: out.Category, Body: out.Content}, err
		}
	case section == prompts.SectionInvest:
		return func(ctx context.Context) (report.Section, error) {
			out, err := u.analyzer.Invest(ctx, req)
			return report.Section{Heading: out.Category, Body: out.Content}, err
		}
	default:
		return func(ctx context.Context) (report.Section, error) {
			out, err := u.analyzer.Pathways(ctx, req)
			return report.Section{Heading: out.Category, Body: report.SectionsMarkdown(out.Sections)}, err
		}
	}
}

// overview formats heading/body pairs as one section.
func overview(heading string, pairs ...string) report.Section {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", pairs[i], strings.TrimSpace(pairs[i+1]))
	}
	return report.Section{Heading: heading, Body: strings.TrimSpace(b.String())}
}
