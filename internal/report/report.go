// Package report assembles the premium insights into a printable document.
package report

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/career-risk-agent/internal/models"
)

const Title = "Career Displacement Risk Report"

// Section is one insight block. Body is markdown.
type Section struct {
	Heading string
	Body    string
}

type Report struct {
	Profile   models.Profile
	RiskScore int
	RiskTier  string
	Summary   string
	Sections  []Section
}

// Fetch produces one section, typically by calling the model.
type Fetch func(ctx context.Context) (Section, error)

// Gather runs fetches concurrently and returns their sections in argument
// order. The first failure cancels the rest.
func Gather(ctx context.Context, fetches ...Fetch) ([]Section, error) {
	sections := make([]Section, len(fetches))
	g, ctx := errgroup.WithContext(ctx)
	for i, fetch := range fetches {
		g.Go(func() error {
			s, err := fetch(ctx)
			if err != nil {
				return err
			}
			sections[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

// Markdown renders r as a GFM document.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title)

	b.WriteString("| | |\n|---|---|\n")
	for _, row := range [][2]string{
		{"Job Title", r.Profile.JobTitle},
		{"Age Range", r.Profile.AgeRange},
		{"Industry", r.Profile.Industry},
		{"Company Size", r.Profile.CompanySize},
		{"Region", r.Profile.Region},
	} {
		fmt.Fprintf(&b, "| **%s** | %s |\n", row[0], cell(row[1]))
	}

	fmt.Fprintf(&b, "\n## Risk Score: %d (%s)\n\n", r.RiskScore, strings.TrimSpace(r.RiskTier))
	if s := strings.TrimSpace(r.Summary); s != "" {
		b.WriteString(s + "\n\n")
	}

	for _, s := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", strings.TrimSpace(s.Heading), strings.TrimSpace(s.Body))
	}
	return b.String()
}

// SectionsMarkdown joins titled sub-sections into one markdown body.
func SectionsMarkdown(sections []models.InsightSection) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", strings.TrimSpace(s.Title), strings.TrimSpace(s.Content))
	}
	return strings.TrimSpace(b.String())
}

func cell(v string) string {
	v = strings.ReplaceAll(strings.TrimSpace(v), "\n", " ")
	return strings.ReplaceAll(v, "|", `\|`)
}
