package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/career-risk-agent/internal/models"
	"github.com/BerylCAtieno/career-risk-agent/internal/prompts"
)

var (
	promptProfile      models.Profile
	promptSection      string
	promptCategory     string
	promptScore        int
	promptTier         string
	promptTargetCareer string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt built for a profile",
	Long: `Print the system and user prompt that would be sent to the model, without calling it.
With no --section the risk prompt is printed.`,
	Example: `  career-risk prompt --job-title Accountant --industry Finance --age-range 30-39 --company-size Medium --region "United States"
  career-risk prompt --section explore --category "Technology Disruptors" --job-title Accountant --industry Finance --score 72 --tier High`,
	RunE: runPrompt,
}

func init() {
	f := promptCmd.Flags()
	f.StringVar(&promptProfile.JobTitle, "job-title", "", "Job title")
	f.StringVar(&promptProfile.AgeRange, "age-range", "", "Age range")
	f.StringVar(&promptProfile.Industry, "industry", "", "Industry")
	f.StringVar(&promptProfile.CompanySize, "company-size", "", "Company size")
	f.StringVar(&promptProfile.Region, "region", "", "Region")
	f.StringVar(&promptSection, "section", "", "Insight section: explore, invest or pathways")
	f.StringVar(&promptCategory, "category", "", "Category label as shown in the UI")
	f.IntVar(&promptScore, "score", 0, "Risk score for insight prompts")
	f.StringVar(&promptTier, "tier", "", "Risk tier for insight prompts")
	f.StringVar(&promptTargetCareer, "target-career", "", "Target career for Switch Careers")
	_ = promptCmd.MarkFlagRequired("job-title")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	p, err := buildPrompt()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "--- system ---\n%s\n\n--- user (json=%t) ---\n%s\n", p.System, p.JSON, p.User)
	return nil
}

func buildPrompt() (prompts.Prompt, error) {
	if promptSection == "" {
		return prompts.RiskPrompt(promptProfile), nil
	}

	section := prompts.Section(promptSection)
	category, err := prompts.ResolveCategory(section, promptCategory)
	if err != nil {
		return prompts.Prompt{}, fmt.Errorf("%w (valid: %q)", err, prompts.Labels(section))
	}
	in := prompts.Input{
		Profile:      promptProfile,
		RiskScore:    promptScore,
		RiskTier:     promptTier,
		TargetCareer: promptTargetCareer,
	}
	switch section {
	case prompts.SectionExplore:
		return prompts.ExplorePrompt(category, in)
	case prompts.SectionInvest:
		return prompts.InvestPrompt(category, in)
	default:
		return prompts.PathwaysPrompt(category, in)
	}
}
