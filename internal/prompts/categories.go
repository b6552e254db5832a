package prompts

import "fmt"

// Section groups the premium-insight categories shown together in the UI.
type Section string

const (
	SectionExplore  Section = "explore"
	SectionInvest   Section = "invest"
	SectionPathways Section = "pathways"
)

// Category is the internal key selecting a prompt template.
type Category string

const (
	CategoryIndustry   Category = "industry"
	CategoryTechnology Category = "technology"
	CategoryRole       Category = "role"

	CategorySkills     Category = "skills"
	CategoryReskilling Category = "reskilling"
	CategoryAdjacent   Category = "adjacent"

	CategoryBusiness  Category = "business"
	CategoryFreelance Category = "freelance"
	CategoryTeaching  Category = "teaching"
	CategoryCareer    Category = "career"
)

type labelMapping struct {
	label    string
	category Category
	// primary labels are the ones rendered as UI buttons; the rest are
	// accepted for older clients.
	primary bool
}

var sectionLabels = map[Section][]labelMapping{
	SectionExplore: {
		{"Industry & Market Trends", CategoryIndustry, true},
		{"Technology Disruptors", CategoryTechnology, true},
		{"Key Role Considerations", CategoryRole, true},
		{"Industry Trends", CategoryIndustry, false},
		{"Technology Impact", CategoryTechnology, false},
		{"Role Evolution", CategoryRole, false},
	},
	SectionInvest: {
		{"Skills Needed", CategorySkills, true},
		{"Reskilling Options", CategoryReskilling, true},
		{"Adjacent Roles", CategoryAdjacent, true},
	},
	SectionPathways: {
		{"Start Your Own Business", CategoryBusiness, true},
		{"Freelancing Opportunities", CategoryFreelance, true},
		{"Teaching & Mentoring", CategoryTeaching, true},
		{"Switch Careers", CategoryCareer, true},
		{"Teaching Opportunities", CategoryTeaching, false},
	},
}

// UnknownCategoryError reports a category label with no template.
type UnknownCategoryError struct {
	Section Section
	Label   string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s category: %q", e.Section, e.Label)
}

// ResolveCategory maps a UI label to its internal key by exact match.
func ResolveCategory(section Section, label string) (Category, error) {
	for _, m := range sectionLabels[section] {
		if m.label == label {
			return m.category, nil
		}
	}
	return "", &UnknownCategoryError{Section: section, Label: label}
}

// Labels returns the labels rendered as buttons for a section.
func Labels(section Section) []string {
	var labels []string
	for _, m := range sectionLabels[section] {
		if m.primary {
			labels = append(labels, m.label)
		}
	}
	return labels
}

// AllLabels returns every accepted label for a section, including aliases.
func AllLabels(section Section) []string {
	labels := make([]string, 0, len(sectionLabels[section]))
	for _, m := range sectionLabels[section] {
		labels = append(labels, m.label)
	}
	return labels
}

// RequiresTargetCareer reports whether a category needs the target career text.
func RequiresTargetCareer(c Category) bool {
	return c == CategoryCareer
}

// sectionOf returns the section a category key belongs to.
func sectionOf(c Category) (Section, bool) {
	for section, mappings := range sectionLabels {
		for _, m := range mappings {
			if m.category == c {
				return section, true
			}
		}
	}
	return "", false
}
