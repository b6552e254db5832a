package webui

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/api"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/prompts"
	"github.com/BerylCAtieno/career-risk-agent/internal/report"
)

type categoryLink struct {
	Label  string
	URL    string
	Active bool
}

type hiddenField struct {
	Name  string
	Value string
}

type sectionView struct {
	Title string
	State *SectionState
	Links []categoryLink
}

type premiumPage struct {
	Context      ClientContext
	Sections     []sectionView
	TargetCareer string
	// CareerFields carry the context and pathway choice through the
	// target-career form.
	CareerFields []hiddenField
	ReportURL    string
}

func bindSelection(c *gin.Context) selection {
	section := prompts.Section(c.Query("section"))
	if !slices.Contains(premiumSections, section) {
		section = ""
	}
	return selection{
		Section:      section,
		Explore:      c.Query("explore"),
		Invest:       c.Query("invest"),
		Pathway:      c.Query("pathway"),
		TargetCareer: c.Query("targetCareer"),
	}
}

func (s selection) set(v url.Values) {
	for key, value := range map[string]string{
		"section":      string(s.Section),
		"explore":      s.Explore,
		"invest":       s.Invest,
		"pathway":      s.Pathway,
		"targetCareer": s.TargetCareer,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
}

func premiumURL(path string, cc ClientContext, sel selection) string {
	v := cc.Values()
	sel.set(v)
	return path + "?" + v.Encode()
}

// PremiumInsights renders the three insight sections for the carried
// context. Without a valid context the visitor is sent back to the form.
// Only the section named by the section parameter is loaded; the others
// render idle.
func (u *UI) PremiumInsights(c *gin.Context) {
	cc, err := BindContext(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	sel := bindSelection(c)

	states := u.loadSections(c.Request.Context(), api.RequestIDFrom(c), cc, sel)

	page := premiumPage{
		Context:      cc,
		TargetCareer: sel.TargetCareer,
		ReportURL:    premiumURL("/premium-insights/report.pdf", cc, sel),
	}
	for i, section := range premiumSections {
		view := sectionView{Title: sectionTitles[section], State: states[i]}
		if hasOverview(section) {
			next := sel.with(section, "")
			view.Links = append(view.Links, categoryLink{
				Label:  "Overview",
				URL:    premiumURL("/premium-insights", cc, next),
				Active: sel.Section == section && sel.category(section) == "",
			})
		}
		for _, label := range prompts.Labels(section) {
			next := sel.with(section, label)
			view.Links = append(view.Links, categoryLink{
				Label:  label,
				URL:    premiumURL("/premium-insights", cc, next),
				Active: sel.category(section) == label,
			})
		}
		page.Sections = append(page.Sections, view)
	}

	fields := cc.Values()
	withPathway := sel.with(prompts.SectionPathways, "Switch Careers")
	withPathway.TargetCareer = ""
	withPathway.set(fields)
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		page.CareerFields = append(page.CareerFields, hiddenField{Name: name, Value: fields.Get(name)})
	}

	c.HTML(http.StatusOK, "premium.html", page)
}

// with returns the selection after the visitor picks label in section.
func (s selection) with(section prompts.Section, label string) selection {
	s.Section = section
	switch section {
	case prompts.SectionExplore:
		s.Explore = label
	case prompts.SectionInvest:
		s.Invest = label
	case prompts.SectionPathways:
		s.Pathway = label
	}
	return s
}

// loadSections settles the acted-on section, tagged with the request id the
// response carries in X-Request-ID. Every other section stays idle, so one
// page view costs at most one model call.
func (u *UI) loadSections(ctx context.Context, requestID string, cc ClientContext, sel selection) []*SectionState {
	states := make([]*SectionState, len(premiumSections))
	for i, section := range premiumSections {
		states[i] = &SectionState{Name: string(section), Status: SectionIdle}
		if section != sel.Section {
			continue
		}
		fetch := u.fetcher(section, cc, sel)
		if fetch == nil {
			continue
		}

		state := states[i]
		id := state.Begin(sel.category(section), requestID)
		content, err := fetch(ctx)
		if err != nil {
			logging.From(ctx).Warn("premium section failed", append([]any{"section", string(section)}, logging.ErrAttrs(err)...)...)
			state.Reject(id, sectionMessage(err))
			continue
		}
		state.Resolve(id, content)
	}
	return states
}

func sectionMessage(err error) string {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) {
		return verr.UserMessage()
	}
	var cerr *prompts.UnknownCategoryError
	if errors.As(err, &cerr) {
		return "Unknown category: " + cerr.Label
	}
	return GenericError
}

// Report exports the selected insights as a paginated PDF.
func (u *UI) Report(c *gin.Context) {
	cc, err := BindContext(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	sel := bindSelection(c)
	ctx := c.Request.Context()

	var fetches []report.Fetch
	for _, section := range premiumSections {
		if fetch := u.fetcher(section, cc, sel); fetch != nil {
			fetches = append(fetches, fetch)
		}
	}
	sections, err := report.Gather(ctx, fetches...)
	if err != nil {
		u.reportError(c, err)
		return
	}

	pdf, err := report.Export(ctx, u.renderer, report.Report{
		Profile:   cc.Profile(),
		RiskScore: cc.Score(),
		RiskTier:  cc.RiskTier,
		Summary:   cc.Summary,
		Sections:  sections,
	})
	if err != nil {
		u.reportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="career-risk-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (u *UI) reportError(c *gin.Context, err error) {
	msg := sectionMessage(err)
	status := http.StatusBadRequest
	if msg == GenericError {
		status = http.StatusInternalServerError
		logging.From(c.Request.Context()).Error("report export failed", logging.ErrAttrs(err)...)
		msg = "Failed to generate report"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
