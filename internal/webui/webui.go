// Package webui serves the server-rendered assessment form, the premium
// insights page and its PDF export.
package webui

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/models"
	"github.com/BerylCAtieno/career-risk-agent/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

type UI struct {
	analyzer *analysis.Analyzer
	renderer report.Renderer
}

func New(analyzer *analysis.Analyzer, renderer report.Renderer) *UI {
	return &UI{analyzer: analyzer, renderer: renderer}
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
	}).ParseFS(templateFS, "templates/*.html"))
}

func renderMarkdown(md string) template.HTML {
	out, err := report.Fragment(md)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	// goldmark drops raw HTML from the source, so the output is safe to embed.
	return template.HTML(out)
}

func (u *UI) Register(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())
	r.GET("/", u.Index)
	r.POST("/", u.Submit)
	r.GET("/premium-insights", u.PremiumInsights)
	r.GET("/premium-insights/report.pdf", u.Report)
}

type formPage struct {
	Form         *Form
	AgeRanges    []option
	Industries   []option
	CompanySizes []option
	Regions      []option
	PremiumURL   string
}

func newFormPage(f *Form) formPage {
	return formPage{
		Form:         f,
		AgeRanges:    ageRanges,
		Industries:   industries,
		CompanySizes: companySizes,
		Regions:      regions,
	}
}

func (u *UI) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newFormPage(&Form{Status: FormIdle}))
}

func (u *UI) Submit(c *gin.Context) {
	form := &Form{Status: FormIdle}
	var profile models.Profile
	bindErr := c.ShouldBind(&profile)
	form.Submit(profile)
	if bindErr != nil {
		logging.From(c.Request.Context()).Warn("invalid form submission", "error", bindErr.Error())
		form.Fail(GenericError)
		c.HTML(http.StatusBadRequest, "index.html", newFormPage(form))
		return
	}

	result, err := u.analyzer.AnalyzeRisk(c.Request.Context(), profile)
	if err != nil {
		status, msg := http.StatusInternalServerError, ""
		var verr *analysis.ValidationError
		if errors.As(err, &verr) {
			status, msg = http.StatusBadRequest, verr.UserMessage()
		} else {
			logging.From(c.Request.Context()).Error("risk analysis failed", logging.ErrAttrs(err)...)
		}
		form.Fail(msg)
		c.HTML(status, "index.html", newFormPage(form))
		return
	}

	form.Succeed(result)
	page := newFormPage(form)
	page.PremiumURL = "/premium-insights?" + NewContext(profile, result).Encode()
	c.HTML(http.StatusOK, "index.html", page)
}
