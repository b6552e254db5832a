package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/gateway"
)

type stubGateway struct {
	reply string
	err   error
	calls int
}

func (s *stubGateway) Complete(context.Context, gateway.Request) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestRouter(gw gateway.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLoggingMiddleware())
	NewHandler(analysis.New(gw)).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const accountantBody = `{"jobTitle":"Accountant","ageRange":"35-44","industry":"Finance","companySize":"51-200","region":"North America"}`

func TestHealth(t *testing.T) {
	w := do(newTestRouter(&stubGateway{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(&stubGateway{})
	for _, path := range []string{
		"/api/analyze-risk", "/api/explore-insights", "/api/invest-insights",
		"/api/pathways-insights", "/api/pathway-insights", "/api/explore-score", "/api/invest-score",
	} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			w := do(r, method, path, "")
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
			assert.Equal(t, "Method not allowed", decode(t, w)["error"])
		}
	}
}

func TestAnalyzeRisk_Success(t *testing.T) {
	gw := &stubGateway{reply: `{"riskScore":72,"riskTier":"High","summary":"Automation of routine ledgers."}`}
	w := do(newTestRouter(gw), http.MethodPost, "/api/analyze-risk", accountantBody)

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.EqualValues(t, 72, out["riskScore"])
	assert.Equal(t, "High", out["riskTier"])
	assert.Equal(t, "Automation of routine ledgers.", out["summary"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAnalyzeRisk_Fallback(t *testing.T) {
	gw := &stubGateway{err: gateway.ErrTimeout}
	w := do(newTestRouter(gw), http.MethodPost, "/api/analyze-risk", accountantBody)

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.EqualValues(t, 50, out["riskScore"])
	assert.Equal(t, "Moderate", out["riskTier"])
	assert.Contains(t, out["summary"], "Accountant")
	assert.Contains(t, out["summary"], "Finance")
}

func TestAnalyzeRisk_MissingField(t *testing.T) {
	gw := &stubGateway{reply: `{"riskScore":72}`}
	w := do(newTestRouter(gw), http.MethodPost, "/api/analyze-risk",
		`{"jobTitle":"Accountant","industry":"Finance","companySize":"51-200","region":"North America"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "ageRange")
	assert.Zero(t, gw.calls)
}

func TestMalformedJSON(t *testing.T) {
	gw := &stubGateway{}
	w := do(newTestRouter(gw), http.MethodPost, "/api/explore-insights", `{"category":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["error"])
	assert.Zero(t, gw.calls)
}

func TestRequestIDEcho(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "section-explore-7")
	w := httptest.NewRecorder()
	newTestRouter(&stubGateway{}).ServeHTTP(w, req)
	assert.Equal(t, "section-explore-7", w.Header().Get(RequestIDHeader))
}

func TestInsightRoutes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		reply    string
		wantKeys []string
	}{
		{
			name:     "explore",
			path:     "/api/explore-insights",
			body:     `{"category":"Industry & Market Trends","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`,
			reply:    "Finance is consolidating.",
			wantKeys: []string{"category", "content"},
		},
		{
			name:     "invest with zero score",
			path:     "/api/invest-insights",
			body:     `{"category":"Skills Needed","jobTitle":"Accountant","industry":"Finance","riskScore":0,"riskTier":"Low"}`,
			reply:    "Learn data tooling.",
			wantKeys: []string{"category", "content"},
		},
		{
			name:     "pathways",
			path:     "/api/pathways-insights",
			body:     `{"category":"Switch Careers","targetCareer":"Data Analyst","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`,
			reply:    `{"sections":[{"title":"Overview","content":"Good fit"}]}`,
			wantKeys: []string{"category", "sections"},
		},
		{
			name:     "pathway",
			path:     "/api/pathway-insights",
			body:     `{"pathwayType":"career","input":"Data Analyst","jobTitle":"Accountant","industry":"Finance","ageRange":"35-44","region":"North America"}`,
			reply:    `{"analysis":"a","keyFactors":"k","nextSteps":"n","reflection":"r"}`,
			wantKeys: []string{"analysis", "keyFactors", "nextSteps", "reflection"},
		},
		{
			name:     "explore score",
			path:     "/api/explore-score",
			body:     `{"jobTitle":"Accountant","ageRange":"35-44","industry":"Finance","companySize":"51-200","region":"North America","riskScore":72,"riskTier":"High"}`,
			reply:    `{"industryTrends":"i","techDisruptors":"t","roleConsiderations":"r"}`,
			wantKeys: []string{"industryTrends", "techDisruptors", "roleConsiderations"},
		},
		{
			name:     "invest score",
			path:     "/api/invest-score",
			body:     `{"jobTitle":"Accountant","ageRange":"35-44","industry":"Finance","companySize":"51-200","region":"North America","riskScore":72,"riskTier":"High"}`,
			reply:    `{"skillsNeeded":"s","reskillingOptions":"o","adjacentRoles":"a"}`,
			wantKeys: []string{"skillsNeeded", "reskillingOptions", "adjacentRoles"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newTestRouter(&stubGateway{reply: tt.reply}), http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			out := decode(t, w)
			for _, k := range tt.wantKeys {
				assert.Contains(t, out, k)
			}
		})
	}
}

func TestInsightRoutes_GatewayFailure(t *testing.T) {
	tests := []struct {
		path, body, message string
	}{
		{"/api/explore-insights", `{"category":"Role Evolution","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`, "Failed to generate exploration insight"},
		{"/api/invest-insights", `{"category":"Adjacent Roles","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`, "Failed to generate investment insight"},
		{"/api/pathways-insights", `{"category":"Start Your Own Business","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`, "Failed to generate pathways insight"},
		{"/api/pathway-insights", `{"pathwayType":"business","input":"x","jobTitle":"Accountant","industry":"Finance","ageRange":"35-44","region":"EU"}`, "Failed to generate pathway insight"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(newTestRouter(&stubGateway{err: gateway.ErrRunTerminated}), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			out := decode(t, w)
			assert.Equal(t, map[string]any{"error": tt.message}, out)
		})
	}
}

func TestInsightRoutes_BadRequests(t *testing.T) {
	tests := []struct {
		name, path, body, wantErr string
	}{
		{"switch careers without target", "/api/pathways-insights",
			`{"category":"Switch Careers","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`,
			"Target career is required for career switch analysis"},
		{"unknown category", "/api/explore-insights",
			`{"category":"Space Travel","jobTitle":"Accountant","industry":"Finance","riskScore":72,"riskTier":"High"}`,
			"Unknown category: Space Travel"},
		{"missing score", "/api/invest-insights",
			`{"category":"Skills Needed","jobTitle":"Accountant","industry":"Finance","riskTier":"High"}`,
			"Missing required fields: riskScore"},
		{"unknown pathway type", "/api/pathway-insights",
			`{"pathwayType":"retire","input":"x","jobTitle":"a","industry":"b","ageRange":"c","region":"d"}`,
			`pathwayType must be "business" or "career"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &stubGateway{reply: "unused"}
			w := do(newTestRouter(gw), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, decode(t, w)["error"])
			assert.Zero(t, gw.calls)
		})
	}
}
