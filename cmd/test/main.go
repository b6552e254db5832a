// Command test is a smoke-test client for a running career-risk server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
	profile map[string]any
}

func NewTestClient(baseURL string, profile map[string]any) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		// assistant-backed pathway runs poll for up to 90s
		client:  &http.Client{Timeout: 2 * time.Minute},
		profile: profile,
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, methods, risk, validation, explore, pathways, pathway")
	jobTitle := flag.String("job", "Accountant", "Job title to analyze")
	industry := flag.String("industry", "Finance and Insurance", "Industry to analyze")
	flag.Parse()

	client := NewTestClient(*baseURL, map[string]any{
		"jobTitle":    *jobTitle,
		"ageRange":    "30-39",
		"industry":    *industry,
		"companySize": "Medium",
		"region":      "United States",
	})

	printHeader("Career Risk Service - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	tests := map[string]func() bool{
		"health":     client.testHealthCheck,
		"methods":    client.testMethodNotAllowed,
		"risk":       client.testRiskAnalysis,
		"validation": client.testValidation,
		"explore":    client.testExploreInsight,
		"pathways":   client.testPathwaysInsight,
		"pathway":    client.testPathwayInsight,
	}

	if *testType == "all" {
		client.runAllTests()
		return
	}
	fn, ok := tests[*testType]
	if !ok {
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, methods, risk, validation, explore, pathways, pathway")
		os.Exit(1)
	}
	if !fn() {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Method Not Allowed", tc.testMethodNotAllowed},
		{"Validation", tc.testValidation},
		{"Risk Analysis", tc.testRiskAnalysis},
		{"Explore Insight", tc.testExploreInsight},
		{"Pathways Insight", tc.testPathwaysInsight},
		{"Pathway Insight", tc.testPathwayInsight},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testMethodNotAllowed() bool {
	printTestHeader("Testing Non-POST Requests")

	url := fmt.Sprintf("%s/api/analyze-risk", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		printError(fmt.Sprintf("Expected status 405, got %d", resp.StatusCode))
		return false
	}
	printSuccess("GET rejected with 405")
	return true
}

func (tc *TestClient) testValidation() bool {
	printTestHeader("Testing Missing Field Validation")

	status, body, ok := tc.post("/api/analyze-risk", map[string]any{"jobTitle": tc.profile["jobTitle"]})
	if !ok {
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}
	printSuccess("Incomplete profile rejected with 400")
	printJSON(body)
	return true
}

func (tc *TestClient) testRiskAnalysis() bool {
	printTestHeader("Testing Risk Analysis")

	status, body, ok := tc.post("/api/analyze-risk", tc.profile)
	if !ok {
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var result struct {
		RiskScore *int   `json:"riskScore"`
		RiskTier  string `json:"riskTier"`
		Summary   string `json:"summary"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if result.RiskScore == nil || *result.RiskScore < 0 || *result.RiskScore > 100 {
		printError("riskScore missing or outside 0-100")
		return false
	}
	if result.RiskTier == "" || result.Summary == "" {
		printError("riskTier or summary missing")
		return false
	}

	printSuccess(fmt.Sprintf("Risk analysis returned %d (%s)", *result.RiskScore, result.RiskTier))
	printJSON(body)
	return true
}

func (tc *TestClient) scored(extra map[string]any) map[string]any {
	req := map[string]any{"riskScore": 72, "riskTier": "High"}
	for k, v := range tc.profile {
		req[k] = v
	}
	for k, v := range extra {
		req[k] = v
	}
	return req
}

func (tc *TestClient) testExploreInsight() bool {
	printTestHeader("Testing Explore Insight")
	return tc.expectOK("/api/explore-insights", tc.scored(map[string]any{"category": "Technology Disruptors"}), "content")
}

func (tc *TestClient) testPathwaysInsight() bool {
	printTestHeader("Testing Pathways Insight")

	status, _, ok := tc.post("/api/pathways-insights", tc.scored(map[string]any{"category": "Switch Careers"}))
	if !ok {
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Switch Careers without targetCareer: expected 400, got %d", status))
		return false
	}
	printSuccess("Switch Careers without targetCareer rejected with 400")

	return tc.expectOK("/api/pathways-insights", tc.scored(map[string]any{
		"category":     "Switch Careers",
		"targetCareer": "Data Analyst",
	}), "sections")
}

func (tc *TestClient) testPathwayInsight() bool {
	printTestHeader("Testing Pathway Insight")
	return tc.expectOK("/api/pathway-insights", map[string]any{
		"pathwayType": "business",
		"input":       "Bookkeeping subscription for freelancers",
		"jobTitle":    tc.profile["jobTitle"],
		"industry":    tc.profile["industry"],
		"ageRange":    tc.profile["ageRange"],
		"region":      tc.profile["region"],
	}, "analysis")
}

func (tc *TestClient) expectOK(path string, payload map[string]any, key string) bool {
	status, body, ok := tc.post(path, payload)
	if !ok {
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if _, ok := response[key]; !ok {
		printError(fmt.Sprintf("Missing field: %s", key))
		return false
	}

	printSuccess(fmt.Sprintf("%s returned %s", path, key))
	printJSON(body)
	return true
}

func (tc *TestClient) post(path string, payload map[string]any) (int, []byte, bool) {
	url := tc.baseURL + path
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	fmt.Printf("POST %s\n", url)
	fmt.Printf("%sRequest:%s\n%s\n\n", colorYellow, colorReset, string(jsonData))

	start := time.Now()
	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return 0, nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("%sStatus %d in %s (request id %s)%s\n", colorCyan, resp.StatusCode,
		time.Since(start).Round(time.Millisecond), resp.Header.Get("X-Request-ID"), colorReset)
	return resp.StatusCode, body, true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
