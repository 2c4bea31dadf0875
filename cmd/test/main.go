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
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
	mode    string
}

func NewTestClient(baseURL, mode string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		mode:    mode,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

var sampleBusiness = map[string]any{
	"industry":                 "Health & Wellness",
	"niche":                    "Fitness",
	"productService":           "Online personal training programs",
	"businessType":             "b2c",
	"pricePoint":               "$49/month",
	"uniqueSellingProposition": "Workouts that fit into a 20 minute lunch break",
	"competitors":              []string{"https://www.peloton.com", "https://www.beachbody.com"},
	"targetGeography":          []string{"United States", "Canada"},
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, templates, research, generate, a2a")
	mode := flag.String("mode", "quick", "Generation mode: quick or comprehensive")
	flag.Parse()

	client := NewTestClient(*baseURL, *mode)

	printHeader("Customer Avatar Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	tests := map[string]func() bool{
		"health":     client.testHealthCheck,
		"agent-card": client.testAgentCard,
		"templates":  client.testTemplates,
		"research":   client.testResearch,
		"generate":   client.testGenerateAndStore,
		"a2a":        client.testA2A,
	}

	if *testType == "all" {
		client.runAllTests()
		return
	}
	fn, ok := tests[*testType]
	if !ok {
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, templates, research, generate, a2a")
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
		{"Agent Card", tc.testAgentCard},
		{"Templates", tc.testTemplates},
		{"Research", tc.testResearch},
		{"Generate and Store", tc.testGenerateAndStore},
		{"A2A Avatar Task", tc.testA2A},
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

// call sends a JSON request and decodes a JSON response into out.
func (tc *TestClient) call(method, path string, payload any, out any) (int, error) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("invalid JSON response: %w", err)
		}
	}
	return resp.StatusCode, nil
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

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	var agentCard map[string]any
	status, err := tc.call(http.MethodGet, "/.well-known/agent.json", nil, &agentCard)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	return true
}

func (tc *TestClient) testTemplates() bool {
	printTestHeader("Testing Industry Templates")

	var list struct {
		Success   bool             `json:"success"`
		Templates []map[string]any `json:"templates"`
		Count     int              `json:"count"`
	}
	if status, err := tc.call(http.MethodGet, "/api/templates", nil, &list); err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Listing templates failed: status %d, %v", status, err))
		return false
	}
	if list.Count == 0 || list.Count != len(list.Templates) {
		printError(fmt.Sprintf("Unexpected template count %d", list.Count))
		return false
	}

	id, _ := list.Templates[0]["id"].(string)
	var one map[string]any
	if status, err := tc.call(http.MethodGet, "/api/templates/"+id, nil, &one); err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Fetching template %s failed: status %d, %v", id, status, err))
		return false
	}

	printSuccess(fmt.Sprintf("%d templates available", list.Count))
	return true
}

func (tc *TestClient) testResearch() bool {
	printTestHeader("Testing Research Endpoint")

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	status, err := tc.call(http.MethodPost, "/api/research", map[string]any{"businessInfo": sampleBusiness, "mode": tc.mode}, &resp)
	if err != nil || status != http.StatusOK || !resp.Success {
		printError(fmt.Sprintf("Research failed: status %d, %v", status, err))
		return false
	}

	for _, key := range []string{"competitorAnalysis", "marketData", "socialInsights", "industryTrends"} {
		items, _ := resp.Data[key].([]any)
		fmt.Printf("  %s: %d\n", key, len(items))
	}
	printSuccess("Research completed")
	return true
}

func (tc *TestClient) testGenerateAndStore() bool {
	printTestHeader("Testing Generation and Avatar Storage")
	fmt.Printf("%sBusiness:%s %s / %s\n\n", colorCyan, colorReset, sampleBusiness["industry"], sampleBusiness["niche"])

	var gen struct {
		Success bool           `json:"success"`
		Avatar  map[string]any `json:"avatar"`
		Error   string         `json:"error"`
	}
	status, err := tc.call(http.MethodPost, "/api/generate", map[string]any{"businessInfo": sampleBusiness, "mode": tc.mode}, &gen)
	if err != nil || status != http.StatusOK || !gen.Success {
		printError(fmt.Sprintf("Generation failed: status %d, %v %s", status, err, gen.Error))
		return false
	}
	printSuccess(fmt.Sprintf("Generated %v (confidence %v)", gen.Avatar["name"], gen.Avatar["overallConfidence"]))

	id, _ := gen.Avatar["id"].(string)
	if status, err := tc.call(http.MethodPost, "/api/avatars", gen.Avatar, nil); err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Saving avatar failed: status %d, %v", status, err))
		return false
	}
	defer tc.call(http.MethodDelete, "/api/avatars/"+id, nil, nil)

	var dup struct {
		Avatar map[string]any `json:"avatar"`
	}
	if status, err := tc.call(http.MethodPost, "/api/avatars/"+id+"/duplicate", nil, &dup); err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Duplicating avatar failed: status %d, %v", status, err))
		return false
	}
	dupID, _ := dup.Avatar["id"].(string)
	defer tc.call(http.MethodDelete, "/api/avatars/"+dupID, nil, nil)

	var cmp struct {
		Avatars []map[string]any `json:"avatars"`
	}
	if status, err := tc.call(http.MethodGet, "/api/avatars/compare?ids="+id+","+dupID, nil, &cmp); err != nil || status != http.StatusOK || len(cmp.Avatars) != 2 {
		printError(fmt.Sprintf("Comparing avatars failed: status %d, %v", status, err))
		return false
	}

	printSuccess("Avatar saved, duplicated and compared")
	if narrative, ok := gen.Avatar["narrative"].(string); ok {
		fmt.Printf("\n%sNarrative:%s\n", colorGreen, colorReset)
		fmt.Println(strings.Repeat("=", 80))
		fmt.Println(narrative)
		fmt.Println(strings.Repeat("=", 80))
	}
	return true
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Avatar Task")

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind": "message",
				"role": "user",
				"parts": []map[string]any{
					{
						"kind": "data",
						"data": map[string]any{"businessInfo": sampleBusiness, "mode": tc.mode},
					},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	var response map[string]any
	status, err := tc.call(http.MethodPost, "/a2a/avatar", request, &response)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Request failed: status %d, %v", status, err))
		return false
	}

	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	result, ok := response["result"].(map[string]any)
	if !ok {
		printError("Invalid result format")
		return false
	}
	taskStatus, ok := result["status"].(map[string]any)
	if !ok {
		printError("Invalid status format")
		return false
	}
	if state, _ := taskStatus["state"].(string); state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("Avatar task completed successfully")

	if msg, ok := taskStatus["message"].(map[string]any); ok {
		if parts, ok := msg["parts"].([]any); ok {
			fmt.Printf("\n%sGenerated Avatar:%s\n", colorGreen, colorReset)
			fmt.Println(strings.Repeat("=", 80))
			for _, part := range parts {
				if p, ok := part.(map[string]any); ok {
					if text, ok := p["text"].(string); ok {
						fmt.Println(text)
					}
				}
			}
			fmt.Println(strings.Repeat("=", 80))
		}
	}

	if artifacts, ok := result["artifacts"].([]any); ok {
		fmt.Printf("\n%sArtifacts:%s %d\n", colorPurple, colorReset, len(artifacts))
	}
	return true
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
