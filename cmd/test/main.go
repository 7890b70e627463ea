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
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const defaultParams = "product: aura_helena, platform: instagram, type: promocional, tone: elegante, length: medio"

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, generate, input, rest, custom")
	params := flag.String("params", "", "Generation parameters as 'key: value, key: value' (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Content Studio Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests()
		return
	case "health":
		ok = client.testHealthCheck()
	case "agent-card":
		ok = client.testAgentCard()
	case "generate":
		ok = client.testGeneration()
	case "input":
		ok = client.testInputRequired()
	case "rest":
		ok = client.testRESTFlow()
	case "custom":
		if *params == "" {
			printError("Parameters are required for custom test. Use -params flag")
			os.Exit(1)
		}
		ok = client.testCustomGeneration(*params)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, generate, input, rest, custom")
		os.Exit(1)
	}
	if !ok {
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
		{"A2A Generation", tc.testGeneration},
		{"A2A Input Required", tc.testInputRequired},
		{"REST Generate and Save", tc.testRESTFlow},
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

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	url := fmt.Sprintf("%s/.well-known/agent.json", tc.baseURL)
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
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints", "skills"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testGeneration() bool {
	return tc.testCustomGeneration(defaultParams)
}

func (tc *TestClient) testCustomGeneration(params string) bool {
	printTestHeader("Testing A2A Content Generation")
	fmt.Printf("%sParameters:%s %s\n\n", colorCyan, colorReset, params)

	result, ok := tc.sendTask(params)
	if !ok {
		return false
	}

	status, _ := result["status"].(map[string]any)
	state, _ := status["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		printMessage(status)
		return false
	}

	printSuccess("Content generation completed successfully")
	fmt.Printf("\n%sGenerated Content:%s\n", colorGreen, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	printMessage(status)
	fmt.Println(strings.Repeat("=", 80))

	if artifacts, ok := result["artifacts"].([]any); ok && len(artifacts) > 0 {
		fmt.Printf("\n%sArtifacts:%s\n", colorPurple, colorReset)
		artifactsJSON, _ := json.MarshalIndent(artifacts, "", "  ")
		fmt.Println(string(artifactsJSON))
	}
	return true
}

func (tc *TestClient) testInputRequired() bool {
	printTestHeader("Testing A2A Missing Product")

	result, ok := tc.sendTask("tone: casual")
	if !ok {
		return false
	}

	status, _ := result["status"].(map[string]any)
	state, _ := status["state"].(string)
	if state != "input-required" {
		printError(fmt.Sprintf("Expected state 'input-required', got '%s'", state))
		return false
	}

	printSuccess("Agent asked for a product")
	printMessage(status)
	return true
}

// sendTask posts a message/send request and returns the task result.
func (tc *TestClient) sendTask(text string) (map[string]any, bool) {
	url := fmt.Sprintf("%s/a2a/content", tc.baseURL)
	fmt.Printf("POST %s\n", url)

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
						"kind": "text",
						"text": text,
					},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return nil, false
	}

	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return nil, false
	}

	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return nil, false
	}

	result, ok := response["result"].(map[string]any)
	if !ok {
		printError("Invalid result format")
		return nil, false
	}
	return result, true
}

func (tc *TestClient) testRESTFlow() bool {
	printTestHeader("Testing REST Generate and Save")

	var generated struct {
		Content   string `json:"content"`
		WordCount int    `json:"word_count"`
		Band      struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"band"`
	}
	genReq := map[string]string{
		"product_id":   "serum_hialuronico",
		"platform":     "facebook",
		"content_type": "educativo",
		"tone":         "profesional",
		"length":       "corto",
	}
	if !tc.postJSON("/api/generate", genReq, http.StatusOK, &generated) {
		return false
	}
	if generated.WordCount < generated.Band.Min || generated.WordCount > generated.Band.Max {
		printError(fmt.Sprintf("Word count %d outside band [%d, %d]", generated.WordCount, generated.Band.Min, generated.Band.Max))
		return false
	}
	printSuccess(fmt.Sprintf("Generated %d words", generated.WordCount))

	var post struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	saveReq := map[string]string{
		"content":    generated.Content,
		"product_id": "serum_hialuronico",
		"platform":   "facebook",
	}
	if !tc.postJSON("/api/posts", saveReq, http.StatusCreated, &post) {
		return false
	}
	if post.Status != "draft" {
		printError(fmt.Sprintf("Expected status 'draft', got '%s'", post.Status))
		return false
	}

	printSuccess(fmt.Sprintf("Post %s saved to the library", post.ID))
	return true
}

func (tc *TestClient) postJSON(path string, payload any, wantStatus int, out any) bool {
	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)

	jsonData, _ := json.Marshal(payload)
	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		printError(fmt.Sprintf("Expected status %d, got %d", wantStatus, resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	return true
}

func printMessage(status map[string]any) {
	msg, ok := status["message"].(map[string]any)
	if !ok {
		return
	}
	parts, _ := msg["parts"].([]any)
	for _, part := range parts {
		if p, ok := part.(map[string]any); ok {
			if text, ok := p["text"].(string); ok {
				fmt.Println(text)
			}
		}
	}
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
