// Package fraudcheck classifies registration submissions as genuine or fraudulent
// through an external language-model endpoint (OpenAI Responses API).
package fraudcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Submission is a registration attempt to classify
type Submission struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Consent     bool   `json:"consent"`
}

// Verdict is the classifier decision
type Verdict struct {
	IsFraudulent bool   `json:"isFraudulent"`
	Explanation  string `json:"explanation"`
}

// Checker classifies submissions. Any returned error means the verdict is unknown.
type Checker interface {
	CheckSubmission(ctx context.Context, s Submission) (Verdict, error)
}

// Options configures New
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Mock    bool
}

// New returns the mock checker when opts.Mock is set, otherwise an API client
func New(opts Options) Checker {
	if opts.Mock {
		return NewMockChecker()
	}
	return NewClient(opts)
}

// Client calls the Responses API with a strict JSON schema for the verdict
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type responsesAPIResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type verdictPayload struct {
	IsFraudulent     bool   `json:"isFraudulent"`
	FraudExplanation string `json:"fraudExplanation"`
}

const instructions = `You screen sign-ups for a promotional prize game run in Spanish-speaking markets.
Decide whether the submission is likely fraudulent.
Signals: random keyboard strings or joke names, bot-like names, phone numbers that look fake or impossible, missing consent.
Short or common names such as "Vera Juan" or "Ana Gil" are not suspicious on their own.
A single weak signal is not enough; several weak signals together can be.
Give a short explanation in Spanish when the submission is fraudulent.`

// CheckSubmission asks the model for a verdict
func (c *Client) CheckSubmission(ctx context.Context, s Submission) (Verdict, error) {
	payload := map[string]interface{}{
		"model":        c.model,
		"temperature":  0,
		"instructions": instructions,
		"input": fmt.Sprintf("Full name: %s\nPhone number: %s\nConsent: %t",
			s.FullName, s.PhoneNumber, s.Consent),
		"text": map[string]interface{}{
			"format": map[string]interface{}{
				"type": "json_schema",
				"name": "fraud_verdict",
				"schema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"isFraudulent":     map[string]interface{}{"type": "boolean"},
						"fraudExplanation": map[string]interface{}{"type": "string"},
					},
					"required":             []string{"isFraudulent", "fraudExplanation"},
					"additionalProperties": false,
				},
				"strict": true,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Verdict{}, fmt.Errorf("fraud check api error: status %d", resp.StatusCode)
	}

	var parsed responsesAPIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse response: %w", err)
	}

	text := extractResponseText(parsed)
	if text == "" {
		return Verdict{}, fmt.Errorf("fraud check returned no output")
	}

	var out verdictPayload
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse verdict: %w", err)
	}
	return Verdict{IsFraudulent: out.IsFraudulent, Explanation: strings.TrimSpace(out.FraudExplanation)}, nil
}

func extractResponseText(parsed responsesAPIResponse) string {
	if strings.TrimSpace(parsed.OutputText) != "" {
		return strings.TrimSpace(parsed.OutputText)
	}
	for _, output := range parsed.Output {
		for _, content := range output.Content {
			if strings.TrimSpace(content.Text) != "" {
				return strings.TrimSpace(content.Text)
			}
		}
	}
	return ""
}
