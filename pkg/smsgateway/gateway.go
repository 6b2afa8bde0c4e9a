package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
)

// Gateway represents an SMS gateway interface
type Gateway interface {
	SendSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

// Options configures New
type Options struct {
	BaseURL string
	APIKey  string
	Sender  string
	Mock    bool
}

// New returns a mock gateway when opts.Mock is set or no endpoint is configured
func New(opts Options, log *logger.Logger) Gateway {
	if opts.Mock || strings.TrimSpace(opts.BaseURL) == "" {
		return NewMockGateway(opts.Sender, log)
	}
	return NewHTTPGateway(opts)
}

// HTTPGateway posts messages to a JSON SMS API with bearer authentication
type HTTPGateway struct {
	BaseURL    string
	APIKey     string
	Sender     string
	httpClient *http.Client
}

// NewHTTPGateway creates a new HTTPGateway
func NewHTTPGateway(opts Options) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: strings.TrimRight(opts.BaseURL, "/"),
		APIKey:  opts.APIKey,
		Sender:  opts.Sender,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendSMS sends an SMS and returns the gateway message id
func (g *HTTPGateway) SendSMS(ctx context.Context, phoneNumber, message string) (string, error) {
	// Prepare the request body
	requestBody := map[string]interface{}{
		"to":      phoneNumber,
		"from":    g.Sender,
		"message": message,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.APIKey))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return response.MessageID, nil
}

// MockGateway logs messages instead of sending them and remembers what it sent
type MockGateway struct {
	Name string
	log  *logger.Logger

	mu   sync.Mutex
	sent []SentMessage
}

// SentMessage is a message accepted by the mock gateway
type SentMessage struct {
	ID          string
	PhoneNumber string
	Message     string
}

// NewMockGateway creates a new Mock SMS gateway
func NewMockGateway(name string, log *logger.Logger) *MockGateway {
	if log == nil {
		log = logger.Discard()
	}
	return &MockGateway{Name: name, log: log}
}

// SendSMS simulates sending an SMS
func (g *MockGateway) SendSMS(ctx context.Context, phoneNumber, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msgID := fmt.Sprintf("%s-MOCK-MSG-%d", g.Name, time.Now().UnixNano())

	g.mu.Lock()
	g.sent = append(g.sent, SentMessage{ID: msgID, PhoneNumber: phoneNumber, Message: message})
	g.mu.Unlock()

	g.log.Entry().WithField("message_id", msgID).WithField("phone", phoneNumber).Info("mock SMS sent")
	return msgID, nil
}

// Sent returns a copy of the messages sent so far
func (g *MockGateway) Sent() []SentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]SentMessage(nil), g.sent...)
}
