package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talenthub-backend/internal/shared/apperr"
)

// Category selects the sender address for an outbound email.
type Category string

const (
	CategoryAuth    Category = "auth"
	CategoryAlerts  Category = "alerts"
	CategoryReports Category = "reports"
)

// Message is one outbound transactional email.
type Message struct {
	To       string
	Subject  string
	HTML     string
	Category Category
}

// Mailer sends transactional email. Callers treat sends as best-effort and
// surface the outcome via an email_sent flag rather than failing the request.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Senders maps email categories to configured from-addresses.
type Senders struct {
	Auth    string
	Alerts  string
	Reports string
}

func (s Senders) forCategory(cat Category) string {
	switch cat {
	case CategoryAlerts:
		return s.Alerts
	case CategoryReports:
		return s.Reports
	default:
		return s.Auth
	}
}

// LogMailer writes messages to the process log instead of sending them.
// Used in dev when no email API key is configured.
type LogMailer struct {
	Log func(event string, fields map[string]any)
}

func (m LogMailer) Send(ctx context.Context, msg Message) error {
	if m.Log != nil {
		m.Log("email_skipped", map[string]any{
			"to":       msg.To,
			"subject":  msg.Subject,
			"category": string(msg.Category),
		})
	}
	return nil
}

// HTTPMailer delivers mail through a transactional email HTTP API.
type HTTPMailer struct {
	baseURL    string
	apiKey     string
	senders    Senders
	httpClient *http.Client
}

// NewHTTPMailer constructs an HTTPMailer.
func NewHTTPMailer(baseURL, apiKey string, senders Senders) (*HTTPMailer, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("EMAIL_API_URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("EMAIL_API_KEY is required")
	}
	return &HTTPMailer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		senders:    senders,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the message to the email API. Attempted exactly once.
func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return apperr.New(apperr.CodeInvalidArgument, "recipient is required")
	}

	payload := sendRequest{
		From:    m.senders.forCategory(msg.Category),
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.CodeDependency, "email service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperr.Wrap(apperr.CodeDependency, "email service rejected the message",
			fmt.Errorf("send email: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return nil
}
