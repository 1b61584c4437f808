package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talenthub-backend/internal/shared/apperr"
)

func TestHTTPMailerSendsResendPayload(t *testing.T) {
	var got struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "email-1"})
	}))
	t.Cleanup(server.Close)

	mailer, err := NewHTTPMailer(server.URL, "api-key", Senders{
		Auth:    "accounts@talenthub.example",
		Alerts:  "alerts@talenthub.example",
		Reports: "reports@talenthub.example",
	})
	if err != nil {
		t.Fatalf("NewHTTPMailer: %v", err)
	}

	err = mailer.Send(context.Background(), Message{
		To:       "dana@example.com",
		Subject:  "Welcome",
		HTML:     "<p>hi</p>",
		Category: CategoryAuth,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if auth != "Bearer api-key" {
		t.Fatalf("authorization = %q", auth)
	}
	if got.From != "accounts@talenthub.example" {
		t.Fatalf("from = %q, want auth sender", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "dana@example.com" {
		t.Fatalf("to = %v", got.To)
	}
}

func TestHTTPMailerMapsProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	mailer, err := NewHTTPMailer(server.URL, "api-key", Senders{Auth: "a@x"})
	if err != nil {
		t.Fatalf("NewHTTPMailer: %v", err)
	}

	err = mailer.Send(context.Background(), Message{To: "dana@example.com", Subject: "s", HTML: "h"})
	if apperr.CodeOf(err) != apperr.CodeDependency {
		t.Fatalf("expected dependency_error, got %v", err)
	}
}

func TestWelcomeEmailContents(t *testing.T) {
	msg := WelcomeEmail("dana@example.com", "Dana <script>", "tmp-PASS-123", "ACMEWIDG", "http://localhost:5173")

	if msg.To != "dana@example.com" {
		t.Fatalf("to = %q", msg.To)
	}
	if msg.Category != CategoryAuth {
		t.Fatalf("category = %q", msg.Category)
	}
	if !strings.Contains(msg.HTML, "tmp-PASS-123") {
		t.Fatal("temp password missing from body")
	}
	if !strings.Contains(msg.HTML, "ACMEWIDG") {
		t.Fatal("company code missing from body")
	}
	if !strings.Contains(msg.HTML, "http://localhost:5173/login") {
		t.Fatal("login link missing from body")
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatal("name must be HTML-escaped")
	}
}

func TestWelcomeEmailOmitsCompanyWhenAbsent(t *testing.T) {
	msg := WelcomeEmail("dana@example.com", "Dana", "tmp", "", "http://localhost:5173")
	if strings.Contains(msg.HTML, "Company code") {
		t.Fatal("company code section must be omitted")
	}
}
