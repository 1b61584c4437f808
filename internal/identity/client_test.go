package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talenthub-backend/internal/shared/apperr"
)

func newProviderStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer service-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var payload struct {
			Email        string   `json:"email"`
			UserMetadata Metadata `json:"user_metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Email == "taken@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_code": "email_exists", "msg": "email already registered"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "user-123",
			"email":         payload.Email,
			"user_metadata": payload.UserMetadata,
		})
	})

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.Password != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-abc",
			"user": map[string]any{
				"id":            "user-123",
				"email":         payload.Email,
				"user_metadata": map[string]any{"role": "candidate"},
			},
		})
	})

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "user-123",
			"email":         "dana@example.com",
			"user_metadata": map[string]any{"role": "candidate", "full_name": "Dana Smith"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T) *HTTPClient {
	t.Helper()
	server := newProviderStub(t)
	client, err := NewHTTPClient(server.URL, "service-key")
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestCreateIdentity(t *testing.T) {
	client := newTestClient(t)

	ident, err := client.CreateIdentity(context.Background(), NewIdentity{
		Email:    "dana@example.com",
		Password: "temp-password",
		Metadata: Metadata{FullName: "Dana Smith", Role: "candidate"},
	})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if ident.ID != "user-123" {
		t.Fatalf("id = %q", ident.ID)
	}
	if ident.Role != RoleCandidate {
		t.Fatalf("role = %q, want candidate", ident.Role)
	}
}

func TestCreateIdentityDuplicateEmail(t *testing.T) {
	client := newTestClient(t)

	_, err := client.CreateIdentity(context.Background(), NewIdentity{
		Email:    "taken@example.com",
		Password: "temp-password",
	})
	if apperr.CodeOf(err) != apperr.CodeAlreadyExists {
		t.Fatalf("expected already_exists, got %v", err)
	}
}

func TestSignIn(t *testing.T) {
	client := newTestClient(t)

	session, err := client.SignIn(context.Background(), "dana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.AccessToken != "tok-abc" {
		t.Fatalf("token = %q", session.AccessToken)
	}
	if session.Identity.Role != RoleCandidate {
		t.Fatalf("role = %q", session.Identity.Role)
	}
}

func TestSignInBadPassword(t *testing.T) {
	client := newTestClient(t)

	_, err := client.SignIn(context.Background(), "dana@example.com", "wrong")
	if apperr.CodeOf(err) != apperr.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	client := newTestClient(t)

	ident, err := client.ValidateToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if ident.Email != "dana@example.com" || ident.Metadata.FullName != "Dana Smith" {
		t.Fatalf("unexpected identity: %+v", ident)
	}

	if _, err := client.ValidateToken(context.Background(), "expired"); apperr.CodeOf(err) != apperr.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	role, err := ParseRole("  Recruiter ")
	if err != nil {
		t.Fatalf("ParseRole: %v", err)
	}
	if role != RoleRecruiter {
		t.Fatalf("role = %q", role)
	}
}
