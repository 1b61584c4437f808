package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/bootstrap"
	"talenthub-backend/internal/shared/config"
)

// providerStub is a minimal GoTrue-style identity provider backed by a map.
type providerStub struct {
	mu    sync.Mutex
	users map[string]stubUser // keyed by id
	next  int
}

type stubUser struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Password string         `json:"-"`
	Metadata map[string]any `json:"user_metadata"`
}

func newProviderStub(t *testing.T) (*httptest.Server, *providerStub) {
	t.Helper()
	stub := &providerStub{users: map[string]stubUser{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /admin/users", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Email        string         `json:"email"`
			Password     string         `json:"password"`
			UserMetadata map[string]any `json:"user_metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		stub.mu.Lock()
		defer stub.mu.Unlock()
		for _, u := range stub.users {
			if u.Email == payload.Email {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_ = json.NewEncoder(w).Encode(map[string]string{"error_code": "email_exists"})
				return
			}
		}
		stub.next++
		user := stubUser{
			ID:       fmt.Sprintf("stub-user-%d", stub.next),
			Email:    payload.Email,
			Password: payload.Password,
			Metadata: payload.UserMetadata,
		}
		stub.users[user.ID] = user
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(user)
	})

	mux.HandleFunc("PUT /admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var payload struct {
			UserMetadata map[string]any `json:"user_metadata"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		stub.mu.Lock()
		defer stub.mu.Unlock()
		user, ok := stub.users[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		for k, v := range payload.UserMetadata {
			user.Metadata[k] = v
		}
		stub.users[id] = user
		_ = json.NewEncoder(w).Encode(user)
	})

	mux.HandleFunc("DELETE /admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		delete(stub.users, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		stub.mu.Lock()
		defer stub.mu.Unlock()
		for _, u := range stub.users {
			if u.Email == payload.Email && u.Password == payload.Password {
				_ = json.NewEncoder(w).Encode(map[string]any{
					// The token doubles as the user id for GET /user lookups.
					"access_token": u.ID,
					"user":         u,
				})
				return
			}
		}
		w.WriteHeader(http.StatusBadRequest)
	})

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if len(token) > 7 {
			token = token[7:]
		}
		stub.mu.Lock()
		defer stub.mu.Unlock()
		user, ok := stub.users[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(user)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, stub
}

func buildTestApp(t *testing.T) (*bootstrap.App, *providerStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, stub := newProviderStub(t)
	cfg := config.Config{
		Port:                "0",
		Env:                 "dev",
		CORSAllowOrigin:     []string{"http://localhost:5173"},
		ObjectStoreType:     "local",
		LocalStoreDir:       t.TempDir(),
		SignedURLTTL:        time.Minute,
		IdentityProviderURL: provider.URL,
		IdentityServiceKey:  "service-key",
		FrontendBaseURL:     "http://localhost:5173",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app, stub
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func registerForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fileWriter, err := writer.CreateFormFile("resume", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("plain text resume")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestRegisterLoginAndDashboardFlow(t *testing.T) {
	app, stub := buildTestApp(t)
	router := app.Router

	// Register a candidate with a resume attached.
	body, contentType := registerForm(t, map[string]string{
		"full_name": "Dana Smith",
		"email":     "dana@example.com",
		"role":      "candidate",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	if !env.OK {
		t.Fatalf("register envelope not ok: %s", resp.Body.String())
	}
	var registered struct {
		UserID       string `json:"user_id"`
		ResumeStored bool   `json:"resume_stored"`
	}
	if err := json.Unmarshal(env.Data, &registered); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	if registered.UserID == "" || !registered.ResumeStored {
		t.Fatalf("unexpected register result: %s", env.Data)
	}

	// Duplicate registration is rejected with a conflict.
	body2, contentType2 := registerForm(t, map[string]string{
		"full_name": "Dana Smith",
		"email":     "dana@example.com",
		"role":      "candidate",
	})
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body2)
	req2.Header.Set("Content-Type", contentType2)
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", resp2.Code)
	}
	env2 := decodeEnvelope(t, resp2)
	if env2.OK || env2.Error == nil || env2.Error.Code != "already_exists" {
		t.Fatalf("duplicate register envelope: %s", resp2.Body.String())
	}

	// Dashboard requires auth.
	reqDash := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary/"+registered.UserID, nil)
	respDash := httptest.NewRecorder()
	router.ServeHTTP(respDash, reqDash)
	if respDash.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated dashboard status = %d", respDash.Code)
	}

	// The temp password reaches the user only via email; the provider stub
	// recorded it, so log in with it.
	stub.mu.Lock()
	password := stub.users[registered.UserID].Password
	stub.mu.Unlock()
	if password == "" {
		t.Fatal("provider stub did not record a password")
	}

	loginBody, _ := json.Marshal(map[string]string{"email": "dana@example.com", "password": password})
	reqLogin := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	reqLogin.Header.Set("Content-Type", "application/json")
	respLogin := httptest.NewRecorder()
	router.ServeHTTP(respLogin, reqLogin)
	if respLogin.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", respLogin.Code, respLogin.Body.String())
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, respLogin).Data, &login); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	if login.AccessToken == "" {
		t.Fatal("expected access token")
	}

	// Authenticated dashboard shows the empty candidate view.
	reqDash2 := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary/"+registered.UserID, nil)
	reqDash2.Header.Set("Authorization", "Bearer "+login.AccessToken)
	respDash2 := httptest.NewRecorder()
	router.ServeHTTP(respDash2, reqDash2)
	if respDash2.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body %s", respDash2.Code, respDash2.Body.String())
	}
	var summary struct {
		Role         string `json:"role"`
		Applications []any  `json:"applications"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, respDash2).Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Role != "candidate" {
		t.Fatalf("summary role = %q", summary.Role)
	}
	if len(summary.Applications) != 0 {
		t.Fatalf("expected empty applications, got %d", len(summary.Applications))
	}
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	app, _ := buildTestApp(t)
	router := app.Router

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("health status = %d", resp.Code)
	}
	env := decodeEnvelope(t, resp)
	if !env.OK {
		t.Fatalf("health envelope: %s", resp.Body.String())
	}

	reqMetrics := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	respMetrics := httptest.NewRecorder()
	router.ServeHTTP(respMetrics, reqMetrics)
	if respMetrics.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", respMetrics.Code)
	}
	if !bytes.Contains(respMetrics.Body.Bytes(), []byte("registration_started_total")) {
		t.Fatal("metrics output missing registration counters")
	}
}
