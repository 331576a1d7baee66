package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// newTestServer fakes the API's user endpoints with cookie-based sessions.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, code int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}

	mux.HandleFunc("/api/v1/user/signup", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-1", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "Account created",
			"user":    domain.User{ID: "user-1", FullName: req["fullname"].(string), Email: req["email"].(string)},
		})
	})

	mux.HandleFunc("/api/v1/user/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "hunter2" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-1", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    domain.User{ID: "user-1", Email: req["email"].(string)},
		})
	})

	mux.HandleFunc("/api/v1/user/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
	})

	mux.HandleFunc("/api/v1/user/check-auth", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    domain.User{ID: "user-1", Email: "alice@example.com"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, notifier Notifier) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: server.URL, Notifier: notifier})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestClient_SignupAuthenticates(t *testing.T) {
	server := newTestServer(t)
	notifier := &recordingNotifier{}
	c := newTestClient(t, server, notifier)

	if err := c.Signup(context.Background(), "Alice Doe", "alice@example.com", "hunter2", "555-0100", false); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	session := c.Session()
	if !session.Authenticated {
		t.Fatalf("expected authenticated session")
	}
	if session.User == nil || session.User.Email != "alice@example.com" {
		t.Fatalf("unexpected session user: %+v", session.User)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Account created" {
		t.Fatalf("expected success toast, got %v", notifier.successes)
	}

	// The session cookie now rides along on subsequent calls.
	ok, err := c.CheckAuthentication(context.Background())
	if err != nil {
		t.Fatalf("check-auth failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected authenticated check")
	}
}

func TestClient_LoginFailureSurfacesServerMessage(t *testing.T) {
	server := newTestServer(t)
	notifier := &recordingNotifier{}
	c := newTestClient(t, server, notifier)

	err := c.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil {
		t.Fatalf("expected login error")
	}
	if err.Error() != "invalid credentials" {
		t.Fatalf("expected server message, got %q", err.Error())
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected error toast, got %v", notifier.errors)
	}
	if c.Session().Authenticated {
		t.Fatalf("failed login must not authenticate")
	}
}

func TestClient_LogoutClearsSession(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t, server, nil)

	if err := c.Login(context.Background(), "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	session := c.Session()
	if session.Authenticated || session.User != nil {
		t.Fatalf("session not cleared: %+v", session)
	}

	// Server-side the cookie is gone too.
	ok, err := c.CheckAuthentication(context.Background())
	if err != nil {
		t.Fatalf("check-auth failed: %v", err)
	}
	if ok {
		t.Fatalf("expected unauthenticated after logout")
	}
}

func TestClient_PendingGuardRejectsOverlap(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t, server, nil)

	if !c.begin("login") {
		t.Fatalf("begin should succeed")
	}
	if err := c.Login(context.Background(), "alice@example.com", "hunter2"); err != ErrOperationPending {
		t.Fatalf("expected ErrOperationPending, got %v", err)
	}
	c.end("login")

	if err := c.Login(context.Background(), "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("login after release failed: %v", err)
	}
}

func TestFileSessionStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileSessionStore(path)

	// Missing file resolves to an empty session.
	session, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if session.Authenticated {
		t.Fatalf("expected empty session")
	}

	want := Session{User: &domain.User{ID: "user-1", Email: "alice@example.com"}, Authenticated: true}
	if err := store.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !got.Authenticated || got.User == nil || got.User.ID != "user-1" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	session, err = store.Load()
	if err != nil {
		t.Fatalf("load after clear failed: %v", err)
	}
	if session.Authenticated {
		t.Fatalf("expected cleared session")
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestClient_SessionPersistsThroughStore(t *testing.T) {
	server := newTestServer(t)
	path := filepath.Join(t.TempDir(), "session.json")

	c, err := New(Options{BaseURL: server.URL, Store: NewFileSessionStore(path)})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := c.Login(context.Background(), "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A fresh client over the same store starts authenticated.
	restored, err := New(Options{BaseURL: server.URL, Store: NewFileSessionStore(path)})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !restored.Session().Authenticated {
		t.Fatalf("expected restored session to be authenticated")
	}
}
