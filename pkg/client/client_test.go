package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/api"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
	"github.com/sandeep2351/linkedin-clone/internal/core/service"
	"github.com/sandeep2351/linkedin-clone/internal/infrastructure/db/memory"
)

type discardNotifier struct{}

func (discardNotifier) NotifyWelcome(ports.WelcomeMessage) {}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.NewUserRepository()
	tokens := service.NewTokenService(repo, "test-secret")

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(repo, tokens, zerolog.Nop()),
		Tokens:   tokens,
		Users:    service.NewUserService(repo, zerolog.Nop()),
		Posts:    service.NewPostService(memory.NewPostRepository(), repo, zerolog.Nop()),
		Notifier: discardNotifier{},
		BasePath: "/api/v1",
		Log:      zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SessionFlow(t *testing.T) {
	srv := newAPIServer(t)
	session := NewMemorySession()
	c := New(srv.URL+"/api/v1", session)
	ctx := context.Background()

	if _, _, err := c.Me(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before login, got %v", err)
	}

	err := c.Signup(ctx, SignupRequest{Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if session.Get() == "" {
		t.Fatalf("signup must store the token")
	}

	me, theme, err := c.Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Username != "alice" || me.ID == "" {
		t.Fatalf("unexpected profile: %+v", me)
	}
	if theme != "" {
		t.Fatalf("expected no theme header for the default theme, got %q", theme)
	}

	if got, err := c.SetTheme(ctx, "dark"); err != nil || got != "dark" {
		t.Fatalf("SetTheme: %q %v", got, err)
	}
	if _, theme, _ = c.Me(ctx); theme != "dark" {
		t.Fatalf("expected theme header dark, got %q", theme)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if session.Get() != "" {
		t.Fatalf("logout must clear the token")
	}

	if err := c.Login(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got, err := c.Theme(ctx); err != nil || got != "dark" {
		t.Fatalf("Theme: %q %v", got, err)
	}
}

func TestClient_APIErrors(t *testing.T) {
	srv := newAPIServer(t)
	session := NewMemorySession()
	c := New(srv.URL+"/api/v1", session)
	ctx := context.Background()

	err := c.Login(ctx, "ghost", "pass123")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	_ = session.Set("garbage")
	_, _, err = c.Me(ctx)
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Unauthorized - Invalid Token" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Posts(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api/v1", NewMemorySession())
	ctx := context.Background()

	err := c.Signup(ctx, SignupRequest{Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	post, err := c.CreatePost(ctx, "first post", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Author == nil || post.Author.Username != "alice" {
		t.Fatalf("unexpected author: %+v", post.Author)
	}

	liked, err := c.ToggleLike(ctx, post.ID)
	if err != nil || len(liked.Likes) != 1 {
		t.Fatalf("ToggleLike: %+v %v", liked, err)
	}
	commented, err := c.Comment(ctx, post.ID, "nice")
	if err != nil || len(commented.Comments) != 1 || commented.Comments[0].User.Username != "alice" {
		t.Fatalf("Comment: %+v %v", commented, err)
	}

	feed, err := c.Feed(ctx)
	if err != nil || len(feed) != 1 || feed[0].ID != post.ID {
		t.Fatalf("Feed: %+v %v", feed, err)
	}

	if err := c.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	var apiErr *APIError
	if err := c.DeletePost(ctx, post.ID); !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestClient_ProfileEscapesUsername(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"1","username":"a/b?c#d"}`))
	}))
	t.Cleanup(srv.Close)

	session := NewMemorySession()
	_ = session.Set("tok")
	c := New(srv.URL+"/api/v1", session)

	p, err := c.Profile(context.Background(), "a/b?c#d")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if gotPath != "/api/v1/users/a%2Fb%3Fc%23d" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if p.Username != "a/b?c#d" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestFileSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")

	s := NewFileSession(path)
	if s.Get() != "" {
		t.Fatalf("expected empty token for a missing file")
	}
	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh instance reads what the first one wrote.
	reopened := NewFileSession(path)
	if got := reopened.Get(); got != "tok-1" {
		t.Fatalf("expected tok-1, got %q", got)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := s.Get(); got != "" {
		t.Fatalf("expected empty token after Clear, got %q", got)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty session: %v", err)
	}
}

func TestMemorySession(t *testing.T) {
	s := NewMemorySession()
	_ = s.Set("abc")
	if s.Get() != "abc" {
		t.Fatalf("expected abc")
	}
	_ = s.Clear()
	if s.Get() != "" {
		t.Fatalf("expected empty after Clear")
	}
}
