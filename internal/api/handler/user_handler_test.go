package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/api/middleware"
	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

type stubUserService struct {
	profileFn     func(ctx context.Context, username string) (*domain.User, error)
	updateFn      func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	themeFn       func(ctx context.Context, userID string) (domain.Theme, error)
	updateThemeFn func(ctx context.Context, userID, theme string) (domain.Theme, error)
	suggestFn     func(ctx context.Context, userID string) ([]*domain.User, error)
}

func (s *stubUserService) GetPublicProfile(ctx context.Context, username string) (*domain.User, error) {
	return s.profileFn(ctx, username)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, userID, update)
}

func (s *stubUserService) GetTheme(ctx context.Context, userID string) (domain.Theme, error) {
	return s.themeFn(ctx, userID)
}

func (s *stubUserService) UpdateTheme(ctx context.Context, userID, theme string) (domain.Theme, error) {
	return s.updateThemeFn(ctx, userID, theme)
}

func (s *stubUserService) Suggestions(ctx context.Context, userID string) ([]*domain.User, error) {
	return s.suggestFn(ctx, userID)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, &domain.User{ID: "u1", Username: "alice", Theme: domain.ThemeLight})
	return c
}

func TestUserHandler_PublicProfile(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		profileFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "bob" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u2", Username: "bob"}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("username")
	c.SetParamValues("bob")

	if err := h.PublicProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Username != "bob" || resp.Skills == nil {
		t.Fatalf("unexpected body: %+v", resp)
	}

	c = authedContext(e, httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("username")
	c.SetParamValues("ghost")
	if err := h.PublicProfile(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(_ context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %s", userID)
			}
			if update.Headline == nil || *update.Headline != "Gopher" {
				t.Fatalf("headline not mapped: %+v", update)
			}
			if update.Name != nil {
				t.Fatalf("empty fields must stay nil")
			}
			return &domain.User{ID: "u1", Username: "alice", Headline: *update.Headline}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, jsonRequest(http.MethodPut, "/users/profile", `{"headline":"Gopher"}`), rec)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_Empty(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(context.Context, string, domain.ProfileUpdate) (*domain.User, error) {
			t.Fatalf("should not be called for an empty update")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, jsonRequest(http.MethodPut, "/users/profile", `{}`), rec)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_ClearsHistory(t *testing.T) {
	e := newTestEcho()
	var got domain.ProfileUpdate
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ string, u domain.ProfileUpdate) (*domain.User, error) {
			got = u
			return &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}
	h := NewUserHandler(stub)

	c := authedContext(e, jsonRequest(http.MethodPut, "/users/profile", `{"experience":[]}`), httptest.NewRecorder())
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Experience == nil || len(got.Experience) != 0 {
		t.Fatalf("an empty experience list must reach the service as non-nil, got %#v", got.Experience)
	}
	if got.Education != nil || got.Skills != nil {
		t.Fatalf("omitted lists must stay nil, got education=%#v skills=%#v", got.Education, got.Skills)
	}
}

func TestUserHandler_UpdateProfile_InvalidURL(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c := authedContext(e, jsonRequest(http.MethodPut, "/users/profile", `{"profilePicture":"not a url"}`), httptest.NewRecorder())
	err := h.UpdateProfile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Theme(t *testing.T) {
	e := newTestEcho()
	stored := domain.ThemeLight
	stub := &stubUserService{
		themeFn: func(context.Context, string) (domain.Theme, error) { return stored, nil },
		updateThemeFn: func(_ context.Context, _ string, theme string) (domain.Theme, error) {
			stored = domain.Theme(theme)
			return stored, nil
		},
	}
	h := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, jsonRequest(http.MethodPut, "/users/theme", `{"theme":"dark"}`), rec)
	if err := h.UpdateTheme(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp themeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Theme != "dark" || resp.Message == "" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	rec = httptest.NewRecorder()
	c = authedContext(e, httptest.NewRequest(http.MethodGet, "/users/theme", nil), rec)
	if err := h.GetTheme(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Theme != "dark" {
		t.Fatalf("expected dark, got %q", resp.Theme)
	}
}

func TestUserHandler_UpdateTheme_Invalid(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		updateThemeFn: func(context.Context, string, string) (domain.Theme, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	})

	for _, body := range []string{`{"theme":"solarized"}`, `{}`, `not-json`} {
		c := authedContext(e, jsonRequest(http.MethodPut, "/users/theme", body), httptest.NewRecorder())
		if err := h.UpdateTheme(c); !errors.Is(err, domain.ErrInvalidTheme) {
			t.Fatalf("%s: expected ErrInvalidTheme, got %v", body, err)
		}
	}
}

func TestUserHandler_Suggestions(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		suggestFn: func(context.Context, string) ([]*domain.User, error) {
			return []*domain.User{{ID: "u2", Username: "bob", Email: "bob@example.com"}}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/users/suggestions", nil), rec)
	if err := h.Suggestions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "bob" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, ok := resp[0]["email"]; ok {
		t.Fatalf("suggestion cards must not expose email")
	}
}
