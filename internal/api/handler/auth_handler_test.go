package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/api/middleware"
	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, username, password)
}

// stubNotifier records welcome messages together with the response status
// that had been written when NotifyWelcome ran.
type stubNotifier struct {
	rec      *httptest.ResponseRecorder
	sent     []ports.WelcomeMessage
	statuses []int
}

func (n *stubNotifier) NotifyWelcome(msg ports.WelcomeMessage) {
	n.sent = append(n.sent, msg)
	if n.rec != nil {
		n.statuses = append(n.statuses, n.rec.Code)
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, string, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" || in.Password != "pass123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Username: in.Username, Email: in.Email}, "token123", nil
		},
	}
	rec := httptest.NewRecorder()
	notifier := &stubNotifier{rec: rec}
	h := NewAuthHandler(stub, notifier, "http://localhost:5173")

	req := jsonRequest(http.MethodPost, "/auth/signup", `{"name":"Alice","username":"alice","email":"alice@example.com","password":"pass123"}`)
	c := e.NewContext(req, rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully" || resp["token"] != "token123" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one welcome message, got %d", len(notifier.sent))
	}
	if notifier.statuses[0] != http.StatusCreated {
		t.Fatalf("welcome must be scheduled after the response is written, saw status %d", notifier.statuses[0])
	}
	msg := notifier.sent[0]
	if msg.UserID != "u1" || msg.Email != "alice@example.com" || msg.ProfileURL != "http://localhost:5173/profile/alice" {
		t.Fatalf("unexpected welcome message: %+v", msg)
	}
}

func TestAuthHandler_Signup_MissingField(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	notifier := &stubNotifier{}
	h := NewAuthHandler(stub, notifier, "")

	req := jsonRequest(http.MethodPost, "/auth/signup", `{"name":"Alice","username":"alice","email":"alice@example.com"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Signup(c); !errors.Is(err, domain.ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no welcome message expected on failure")
	}
}

func TestAuthHandler_Signup_MalformedEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub, &stubNotifier{}, "")

	for _, email := range []string{"alice", "alice@", "@example.com", "alice example.com"} {
		body := `{"name":"Alice","username":"alice","email":"` + email + `","password":"pass123"}`
		c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), httptest.NewRecorder())
		if err := h.Signup(c); !errors.Is(err, domain.ErrInvalidEmail) {
			t.Fatalf("%q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestAuthHandler_Signup_ServiceError(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			return nil, "", domain.ErrEmailExists
		},
	}
	notifier := &stubNotifier{}
	h := NewAuthHandler(stub, notifier, "")

	req := jsonRequest(http.MethodPost, "/auth/signup", `{"name":"A","username":"a","email":"a@example.com","password":"pass123"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Signup(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no welcome message expected on failure")
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, nil, "")

	req := jsonRequest(http.MethodPost, "/auth/signup", "not-json")
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*domain.User, string, error) {
			if username != "alice" || password != "pass123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "u1", Username: "alice"}, "token123", nil
		},
	}
	h := NewAuthHandler(stub, nil, "")

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"pass123"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.Message != "Logged in successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil, "")

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"nope"}`), httptest.NewRecorder())
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, nil, "")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, nil, "")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)
	c.Set(middleware.ContextUserKey, &domain.User{ID: "u1", Username: "alice", PasswordHash: "secret-hash", Theme: domain.ThemeDark})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks the password hash: %s", rec.Body.String())
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "u1" || resp.Theme != "dark" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Me_WithoutUser(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, nil, "")

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), httptest.NewRecorder())
	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
