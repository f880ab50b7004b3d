// Package client is a small Go client for the LinkedIn clone API.
//
// The client owns no token state itself: it reads and writes the token
// through the Session it was constructed with.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout  = 10 * time.Second
	headerUserTheme = "X-User-Theme"
)

// ErrNoSession is returned by calls that need a token when the session is empty.
var ErrNoSession = errors.New("client: not logged in")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Profile mirrors the user representation returned by the API.
type Profile struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Theme          string    `json:"theme"`
	Headline       string    `json:"headline"`
	About          string    `json:"about"`
	Location       string    `json:"location"`
	ProfilePicture string    `json:"profilePicture"`
	BannerImg      string    `json:"bannerImg"`
	Skills         []string  `json:"skills"`
	Connections    []string  `json:"connections"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SignupRequest is the registration form.
type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Person is the short user card embedded in posts and comments.
type Person struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Headline       string `json:"headline"`
}

// Comment is a reply under a post. User is nil once the author's account is gone.
type Comment struct {
	ID        string    `json:"_id"`
	User      *Person   `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post mirrors the post representation returned by the API.
type Post struct {
	ID        string    `json:"_id"`
	Author    *Person   `json:"author"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type themeBody struct {
	Theme string `json:"theme"`
}

// Client calls the API under baseURL, for example http://localhost:8080/api/v1.
type Client struct {
	baseURL string
	http    *http.Client
	session Session
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(baseURL string, session Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Signup registers a new account and stores the returned token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	var resp tokenResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp, false); err != nil {
		return err
	}
	return c.session.Set(resp.Token)
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp tokenResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return err
	}
	return c.session.Set(resp.Token)
}

// Logout tells the server and clears the local token. The token is cleared
// even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	var resp messageResponse
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, &resp, false)
	if clearErr := c.session.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// Me returns the authorized user. theme is the X-User-Theme header value, set
// only when the user picked a non-default theme.
func (c *Client) Me(ctx context.Context) (profile *Profile, theme string, err error) {
	var p Profile
	h, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &p, true)
	if err != nil {
		return nil, "", err
	}
	return &p, h.Get(headerUserTheme), nil
}

// Profile fetches another user's public profile.
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var p Profile
	if _, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Theme(ctx context.Context) (string, error) {
	var resp themeBody
	if _, err := c.do(ctx, http.MethodGet, "/users/theme", nil, &resp, true); err != nil {
		return "", err
	}
	return resp.Theme, nil
}

func (c *Client) SetTheme(ctx context.Context, theme string) (string, error) {
	var resp themeBody
	if _, err := c.do(ctx, http.MethodPut, "/users/theme", themeBody{Theme: theme}, &resp, true); err != nil {
		return "", err
	}
	return resp.Theme, nil
}

// Feed returns posts by the authorized user and their connections, newest first.
func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	var posts []Post
	if _, err := c.do(ctx, http.MethodGet, "/posts", nil, &posts, true); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes a post. Either content or image must be set.
func (c *Client) CreatePost(ctx context.Context, content, image string) (*Post, error) {
	body := map[string]string{"content": content, "image": image}
	var p Post
	if _, err := c.do(ctx, http.MethodPost, "/posts/create", body, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/posts/delete/"+url.PathEscape(postID), nil, &messageResponse{}, true)
	return err
}

// ToggleLike likes the post, or unlikes it when already liked.
func (c *Client) ToggleLike(ctx context.Context, postID string) (*Post, error) {
	var p Post
	if _, err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/like", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Comment(ctx context.Context, postID, content string) (*Post, error) {
	var p Post
	body := map[string]string{"content": content}
	if _, err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comment", body, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, auth bool) (http.Header, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if token := c.session.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if auth {
		return nil, ErrNoSession
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageResponse
		_ = json.NewDecoder(resp.Body).Decode(&m)
		if m.Message == "" {
			m.Message = http.StatusText(resp.StatusCode)
		}
		return resp.Header, &APIError{Status: resp.StatusCode, Message: m.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.Header, nil
}
