package ports

import (
	"context"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// RegisterInput carries the signup form.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// AuthService validates credentials and hands out session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

// TokenAuthority issues and checks bearer tokens and resolves them to users.
type TokenAuthority interface {
	Issue(userID string) (string, error)
	ExtractBearer(header string) (string, error)
	Verify(token string) (string, error)
	Resolve(ctx context.Context, userID string) (*domain.User, error)
}
