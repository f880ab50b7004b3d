package ports

import (
	"context"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// UserService covers the profile operations available to an authorized user.
type UserService interface {
	GetPublicProfile(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	GetTheme(ctx context.Context, userID string) (domain.Theme, error)
	UpdateTheme(ctx context.Context, userID string, theme string) (domain.Theme, error)
	Suggestions(ctx context.Context, userID string) ([]*domain.User, error)
}
