package ports

import (
	"context"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Implementations must enforce username and email uniqueness at the storage
// level and report a violation as domain.ErrUsernameExists or
// domain.ErrEmailExists; callers treat their own existence checks as advisory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns the user including its password hash.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID returns the user without its password hash.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	UpdateTheme(ctx context.Context, id string, theme domain.Theme) (*domain.User, error)
	// Suggest returns up to limit users that are neither id nor in exclude.
	Suggest(ctx context.Context, id string, exclude []string, limit int) ([]*domain.User, error)
	// FindCards returns the profile card fields (id, name, username, picture,
	// headline) of the users in ids that exist, in no particular order.
	FindCards(ctx context.Context, ids []string) ([]*domain.User, error)
}
