package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

const suggestionLimit = 3

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the non-empty fields of update. A username change is
// checked against existing users first and again by the store's unique index.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Username != nil {
		current, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if *update.Username != current.Username {
			taken, err := s.repo.ExistsByUsername(ctx, *update.Username)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrUsernameExists
			}
		}
	}

	user, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

func (s *UserService) GetTheme(ctx context.Context, userID string) (domain.Theme, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Theme, nil
}

func (s *UserService) UpdateTheme(ctx context.Context, userID string, theme string) (domain.Theme, error) {
	t, err := domain.ParseTheme(theme)
	if err != nil {
		return "", err
	}
	user, err := s.repo.UpdateTheme(ctx, userID, t)
	if err != nil {
		return "", err
	}
	return user.Theme, nil
}

// Suggestions lists a few users the caller is not yet connected to.
func (s *UserService) Suggestions(ctx context.Context, userID string) ([]*domain.User, error) {
	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Suggest(ctx, userID, current.Connections, suggestionLimit)
}
