package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

// BcryptCost is the work factor used for password hashes.
const BcryptCost = 10

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenAuthority
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenAuthority, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log, now: time.Now}
}

// Register validates the signup form, stores the new user and returns it with
// a freshly issued token.
//
// Checks run in a fixed order: field presence, email uniqueness, username
// uniqueness, password length. The existence lookups only short-circuit the
// common case; the repository's unique indexes decide concurrent races.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	if in.Name == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", domain.ErrFieldsRequired
	}

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", domain.ErrEmailExists
	}

	exists, err = s.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, "", fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, "", domain.ErrUsernameExists
	}

	if utf8.RuneCountInString(in.Password) < domain.MinPasswordLength {
		return nil, "", domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(in.Name, in.Username, in.Email, string(hash), s.now().UTC())
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, token, nil
}

// Login checks a username/password pair. Unknown users and wrong passwords
// produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}
