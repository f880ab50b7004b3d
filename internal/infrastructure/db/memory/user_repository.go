// Package memory holds in-process user and post repositories for local
// development and tests. Users follow the same uniqueness rules as the Mongo
// indexes.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int
	byID   map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Skills = append([]string(nil), u.Skills...)
	c.Experience = append([]domain.Experience(nil), u.Experience...)
	c.Education = append([]domain.Education(nil), u.Education...)
	c.Connections = append([]string(nil), u.Connections...)
	return &c
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Email is checked across every user before username, matching Register.
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameExists
		}
	}

	r.nextID++
	stored := cloneUser(user)
	stored.ID = strconv.Itoa(r.nextID)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, p domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Username != nil && *p.Username != u.Username {
		for _, other := range r.byID {
			if other.Username == *p.Username {
				return nil, domain.ErrUsernameExists
			}
		}
	}

	setIf(&u.Name, p.Name)
	setIf(&u.Username, p.Username)
	setIf(&u.Headline, p.Headline)
	setIf(&u.About, p.About)
	setIf(&u.Location, p.Location)
	setIf(&u.ProfilePicture, p.ProfilePicture)
	setIf(&u.BannerImg, p.BannerImg)
	if p.Skills != nil {
		u.Skills = append([]string{}, p.Skills...)
	}
	if p.Experience != nil {
		u.Experience = append([]domain.Experience{}, p.Experience...)
	}
	if p.Education != nil {
		u.Education = append([]domain.Education{}, p.Education...)
	}
	u.UpdatedAt = time.Now().UTC()

	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *UserRepository) UpdateTheme(_ context.Context, id string, theme domain.Theme) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Theme = theme
	u.UpdatedAt = time.Now().UTC()

	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *UserRepository) Suggest(_ context.Context, id string, exclude []string, limit int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skip := make(map[string]struct{}, len(exclude)+1)
	skip[id] = struct{}{}
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	ids := make([]string, 0, len(r.byID))
	for uid := range r.byID {
		ids = append(ids, uid)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})

	out := make([]*domain.User, 0, limit)
	for _, uid := range ids {
		if len(out) >= limit {
			break
		}
		if _, ok := skip[uid]; ok {
			continue
		}
		out = append(out, card(r.byID[uid]))
	}
	return out, nil
}

func (r *UserRepository) FindCards(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.byID[id]; ok {
			out = append(out, card(u))
		}
	}
	return out, nil
}

func card(u *domain.User) *domain.User {
	return &domain.User{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Headline:       u.Headline,
	}
}

// Connect links two users in both directions. Used to seed data.
func (r *UserRepository) Connect(a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ua, ok := r.byID[a]
	if !ok {
		return domain.ErrUserNotFound
	}
	ub, ok := r.byID[b]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !ua.IsConnectedTo(b) {
		ua.Connections = append(ua.Connections, b)
	}
	if !ub.IsConnectedTo(a) {
		ub.Connections = append(ub.Connections, a)
	}
	return nil
}

// Delete removes a user. Tokens already issued for it stop resolving.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
