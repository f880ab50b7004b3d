package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

func create(t *testing.T, r *UserRepository, username, email string) *domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), domain.NewUser(username, username, email, "hash-"+username, time.Now()))
	if err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return u
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	alice := create(t, r, "alice", "alice@example.com")
	if alice.ID == "" {
		t.Fatalf("expected an id")
	}

	byName, err := r.FindByUsername(ctx, "alice")
	if err != nil || byName.PasswordHash != "hash-alice" {
		t.Fatalf("FindByUsername must include the hash, got %+v (err %v)", byName, err)
	}

	byID, err := r.FindByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.PasswordHash != "" {
		t.Fatalf("FindByID must not include the hash")
	}

	if _, err := r.FindByID(ctx, "999"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := r.FindByUsername(ctx, "Alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("username lookup must be case-sensitive, got %v", err)
	}
}

func TestUserRepository_Uniqueness(t *testing.T) {
	r := NewUserRepository()
	create(t, r, "alice", "alice@example.com")

	if _, err := r.Create(context.Background(), domain.NewUser("x", "alice2", "alice@example.com", "h", time.Now())); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, err := r.Create(context.Background(), domain.NewUser("x", "alice", "x@example.com", "h", time.Now())); !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	exists, _ := r.ExistsByEmail(context.Background(), "alice@example.com")
	if !exists {
		t.Fatalf("expected email to exist")
	}
	exists, _ = r.ExistsByUsername(context.Background(), "bob")
	if exists {
		t.Fatalf("expected username to be free")
	}
}

func TestUserRepository_EmailConflictWinsOverUsername(t *testing.T) {
	r := NewUserRepository()
	create(t, r, "alice", "alice@example.com")
	create(t, r, "bob", "bob@example.com")

	// Email belongs to alice, username to bob. Repeat to cover map ordering.
	for i := 0; i < 50; i++ {
		_, err := r.Create(context.Background(), domain.NewUser("x", "bob", "alice@example.com", "h", time.Now()))
		if !errors.Is(err, domain.ErrEmailExists) {
			t.Fatalf("attempt %d: expected ErrEmailExists, got %v", i, err)
		}
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	r := NewUserRepository()
	alice := create(t, r, "alice", "alice@example.com")

	alice.Name = "mutated"
	alice.Skills = append(alice.Skills, "leak")

	got, _ := r.FindByID(context.Background(), alice.ID)
	if got.Name != "alice" || len(got.Skills) != 0 {
		t.Fatalf("stored user was mutated through a returned pointer: %+v", got)
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	r := NewUserRepository()
	alice := create(t, r, "alice", "alice@example.com")
	create(t, r, "bob", "bob@example.com")
	ctx := context.Background()

	bob := "bob"
	if _, err := r.UpdateProfile(ctx, alice.ID, domain.ProfileUpdate{Username: &bob}); !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	loc := "Lisbon"
	u, err := r.UpdateProfile(ctx, alice.ID, domain.ProfileUpdate{Location: &loc})
	if err != nil || u.Location != "Lisbon" || u.PasswordHash != "" {
		t.Fatalf("unexpected update result: %+v (err %v)", u, err)
	}

	if _, err := r.UpdateProfile(ctx, "999", domain.ProfileUpdate{Location: &loc}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Suggest(t *testing.T) {
	r := NewUserRepository()
	alice := create(t, r, "alice", "alice@example.com")
	bob := create(t, r, "bob", "bob@example.com")
	create(t, r, "carol", "carol@example.com")
	create(t, r, "dave", "dave@example.com")

	if err := r.Connect(alice.ID, bob.ID); err != nil {
		t.Fatalf("connect: %v", err)
	}
	me, _ := r.FindByID(context.Background(), alice.ID)

	got, err := r.Suggest(context.Background(), alice.ID, me.Connections, 3)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 || got[0].Username != "carol" || got[1].Username != "dave" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}
	if got[0].Email != "" || got[0].PasswordHash != "" {
		t.Fatalf("suggestions must only carry card fields")
	}
}

func TestUserRepository_Delete(t *testing.T) {
	r := NewUserRepository()
	alice := create(t, r, "alice", "alice@example.com")

	r.Delete(alice.ID)
	if _, err := r.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindCards(t *testing.T) {
	r := NewUserRepository()
	alice := create(t, r, "alice", "alice@example.com")
	bob := create(t, r, "bob", "bob@example.com")

	got, err := r.FindCards(context.Background(), []string{alice.ID, "999", bob.ID, alice.ID})
	if err != nil {
		t.Fatalf("FindCards: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(got))
	}
	for _, u := range got {
		if u.Email != "" || u.PasswordHash != "" {
			t.Fatalf("cards must only carry public fields: %+v", u)
		}
	}
}

func TestUserRepository_UpdateProfileHistory(t *testing.T) {
	r := NewUserRepository()
	alice := create(t, r, "alice", "alice@example.com")
	ctx := context.Background()

	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	u, err := r.UpdateProfile(ctx, alice.ID, domain.ProfileUpdate{
		Skills:     []string{"go"},
		Experience: []domain.Experience{{Title: "Engineer", Company: "Acme", StartDate: start}},
		Education:  []domain.Education{{School: "MIT", StartYear: 2012, EndYear: 2016}},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if len(u.Experience) != 1 || u.Experience[0].Company != "Acme" || len(u.Education) != 1 {
		t.Fatalf("history not stored: %+v", u)
	}

	// nil leaves a list alone, an empty slice clears it.
	u, _ = r.UpdateProfile(ctx, alice.ID, domain.ProfileUpdate{Skills: []string{}})
	if len(u.Skills) != 0 || len(u.Experience) != 1 {
		t.Fatalf("unexpected lists after clearing skills: %+v", u)
	}
}
