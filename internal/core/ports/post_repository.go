package ports

import (
	"context"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// PostRepository defines persistence operations for posts and their comments.
// Lookups of an unknown or malformed id report domain.ErrPostNotFound.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindByAuthors returns up to limit posts by any of authorIDs, newest first.
	FindByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// AddComment appends c, assigning its id, and returns the updated post.
	AddComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error)
	RemoveComment(ctx context.Context, postID, commentID string) (*domain.Post, error)
	// SetLike adds or removes userID from the post's likes. Both directions
	// are idempotent.
	SetLike(ctx context.Context, postID, userID string, liked bool) (*domain.Post, error)
}
