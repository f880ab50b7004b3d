package ports

import (
	"context"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// PostService covers the feed and post interactions of an authorized user.
type PostService interface {
	Feed(ctx context.Context, userID string) ([]*domain.PostView, error)
	Create(ctx context.Context, authorID, content, image string) (*domain.PostView, error)
	Get(ctx context.Context, postID string) (*domain.PostView, error)
	Delete(ctx context.Context, userID, postID string) error
	Comment(ctx context.Context, userID, postID, content string) (*domain.PostView, error)
	ToggleLike(ctx context.Context, userID, postID string) (*domain.PostView, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) error
}
