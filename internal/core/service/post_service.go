package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

// FeedLimit caps the number of posts returned by Feed.
const FeedLimit = 100

// PostService implements the feed and post interactions.
type PostService struct {
	posts ports.PostRepository
	users ports.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, log: log, now: time.Now}
}

// Feed returns the newest posts by the user and their connections.
func (s *PostService) Feed(ctx context.Context, userID string) ([]*domain.PostView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	authors := append([]string{user.ID}, user.Connections...)
	posts, err := s.posts.FindByAuthors(ctx, authors, FeedLimit)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, posts...)
}

// Create publishes a post. Content or an image is required.
func (s *PostService) Create(ctx context.Context, authorID, content, image string) (*domain.PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" && image == "" {
		return nil, domain.ErrPostEmpty
	}

	post, err := s.posts.Create(ctx, domain.NewPost(authorID, content, image, s.now().UTC()))
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("post_id", post.ID).Str("author_id", authorID).Msg("post created")
	return s.resolveOne(ctx, post)
}

func (s *PostService) Get(ctx context.Context, postID string) (*domain.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, post)
}

// Delete removes a post. Only its author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.ErrNotPostAuthor
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.log.Info().Str("post_id", postID).Str("author_id", userID).Msg("post deleted")
	return nil
}

func (s *PostService) Comment(ctx context.Context, userID, postID, content string) (*domain.PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrCommentEmpty
	}

	post, err := s.posts.AddComment(ctx, postID, domain.Comment{
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, post)
}

// ToggleLike likes the post, or unlikes it when the user already did.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (*domain.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post, err = s.posts.SetLike(ctx, postID, userID, !post.LikedBy(userID))
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, post)
}

// DeleteComment removes a comment. The comment's author and the post's
// author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	comment, ok := post.FindComment(commentID)
	if !ok {
		return domain.ErrCommentNotFound
	}
	if comment.UserID != userID && post.AuthorID != userID {
		return domain.ErrCommentDeleteDenied
	}

	_, err = s.posts.RemoveComment(ctx, postID, commentID)
	return err
}

func (s *PostService) resolveOne(ctx context.Context, post *domain.Post) (*domain.PostView, error) {
	views, err := s.resolve(ctx, post)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// resolve loads the profile cards of every author and commenter in posts
// with a single lookup.
func (s *PostService) resolve(ctx context.Context, posts ...*domain.Post) ([]*domain.PostView, error) {
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.PeopleIDs()...)
	}

	people := make(map[string]*domain.User)
	if len(ids) > 0 {
		cards, err := s.users.FindCards(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve post people: %w", err)
		}
		for _, u := range cards {
			people[u.ID] = u
		}
	}

	views := make([]*domain.PostView, len(posts))
	for i, p := range posts {
		views[i] = &domain.PostView{Post: p, People: people}
	}
	return views, nil
}
