package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// PostRepository is the in-process counterpart of the Mongo posts collection.
type PostRepository struct {
	mu            sync.RWMutex
	nextID        int
	nextCommentID int
	byID          map[string]*domain.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{byID: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Comments = append([]domain.Comment{}, p.Comments...)
	return &c
}

func (r *PostRepository) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := clonePost(post)
	stored.ID = strconv.Itoa(r.nextID)
	r.byID[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepository) FindByAuthors(_ context.Context, authorIDs []string, limit int) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make(map[string]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}

	var out []*domain.Post
	for _, p := range r.byID {
		if _, ok := authors[p.AuthorID]; ok {
			out = append(out, clonePost(p))
		}
	}
	// Newest first; ids break ties between posts created in the same instant.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a > b
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *PostRepository) AddComment(_ context.Context, postID string, c domain.Comment) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	r.nextCommentID++
	c.ID = "c" + strconv.Itoa(r.nextCommentID)
	p.Comments = append(p.Comments, c)
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (r *PostRepository) RemoveComment(_ context.Context, postID, commentID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	kept := p.Comments[:0]
	removed := false
	for _, c := range p.Comments {
		if c.ID == commentID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil, domain.ErrCommentNotFound
	}
	p.Comments = kept
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (r *PostRepository) SetLike(_ context.Context, postID, userID string, liked bool) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	switch {
	case liked && !p.LikedBy(userID):
		p.Likes = append(p.Likes, userID)
	case !liked:
		kept := p.Likes[:0]
		for _, id := range p.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.Likes = kept
	}
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}
