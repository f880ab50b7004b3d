package handler

import (
	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// --- domain → HTTP response ---

func toPostResponse(v *domain.PostView) postResponse {
	p := v.Post
	comments := make([]commentResponse, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = commentResponse{
			ID:        c.ID,
			Content:   c.Content,
			User:      toPersonCard(v.People[c.UserID]),
			CreatedAt: c.CreatedAt.UTC(),
		}
	}
	return postResponse{
		ID:        p.ID,
		Author:    toPersonCard(v.Author()),
		Content:   p.Content,
		Image:     p.Image,
		Likes:     orEmpty(p.Likes),
		Comments:  comments,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toPostsResponse(views []*domain.PostView) []postResponse {
	out := make([]postResponse, len(views))
	for i, v := range views {
		out[i] = toPostResponse(v)
	}
	return out
}

func toPersonCard(u *domain.User) *personCard {
	if u == nil {
		return nil
	}
	return &personCard{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Headline:       u.Headline,
	}
}
