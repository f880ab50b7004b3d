package handler

import "time"

// --- Request types ---

// createPostRequest needs content or an image; the service enforces that.
type createPostRequest struct {
	Content string `json:"content" validate:"max=3000"`
	Image   string `json:"image"   validate:"omitempty,url"`
}

type commentRequest struct {
	Content string `json:"content" validate:"max=1000"`
}

// --- Response types ---

// personCard is the author or commenter shown next to a post. It is null in
// the JSON when the account no longer exists.
type personCard struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Headline       string `json:"headline"`
}

type commentResponse struct {
	ID        string      `json:"_id"`
	Content   string      `json:"content"`
	User      *personCard `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

type postResponse struct {
	ID        string            `json:"_id"`
	Author    *personCard       `json:"author"`
	Content   string            `json:"content"`
	Image     string            `json:"image,omitempty"`
	Likes     []string          `json:"likes"`
	Comments  []commentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
