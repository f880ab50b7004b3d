package domain

import "time"

// Post is a status update shared with the author's connections.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	Image     string
	Likes     []string
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is a reply on a post. IDs are assigned by the store.
type Comment struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// NewPost builds a post ready for insertion.
func NewPost(authorID, content, image string, now time.Time) *Post {
	return &Post{
		AuthorID:  authorID,
		Content:   content,
		Image:     image,
		Likes:     []string{},
		Comments:  []Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LikedBy reports whether userID has liked the post.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id.
func (p *Post) FindComment(id string) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// PeopleIDs lists the author and every commenter once, author first.
func (p *Post) PeopleIDs() []string {
	seen := map[string]struct{}{p.AuthorID: {}}
	ids := []string{p.AuthorID}
	for _, c := range p.Comments {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}
	return ids
}

// PostView is a post with the people it mentions resolved to profile cards.
// People is keyed by user id; a missing entry means the account is gone.
type PostView struct {
	Post   *Post
	People map[string]*User
}

// Author returns the author's card, or nil when the account no longer exists.
func (v *PostView) Author() *User {
	return v.People[v.Post.AuthorID]
}
