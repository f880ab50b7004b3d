package domain

import "time"

// Theme is the user's display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme returns the Theme named by s or ErrInvalidTheme.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", ErrInvalidTheme
	}
	return t, nil
}

// MinPasswordLength is the shortest password accepted at registration,
// counted in characters rather than bytes.
const MinPasswordLength = 6

// User models an authenticated member of the network.
type User struct {
	ID             string       `json:"_id"`
	Name           string       `json:"name"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	Theme          Theme        `json:"theme"`
	Headline       string       `json:"headline"`
	About          string       `json:"about,omitempty"`
	Location       string       `json:"location"`
	ProfilePicture string       `json:"profilePicture"`
	BannerImg      string       `json:"bannerImg"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Connections    []string     `json:"connections"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Experience is one position on a profile. A nil EndDate means current.
type Experience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description"`
}

// Education is one school entry on a profile. Zero years are unknown.
type Education struct {
	School       string `json:"school"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
}

// NewUser builds a user ready for insertion. Theme starts at DefaultTheme.
func NewUser(name, username, email, passwordHash string, now time.Time) *User {
	return &User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Theme:        DefaultTheme,
		Skills:       []string{},
		Experience:   []Experience{},
		Education:    []Education{},
		Connections:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsConnectedTo reports whether otherID is among u's connections.
func (u *User) IsConnectedTo(otherID string) bool {
	for _, id := range u.Connections {
		if id == otherID {
			return true
		}
	}
	return false
}

// ProfileUpdate carries the editable profile fields. Nil pointers and nil
// slices are left untouched; a non-nil empty slice clears the list.
type ProfileUpdate struct {
	Name           *string
	Username       *string
	Headline       *string
	About          *string
	Location       *string
	ProfilePicture *string
	BannerImg      *string
	Skills         []string
	Experience     []Experience
	Education      []Education
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Username == nil && p.Headline == nil && p.About == nil &&
		p.Location == nil && p.ProfilePicture == nil && p.BannerImg == nil &&
		p.Skills == nil && p.Experience == nil && p.Education == nil
}
