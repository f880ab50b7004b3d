package handler

import "time"

// --- Request types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// updateProfileRequest lists the editable fields. Empty strings and absent
// lists are ignored; an empty list clears it.
type updateProfileRequest struct {
	Name           string              `json:"name"           validate:"omitempty,max=100"`
	Username       string              `json:"username"       validate:"omitempty,max=50"`
	Headline       string              `json:"headline"       validate:"omitempty,max=200"`
	About          string              `json:"about"          validate:"omitempty,max=2000"`
	Location       string              `json:"location"       validate:"omitempty,max=100"`
	ProfilePicture string              `json:"profilePicture" validate:"omitempty,url"`
	BannerImg      string              `json:"bannerImg"      validate:"omitempty,url"`
	Skills         []string            `json:"skills"         validate:"omitempty,dive,required,max=50"`
	Experience     []experienceRequest `json:"experience"     validate:"omitempty,max=50,dive"`
	Education      []educationRequest  `json:"education"      validate:"omitempty,max=50,dive"`
}

type experienceRequest struct {
	Title       string     `json:"title"       validate:"required,max=100"`
	Company     string     `json:"company"     validate:"required,max=100"`
	StartDate   time.Time  `json:"startDate"   validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description" validate:"max=2000"`
}

type educationRequest struct {
	School       string `json:"school"       validate:"required,max=100"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"max=100"`
	StartYear    int    `json:"startYear"    validate:"omitempty,min=1900,max=2100"`
	EndYear      int    `json:"endYear"      validate:"omitempty,min=1900,max=2100"`
}

type updateThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract does not follow domain changes.

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type userResponse struct {
	ID             string               `json:"_id"`
	Name           string               `json:"name"`
	Username       string               `json:"username"`
	Email          string               `json:"email"`
	Theme          string               `json:"theme"`
	Headline       string               `json:"headline"`
	About          string               `json:"about"`
	Location       string               `json:"location"`
	ProfilePicture string               `json:"profilePicture"`
	BannerImg      string               `json:"bannerImg"`
	Skills         []string             `json:"skills"`
	Experience     []experienceResponse `json:"experience"`
	Education      []educationResponse  `json:"education"`
	Connections    []string             `json:"connections"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

type experienceResponse struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`
}

type educationResponse struct {
	School       string `json:"school"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
}

// suggestionResponse is the lightweight card used in the suggestions list.
type suggestionResponse struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Headline       string `json:"headline"`
}

type themeResponse struct {
	Message string `json:"message,omitempty"`
	Theme   string `json:"theme"`
}
