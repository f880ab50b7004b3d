package handler

import (
	"time"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// --- Request → domain ---

func toProfileUpdate(req updateProfileRequest) domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:           nonEmpty(req.Name),
		Username:       nonEmpty(req.Username),
		Headline:       nonEmpty(req.Headline),
		About:          nonEmpty(req.About),
		Location:       nonEmpty(req.Location),
		ProfilePicture: nonEmpty(req.ProfilePicture),
		BannerImg:      nonEmpty(req.BannerImg),
		Skills:         req.Skills,
		Experience:     toExperience(req.Experience),
		Education:      toEducation(req.Education),
	}
}

// toExperience keeps nil apart from empty so an empty list clears the field.
func toExperience(in []experienceRequest) []domain.Experience {
	if in == nil {
		return nil
	}
	out := make([]domain.Experience, len(in))
	for i, e := range in {
		out[i] = domain.Experience{
			Title:       e.Title,
			Company:     e.Company,
			StartDate:   e.StartDate.UTC(),
			EndDate:     utcPtr(e.EndDate),
			Description: e.Description,
		}
	}
	return out
}

func toEducation(in []educationRequest) []domain.Education {
	if in == nil {
		return nil
	}
	out := make([]domain.Education, len(in))
	for i, e := range in {
		out[i] = domain.Education(e)
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Email:          u.Email,
		Theme:          string(u.Theme),
		Headline:       u.Headline,
		About:          u.About,
		Location:       u.Location,
		ProfilePicture: u.ProfilePicture,
		BannerImg:      u.BannerImg,
		Skills:         orEmpty(u.Skills),
		Experience:     toExperienceResponse(u.Experience),
		Education:      toEducationResponse(u.Education),
		Connections:    orEmpty(u.Connections),
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	}
}

func toExperienceResponse(in []domain.Experience) []experienceResponse {
	out := make([]experienceResponse, len(in))
	for i, e := range in {
		out[i] = experienceResponse{
			Title:       e.Title,
			Company:     e.Company,
			StartDate:   e.StartDate.UTC(),
			EndDate:     utcPtr(e.EndDate),
			Description: e.Description,
		}
	}
	return out
}

func toEducationResponse(in []domain.Education) []educationResponse {
	out := make([]educationResponse, len(in))
	for i, e := range in {
		out[i] = educationResponse(e)
	}
	return out
}

func toSuggestionsResponse(users []*domain.User) []suggestionResponse {
	out := make([]suggestionResponse, len(users))
	for i, u := range users {
		out[i] = suggestionResponse{
			ID:             u.ID,
			Name:           u.Name,
			Username:       u.Username,
			ProfilePicture: u.ProfilePicture,
			Headline:       u.Headline,
		}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
