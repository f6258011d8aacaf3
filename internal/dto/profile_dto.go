package dto

import "github.com/edumarket/elearn-api/internal/models"

// StudentProfileCreateRequest creates a learner profile for the caller.
type StudentProfileCreateRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// PreferencesUpdateRequest replaces the caller's preference list wholesale.
type PreferencesUpdateRequest struct {
	Preferences []string `json:"preferences" validate:"dive,max=64"`
}

// InstructorProfileCreateRequest creates an instructor profile for the caller.
type InstructorProfileCreateRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Credentials string   `json:"credentials" validate:"max=512"`
	Bio         string   `json:"bio" validate:"max=2000"`
	SocialLinks []string `json:"social_links" validate:"dive,max=255"`
}

// AchievementAwardRequest appends an achievement to a student profile.
// Owner-only.
type AchievementAwardRequest struct {
	Account string `json:"account" validate:"required,max=128"`
	Text    string `json:"text" validate:"required,max=255"`
}

// StudentProfileResponse is the API view of a student profile.
type StudentProfileResponse struct {
	Account          string   `json:"account"`
	Name             string   `json:"name"`
	CompletedCourses uint     `json:"completed_courses"`
	TotalSpent       uint64   `json:"total_spent"`
	Achievements     []string `json:"achievements"`
	JoinedAt         uint64   `json:"joined_at"`
	Preferences      []string `json:"preferences"`
}

// InstructorProfileResponse is the API view of an instructor profile.
type InstructorProfileResponse struct {
	Account       string   `json:"account"`
	Name          string   `json:"name"`
	Credentials   string   `json:"credentials"`
	Bio           string   `json:"bio"`
	SocialLinks   []string `json:"social_links"`
	Rating        uint     `json:"rating"`
	TotalReviews  uint     `json:"total_reviews"`
	TotalStudents uint     `json:"total_students"`
	TotalEarnings uint64   `json:"total_earnings"`
}

// NewStudentProfileResponse maps a model to its API representation.
func NewStudentProfileResponse(profile models.StudentProfile) StudentProfileResponse {
	return StudentProfileResponse{
		Account:          profile.Account,
		Name:             profile.Name,
		CompletedCourses: profile.CompletedCourses,
		TotalSpent:       profile.TotalSpent,
		Achievements:     emptyIfNil(profile.Achievements),
		JoinedAt:         profile.JoinedSeq,
		Preferences:      emptyIfNil(profile.Preferences),
	}
}

// NewInstructorProfileResponse maps a model to its API representation.
func NewInstructorProfileResponse(profile models.InstructorProfile) InstructorProfileResponse {
	return InstructorProfileResponse{
		Account:       profile.Account,
		Name:          profile.Name,
		Credentials:   profile.Credentials,
		Bio:           profile.Bio,
		SocialLinks:   emptyIfNil(profile.SocialLinks),
		Rating:        profile.Rating,
		TotalReviews:  profile.TotalReviews,
		TotalStudents: profile.TotalStudents,
		TotalEarnings: profile.TotalEarnings,
	}
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
