package dto

import "github.com/edumarket/elearn-api/internal/models"

// CourseCreateRequest registers a new course for the calling instructor.
type CourseCreateRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Price         uint64   `json:"price"`
	ContentHash   string   `json:"content_hash" validate:"required,max=255"`
	Category      string   `json:"category" validate:"max=128"`
	Description   string   `json:"description" validate:"max=5000"`
	Prerequisites []uint64 `json:"prerequisites"`
}

// CourseUpdateRequest edits mutable course fields. The id, instructor and
// creation sequence never change.
type CourseUpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,max=255"`
	Price         *uint64  `json:"price"`
	ContentHash   *string  `json:"content_hash" validate:"omitempty,max=255"`
	Category      *string  `json:"category" validate:"omitempty,max=128"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Prerequisites []uint64 `json:"prerequisites"`
}

// CourseStatusRequest toggles the is-active flag.
type CourseStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// CourseResponse is the API view of a catalog entry.
type CourseResponse struct {
	ID            uint64   `json:"id"`
	Title         string   `json:"title"`
	Instructor    string   `json:"instructor"`
	Price         uint64   `json:"price"`
	ContentHash   string   `json:"content_hash"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	IsActive      bool     `json:"is_active"`
	TotalStudents uint     `json:"total_students"`
	AverageRating uint     `json:"average_rating"`
	TotalRatings  uint     `json:"total_ratings"`
	Prerequisites []uint64 `json:"prerequisites"`
	CreatedAt     uint64   `json:"created_at"`
}

// NewCourseResponse maps a model to its API representation.
func NewCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Instructor:    course.Instructor,
		Price:         course.Price,
		ContentHash:   course.ContentHash,
		Category:      course.Category,
		Description:   course.Description,
		IsActive:      course.IsActive,
		TotalStudents: course.TotalStudents,
		AverageRating: course.AverageRating,
		TotalRatings:  course.TotalRatings,
		Prerequisites: emptyIfNil(course.Prerequisites),
		CreatedAt:     course.CreatedSeq,
	}
}

// NewCourseResponseSlice maps a list of courses.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
