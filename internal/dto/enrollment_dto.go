package dto

import "github.com/edumarket/elearn-api/internal/models"

// ProgressUpdateRequest sets the caller's progress for a course.
type ProgressUpdateRequest struct {
	Progress *uint `json:"progress" validate:"required"`
}

// CertificateRequest stores the completion certificate hash.
type CertificateRequest struct {
	CertificateHash string `json:"certificate_hash" validate:"required,max=255"`
}

// RatingRequest submits the caller's rating for a course.
type RatingRequest struct {
	Rating *uint `json:"rating" validate:"required"`
}

// EnrollmentResponse is the API view of an enrollment record.
type EnrollmentResponse struct {
	Student               string  `json:"student"`
	CourseID              uint64  `json:"course_id"`
	EnrolledAt            uint64  `json:"enrolled_at"`
	LastAccessed          uint64  `json:"last_accessed"`
	Completed             bool    `json:"completed"`
	Progress              uint    `json:"progress"`
	Rating                *uint   `json:"rating"`
	CompletionCertificate *string `json:"completion_certificate"`
}

// NewEnrollmentResponse maps a model to its API representation.
func NewEnrollmentResponse(enrollment models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		Student:               enrollment.StudentAccount,
		CourseID:              enrollment.CourseID,
		EnrolledAt:            enrollment.EnrolledSeq,
		LastAccessed:          enrollment.LastAccessedSeq,
		Completed:             enrollment.Completed,
		Progress:              enrollment.Progress,
		Rating:                enrollment.Rating,
		CompletionCertificate: enrollment.CertificateHash,
	}
}

// NewEnrollmentResponseSlice maps a list of enrollments.
func NewEnrollmentResponseSlice(enrollments []models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewEnrollmentResponse(enrollment))
	}
	return responses
}
