package dto

import "github.com/edumarket/elearn-api/internal/models"

// PlatformFeeRequest updates the platform fee percentage. Owner-only.
type PlatformFeeRequest struct {
	Percent *uint64 `json:"percent" validate:"required"`
}

// PlatformStateResponse exposes the singleton configuration record.
type PlatformStateResponse struct {
	Owner         string `json:"owner"`
	FeePercentage uint64 `json:"fee_percentage"`
	NextCourseID  uint64 `json:"next_course_id"`
	NextPostID    uint64 `json:"next_post_id"`
	Sequence      uint64 `json:"sequence"`
}

// NewPlatformStateResponse maps the configuration row to its API view.
func NewPlatformStateResponse(state models.PlatformState) PlatformStateResponse {
	return PlatformStateResponse{
		Owner:         state.OwnerAccount,
		FeePercentage: state.FeePercentage,
		NextCourseID:  state.NextCourseID,
		NextPostID:    state.NextPostID,
		Sequence:      state.Sequence,
	}
}
