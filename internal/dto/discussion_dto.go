package dto

import "github.com/edumarket/elearn-api/internal/models"

// DiscussionPostCreateRequest creates a forum post on a course the caller is
// enrolled in.
type DiscussionPostCreateRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// DiscussionPostResponse is the API view of a forum post.
type DiscussionPostResponse struct {
	CourseID  uint64 `json:"course_id"`
	PostID    uint64 `json:"post_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Upvotes   uint   `json:"upvotes"`
	CreatedAt uint64 `json:"created_at"`
}

// NewDiscussionPostResponse maps a model to its API representation.
func NewDiscussionPostResponse(post models.DiscussionPost) DiscussionPostResponse {
	return DiscussionPostResponse{
		CourseID:  post.CourseID,
		PostID:    post.PostID,
		Author:    post.Author,
		Content:   post.Content,
		Upvotes:   post.Upvotes,
		CreatedAt: post.CreatedSeq,
	}
}

// NewDiscussionPostResponseSlice maps a list of posts.
func NewDiscussionPostResponseSlice(posts []models.DiscussionPost) []DiscussionPostResponse {
	responses := make([]DiscussionPostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, NewDiscussionPostResponse(post))
	}
	return responses
}
