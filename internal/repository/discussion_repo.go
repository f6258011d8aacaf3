package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
)

// DiscussionRepository persists forum posts under the composite
// (course id, post id) key.
type DiscussionRepository interface {
	WithTx(tx *gorm.DB) DiscussionRepository
	Get(ctx context.Context, courseID, postID uint64) (models.DiscussionPost, error)
	Create(ctx context.Context, post *models.DiscussionPost) error
	Save(ctx context.Context, post *models.DiscussionPost) error
	ListByCourse(ctx context.Context, courseID uint64, limit, offset int) ([]models.DiscussionPost, error)
}

type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository constructs a GORM-backed repository.
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) WithTx(tx *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: tx}
}

func (r *discussionRepository) Get(ctx context.Context, courseID, postID uint64) (models.DiscussionPost, error) {
	var post models.DiscussionPost
	if err := r.db.WithContext(ctx).
		First(&post, "course_id = ? AND post_id = ?", courseID, postID).Error; err != nil {
		return models.DiscussionPost{}, err
	}
	return post, nil
}

func (r *discussionRepository) Create(ctx context.Context, post *models.DiscussionPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *discussionRepository) Save(ctx context.Context, post *models.DiscussionPost) error {
	return r.db.WithContext(ctx).
		Model(&models.DiscussionPost{}).
		Where("course_id = ? AND post_id = ?", post.CourseID, post.PostID).
		Updates(map[string]interface{}{
			"content": post.Content,
			"upvotes": post.Upvotes,
		}).Error
}

func (r *discussionRepository) ListByCourse(ctx context.Context, courseID uint64, limit, offset int) ([]models.DiscussionPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var posts []models.DiscussionPost
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("post_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}
