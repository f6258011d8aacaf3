package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
)

// CourseRepository persists catalog entries keyed by their numeric id.
type CourseRepository interface {
	WithTx(tx *gorm.DB) CourseRepository
	Get(ctx context.Context, id uint64) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Save(ctx context.Context, course *models.Course) error
	List(ctx context.Context, limit, offset int) ([]models.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) WithTx(tx *gorm.DB) CourseRepository {
	return &courseRepository{db: tx}
}

func (r *courseRepository) Get(ctx context.Context, id uint64) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Save(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) List(ctx context.Context, limit, offset int) ([]models.Course, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var courses []models.Course
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}
