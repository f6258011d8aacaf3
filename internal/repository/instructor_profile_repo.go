package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
)

// InstructorProfileRepository persists instructor profiles keyed by account.
type InstructorProfileRepository interface {
	WithTx(tx *gorm.DB) InstructorProfileRepository
	Get(ctx context.Context, account string) (models.InstructorProfile, error)
	Create(ctx context.Context, profile *models.InstructorProfile) error
	Save(ctx context.Context, profile *models.InstructorProfile) error
}

type instructorProfileRepository struct {
	db *gorm.DB
}

// NewInstructorProfileRepository constructs a GORM-backed repository.
func NewInstructorProfileRepository(db *gorm.DB) InstructorProfileRepository {
	return &instructorProfileRepository{db: db}
}

func (r *instructorProfileRepository) WithTx(tx *gorm.DB) InstructorProfileRepository {
	return &instructorProfileRepository{db: tx}
}

func (r *instructorProfileRepository) Get(ctx context.Context, account string) (models.InstructorProfile, error) {
	var profile models.InstructorProfile
	if err := r.db.WithContext(ctx).First(&profile, "account = ?", account).Error; err != nil {
		return models.InstructorProfile{}, err
	}
	return profile, nil
}

func (r *instructorProfileRepository) Create(ctx context.Context, profile *models.InstructorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *instructorProfileRepository) Save(ctx context.Context, profile *models.InstructorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
