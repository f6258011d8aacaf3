package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
)

// StudentProfileRepository persists student profiles keyed by account.
type StudentProfileRepository interface {
	WithTx(tx *gorm.DB) StudentProfileRepository
	Get(ctx context.Context, account string) (models.StudentProfile, error)
	Create(ctx context.Context, profile *models.StudentProfile) error
	Save(ctx context.Context, profile *models.StudentProfile) error
}

type studentProfileRepository struct {
	db *gorm.DB
}

// NewStudentProfileRepository constructs a GORM-backed repository.
func NewStudentProfileRepository(db *gorm.DB) StudentProfileRepository {
	return &studentProfileRepository{db: db}
}

func (r *studentProfileRepository) WithTx(tx *gorm.DB) StudentProfileRepository {
	return &studentProfileRepository{db: tx}
}

func (r *studentProfileRepository) Get(ctx context.Context, account string) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).First(&profile, "account = ?", account).Error; err != nil {
		return models.StudentProfile{}, err
	}
	return profile, nil
}

func (r *studentProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *studentProfileRepository) Save(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
