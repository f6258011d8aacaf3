package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
)

// PlatformRepository persists the singleton platform configuration row.
type PlatformRepository interface {
	WithTx(tx *gorm.DB) PlatformRepository
	Ensure(ctx context.Context, owner string, feePercentage uint64) error
	Get(ctx context.Context) (models.PlatformState, error)
	Save(ctx context.Context, state *models.PlatformState) error
}

type platformRepository struct {
	db *gorm.DB
}

// NewPlatformRepository constructs a GORM-backed repository.
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepository{db: db}
}

func (r *platformRepository) WithTx(tx *gorm.DB) PlatformRepository {
	return &platformRepository{db: tx}
}

// Ensure seeds the configuration row on first boot. The owner identity and
// counters are never touched again once the row exists.
func (r *platformRepository) Ensure(ctx context.Context, owner string, feePercentage uint64) error {
	state := models.PlatformState{
		ID:            models.PlatformStateID,
		OwnerAccount:  owner,
		FeePercentage: feePercentage,
		NextCourseID:  1,
		NextPostID:    1,
		Sequence:      0,
	}
	return r.db.WithContext(ctx).
		Where(models.PlatformState{ID: models.PlatformStateID}).
		FirstOrCreate(&state).Error
}

func (r *platformRepository) Get(ctx context.Context) (models.PlatformState, error) {
	var state models.PlatformState
	if err := r.db.WithContext(ctx).First(&state, models.PlatformStateID).Error; err != nil {
		return models.PlatformState{}, err
	}
	return state, nil
}

func (r *platformRepository) Save(ctx context.Context, state *models.PlatformState) error {
	return r.db.WithContext(ctx).Save(state).Error
}
