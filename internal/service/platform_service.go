package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

const maxFeePercentage = 100

// PlatformService exposes the singleton configuration record.
type PlatformService interface {
	SetPlatformFee(ctx context.Context, caller string, payload dto.PlatformFeeRequest) (dto.PlatformStateResponse, error)
	GetPlatformState(ctx context.Context) (dto.PlatformStateResponse, error)
}

type platformService struct {
	db        *gorm.DB
	platform  repository.PlatformRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPlatformService constructs the configuration service.
func NewPlatformService(db *gorm.DB, platform repository.PlatformRepository, validate *validator.Validate, logger zerolog.Logger) PlatformService {
	return &platformService{
		db:        db,
		platform:  platform,
		validator: validate,
		logger:    logger.With().Str("component", "platform_service").Logger(),
	}
}

// SetPlatformFee changes the percentage applied to future enrollments.
// Settled enrollments keep the split computed at their time of purchase.
func (s *platformService) SetPlatformFee(ctx context.Context, caller string, payload dto.PlatformFeeRequest) (dto.PlatformStateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PlatformStateResponse{}, err
	}
	percent := *payload.Percent

	var updated models.PlatformState
	err := runStep(ctx, s.db, s.platform, "platform.set_fee", func(tx *gorm.DB, state *models.PlatformState) error {
		if !state.IsOwner(caller) {
			return ErrUnauthorized
		}
		if percent > maxFeePercentage {
			return ErrUnauthorized
		}

		state.FeePercentage = percent
		updated = *state
		return nil
	})
	if err != nil {
		return dto.PlatformStateResponse{}, err
	}

	s.logger.Info().Uint64("fee_percentage", percent).Msg("platform fee updated")

	return dto.NewPlatformStateResponse(updated), nil
}

func (s *platformService) GetPlatformState(ctx context.Context) (dto.PlatformStateResponse, error) {
	state, err := s.platform.Get(ctx)
	if err != nil {
		return dto.PlatformStateResponse{}, err
	}
	return dto.NewPlatformStateResponse(state), nil
}
