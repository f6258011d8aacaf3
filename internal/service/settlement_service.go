package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

// splitPrice divides a course price into the platform fee and the
// instructor's share. Integer arithmetic, truncating toward zero.
func splitPrice(price, feePercentage uint64) (fee, net uint64) {
	fee = price * feePercentage / 100
	return fee, price - fee
}

// SettlementService processes earnings withdrawals. The enrollment-time fee
// split itself runs inside the enrollment transaction; this service covers
// the payout side of the balance.
type SettlementService interface {
	WithdrawEarnings(ctx context.Context, account string, payload dto.WithdrawRequest) (dto.WithdrawalResponse, error)
}

type settlementService struct {
	db          *gorm.DB
	platform    repository.PlatformRepository
	instructors repository.InstructorProfileRepository
	events      LedgerEventPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewSettlementService constructs the settlement service.
func NewSettlementService(db *gorm.DB, platform repository.PlatformRepository, instructors repository.InstructorProfileRepository, events LedgerEventPublisher, validate *validator.Validate, logger zerolog.Logger) SettlementService {
	return &settlementService{
		db:          db,
		platform:    platform,
		instructors: instructors,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "settlement_service").Logger(),
	}
}

// WithdrawEarnings decrements the instructor balance and emits the transfer
// signal consumed by the host ledger. A withdrawal over the available
// balance reports ErrUnauthorized, matching the on-ledger error surface.
func (s *settlementService) WithdrawEarnings(ctx context.Context, account string, payload dto.WithdrawRequest) (dto.WithdrawalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WithdrawalResponse{}, err
	}
	amount := *payload.Amount

	var response dto.WithdrawalResponse
	err := runStep(ctx, s.db, s.platform, "settlement.withdraw", func(tx *gorm.DB, state *models.PlatformState) error {
		instructors := s.instructors.WithTx(tx)

		profile, err := instructors.Get(ctx, account)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup instructor profile: %w", err)
		}

		if !profile.CanWithdraw(amount) {
			return ErrUnauthorized
		}

		profile.TotalEarnings -= amount
		if err := instructors.Save(ctx, &profile); err != nil {
			return err
		}

		response = dto.WithdrawalResponse{
			Account:          account,
			Amount:           amount,
			RemainingBalance: profile.TotalEarnings,
			Sequence:         state.Sequence,
		}
		return nil
	})
	if err != nil {
		return dto.WithdrawalResponse{}, err
	}

	s.logger.Info().Str("account", account).Uint64("amount", amount).Msg("earnings withdrawal recorded")

	if s.events != nil {
		s.events.Publish(ctx, LedgerEvent{
			Type:     EventEarningsWithdrawn,
			Account:  account,
			Amount:   amount,
			Sequence: response.Sequence,
		})
	}

	return response, nil
}
