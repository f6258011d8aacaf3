package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/observability"
	"github.com/edumarket/elearn-api/internal/repository"
)

// runStep executes fn as one atomic ledger step named op. The platform
// sequence is advanced before fn runs; fn stages every read and write against
// the same database transaction, and any error discards the whole step,
// counters included. fn may mutate the state row (counters, fee) and the
// updated row is committed together with fn's writes.
func runStep(ctx context.Context, db *gorm.DB, platform repository.PlatformRepository, op string, fn func(tx *gorm.DB, state *models.PlatformState) error) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := platform.WithTx(tx)

		state, err := repo.Get(ctx)
		if err != nil {
			return fmt.Errorf("load platform state: %w", err)
		}

		state.Sequence++

		if err := fn(tx, &state); err != nil {
			return err
		}

		return repo.Save(ctx, &state)
	})
	if err != nil {
		return err
	}

	observability.LedgerCommits().WithLabelValues(op).Inc()
	return nil
}
