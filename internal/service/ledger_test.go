package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

const testOwner = "deployer.elearn"

// setupLedgerDB opens a fresh in-memory database, migrates the schema and
// seeds the platform singleton with the canonical initial state.
func setupLedgerDB(t *testing.T) (*gorm.DB, repository.PlatformRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:elearn_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.PlatformState{},
		&models.StudentProfile{},
		&models.InstructorProfile{},
		&models.Course{},
		&models.Enrollment{},
		&models.DiscussionPost{},
	))

	platformRepo := repository.NewPlatformRepository(db)
	require.NoError(t, platformRepo.Ensure(context.Background(), testOwner, 5))

	return db, platformRepo
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func uintPtr(v uint) *uint {
	return &v
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
