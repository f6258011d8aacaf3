package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:elearn_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return db
}

func TestPlatformRepository_EnsureSeedsInitialState(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewPlatformRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx, "deployer.elearn", 5))

	state, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "deployer.elearn", state.OwnerAccount)
	require.Equal(t, uint64(5), state.FeePercentage)
	require.Equal(t, uint64(1), state.NextCourseID)
	require.Equal(t, uint64(1), state.NextPostID)
	require.Zero(t, state.Sequence)
}

func TestPlatformRepository_EnsureIdempotent(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewPlatformRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx, "deployer.elearn", 5))

	state, err := repo.Get(ctx)
	require.NoError(t, err)
	state.Sequence = 9
	state.NextCourseID = 3
	require.NoError(t, repo.Save(ctx, &state))

	// A second boot must not reset the live row.
	require.NoError(t, repo.Ensure(ctx, "other.elearn", 10))

	state, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "deployer.elearn", state.OwnerAccount)
	require.Equal(t, uint64(5), state.FeePercentage)
	require.Equal(t, uint64(3), state.NextCourseID)
	require.Equal(t, uint64(9), state.Sequence)
}

func TestEnrollmentRepository_CompositeKey(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewEnrollmentRepository(db)
	ctx := context.Background()

	first := models.Enrollment{StudentAccount: "alice.elearn", CourseID: 1, EnrolledSeq: 3, LastAccessedSeq: 3}
	require.NoError(t, repo.Create(ctx, &first))

	// Same student, different course, is a distinct row.
	second := models.Enrollment{StudentAccount: "alice.elearn", CourseID: 2, EnrolledSeq: 4, LastAccessedSeq: 4}
	require.NoError(t, repo.Create(ctx, &second))

	// Same key again must fail.
	dup := models.Enrollment{StudentAccount: "alice.elearn", CourseID: 1}
	require.Error(t, repo.Create(ctx, &dup))

	fetched, err := repo.Get(ctx, "alice.elearn", 2)
	require.NoError(t, err)
	require.Equal(t, uint64(4), fetched.EnrolledSeq)

	listed, err := repo.ListByStudent(ctx, "alice.elearn")
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestEnrollmentRepository_SaveWritesZeroValues(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewEnrollmentRepository(db)
	ctx := context.Background()

	enrollment := models.Enrollment{StudentAccount: "alice.elearn", CourseID: 1, Progress: 50, EnrolledSeq: 1, LastAccessedSeq: 1}
	require.NoError(t, repo.Create(ctx, &enrollment))

	// Zero progress must persist; the update is column-explicit, not
	// struct-based.
	enrollment.Progress = 0
	require.NoError(t, repo.Save(ctx, &enrollment))

	fetched, err := repo.Get(ctx, "alice.elearn", 1)
	require.NoError(t, err)
	require.Zero(t, fetched.Progress)
}

func TestDiscussionRepository_CompositeKey(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewDiscussionRepository(db)
	ctx := context.Background()

	post := models.DiscussionPost{CourseID: 1, PostID: 1, Author: "alice.elearn", Content: "hello", CreatedSeq: 2}
	require.NoError(t, repo.Create(ctx, &post))

	fetched, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "hello", fetched.Content)

	_, err = repo.Get(ctx, 2, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	fetched.Upvotes = 3
	require.NoError(t, repo.Save(ctx, &fetched))

	fetched, err = repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, uint(3), fetched.Upvotes)
}
