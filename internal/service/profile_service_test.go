package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/repository"
	"github.com/edumarket/elearn-api/internal/service"
)

func setupProfileService(t *testing.T) service.ProfileService {
	t.Helper()

	db, platformRepo := setupLedgerDB(t)
	return service.NewProfileService(
		db,
		platformRepo,
		repository.NewStudentProfileRepository(db),
		repository.NewInstructorProfileRepository(db),
		testValidator(),
		testLogger(),
	)
}

func TestProfileService_CreateStudentProfile(t *testing.T) {
	svc := setupProfileService(t)

	profile, err := svc.CreateStudentProfile(context.Background(), "alice.elearn", dto.StudentProfileCreateRequest{Name: "Alice"})
	require.NoError(t, err)
	require.Equal(t, "alice.elearn", profile.Account)
	require.Equal(t, "Alice", profile.Name)
	require.Zero(t, profile.CompletedCourses)
	require.Zero(t, profile.TotalSpent)
	require.Empty(t, profile.Achievements)
	require.Empty(t, profile.Preferences)

	_, err = svc.CreateStudentProfile(context.Background(), "alice.elearn", dto.StudentProfileCreateRequest{Name: "Alice Again"})
	require.ErrorIs(t, err, service.ErrAlreadyExists)
}

func TestProfileService_GetStudentProfile_Missing(t *testing.T) {
	svc := setupProfileService(t)

	profile, err := svc.GetStudentProfile(context.Background(), "ghost.elearn")
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestProfileService_UpdatePreferences(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.UpdateStudentPreferences(context.Background(), "alice.elearn", dto.PreferencesUpdateRequest{Preferences: []string{"go"}})
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.CreateStudentProfile(context.Background(), "alice.elearn", dto.StudentProfileCreateRequest{Name: "Alice"})
	require.NoError(t, err)

	profile, err := svc.UpdateStudentPreferences(context.Background(), "alice.elearn", dto.PreferencesUpdateRequest{Preferences: []string{"go", "distributed-systems"}})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "distributed-systems"}, profile.Preferences)

	// Replacement is wholesale, not a merge.
	profile, err = svc.UpdateStudentPreferences(context.Background(), "alice.elearn", dto.PreferencesUpdateRequest{Preferences: []string{"rust"}})
	require.NoError(t, err)
	require.Equal(t, []string{"rust"}, profile.Preferences)
}

func TestProfileService_CreateInstructorProfile(t *testing.T) {
	svc := setupProfileService(t)

	profile, err := svc.CreateInstructorProfile(context.Background(), "bob.elearn", dto.InstructorProfileCreateRequest{
		Name:        "Bob",
		Credentials: "PhD",
		Bio:         "Teaches Go",
		SocialLinks: []string{"https://example.com/bob"},
	})
	require.NoError(t, err)
	require.Equal(t, "bob.elearn", profile.Account)
	require.Zero(t, profile.Rating)
	require.Zero(t, profile.TotalEarnings)

	_, err = svc.CreateInstructorProfile(context.Background(), "bob.elearn", dto.InstructorProfileCreateRequest{Name: "Bob Again"})
	require.ErrorIs(t, err, service.ErrAlreadyExists)
}

func TestProfileService_AwardAchievement(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.CreateStudentProfile(context.Background(), "alice.elearn", dto.StudentProfileCreateRequest{Name: "Alice"})
	require.NoError(t, err)

	_, err = svc.AwardAchievement(context.Background(), "alice.elearn", dto.AchievementAwardRequest{Account: "alice.elearn", Text: "self-award"})
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = svc.AwardAchievement(context.Background(), testOwner, dto.AchievementAwardRequest{Account: "ghost.elearn", Text: "first-course"})
	require.ErrorIs(t, err, service.ErrNotFound)

	profile, err := svc.AwardAchievement(context.Background(), testOwner, dto.AchievementAwardRequest{Account: "alice.elearn", Text: "first-course"})
	require.NoError(t, err)
	require.Equal(t, []string{"first-course"}, profile.Achievements)

	profile, err = svc.AwardAchievement(context.Background(), testOwner, dto.AchievementAwardRequest{Account: "alice.elearn", Text: "fast-learner"})
	require.NoError(t, err)
	require.Equal(t, []string{"first-course", "fast-learner"}, profile.Achievements)
}
