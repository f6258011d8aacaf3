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

// ProfileService owns student and instructor profiles and the achievement
// registry embedded in student profiles.
type ProfileService interface {
	CreateStudentProfile(ctx context.Context, account string, payload dto.StudentProfileCreateRequest) (dto.StudentProfileResponse, error)
	UpdateStudentPreferences(ctx context.Context, account string, payload dto.PreferencesUpdateRequest) (dto.StudentProfileResponse, error)
	CreateInstructorProfile(ctx context.Context, account string, payload dto.InstructorProfileCreateRequest) (dto.InstructorProfileResponse, error)
	GetStudentProfile(ctx context.Context, account string) (*dto.StudentProfileResponse, error)
	GetInstructorProfile(ctx context.Context, account string) (*dto.InstructorProfileResponse, error)
	AwardAchievement(ctx context.Context, caller string, payload dto.AchievementAwardRequest) (dto.StudentProfileResponse, error)
}

type profileService struct {
	db          *gorm.DB
	platform    repository.PlatformRepository
	students    repository.StudentProfileRepository
	instructors repository.InstructorProfileRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(db *gorm.DB, platform repository.PlatformRepository, students repository.StudentProfileRepository, instructors repository.InstructorProfileRepository, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		db:          db,
		platform:    platform,
		students:    students,
		instructors: instructors,
		validator:   validate,
		logger:      logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) CreateStudentProfile(ctx context.Context, account string, payload dto.StudentProfileCreateRequest) (dto.StudentProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentProfileResponse{}, err
	}

	var profile models.StudentProfile
	err := runStep(ctx, s.db, s.platform, "student_profile.create", func(tx *gorm.DB, state *models.PlatformState) error {
		students := s.students.WithTx(tx)

		if _, err := students.Get(ctx, account); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup student profile: %w", err)
		}

		profile = models.StudentProfile{
			Account:      account,
			Name:         payload.Name,
			Achievements: []string{},
			JoinedSeq:    state.Sequence,
			Preferences:  []string{},
		}
		return students.Create(ctx, &profile)
	})
	if err != nil {
		return dto.StudentProfileResponse{}, err
	}

	s.logger.Info().Str("account", account).Msg("student profile created")

	return dto.NewStudentProfileResponse(profile), nil
}

func (s *profileService) UpdateStudentPreferences(ctx context.Context, account string, payload dto.PreferencesUpdateRequest) (dto.StudentProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentProfileResponse{}, err
	}

	var profile models.StudentProfile
	err := runStep(ctx, s.db, s.platform, "student_profile.preferences", func(tx *gorm.DB, state *models.PlatformState) error {
		students := s.students.WithTx(tx)

		existing, err := students.Get(ctx, account)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup student profile: %w", err)
		}

		// Wholesale replacement, never a merge.
		preferences := payload.Preferences
		if preferences == nil {
			preferences = []string{}
		}
		existing.Preferences = preferences

		if err := students.Save(ctx, &existing); err != nil {
			return err
		}
		profile = existing
		return nil
	})
	if err != nil {
		return dto.StudentProfileResponse{}, err
	}

	return dto.NewStudentProfileResponse(profile), nil
}

func (s *profileService) CreateInstructorProfile(ctx context.Context, account string, payload dto.InstructorProfileCreateRequest) (dto.InstructorProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InstructorProfileResponse{}, err
	}

	var profile models.InstructorProfile
	err := runStep(ctx, s.db, s.platform, "instructor_profile.create", func(tx *gorm.DB, state *models.PlatformState) error {
		instructors := s.instructors.WithTx(tx)

		if _, err := instructors.Get(ctx, account); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup instructor profile: %w", err)
		}

		socialLinks := payload.SocialLinks
		if socialLinks == nil {
			socialLinks = []string{}
		}

		profile = models.InstructorProfile{
			Account:     account,
			Name:        payload.Name,
			Credentials: payload.Credentials,
			Bio:         payload.Bio,
			SocialLinks: socialLinks,
		}
		return instructors.Create(ctx, &profile)
	})
	if err != nil {
		return dto.InstructorProfileResponse{}, err
	}

	s.logger.Info().Str("account", account).Msg("instructor profile created")

	return dto.NewInstructorProfileResponse(profile), nil
}

// GetStudentProfile is a read-only lookup. A missing profile is a normal
// result, reported as nil rather than an error.
func (s *profileService) GetStudentProfile(ctx context.Context, account string) (*dto.StudentProfileResponse, error) {
	profile, err := s.students.Get(ctx, account)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	response := dto.NewStudentProfileResponse(profile)
	return &response, nil
}

// GetInstructorProfile is a read-only lookup; absence is reported as nil.
func (s *profileService) GetInstructorProfile(ctx context.Context, account string) (*dto.InstructorProfileResponse, error) {
	profile, err := s.instructors.Get(ctx, account)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	response := dto.NewInstructorProfileResponse(profile)
	return &response, nil
}

func (s *profileService) AwardAchievement(ctx context.Context, caller string, payload dto.AchievementAwardRequest) (dto.StudentProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentProfileResponse{}, err
	}

	var profile models.StudentProfile
	err := runStep(ctx, s.db, s.platform, "achievement.award", func(tx *gorm.DB, state *models.PlatformState) error {
		if !state.IsOwner(caller) {
			return ErrUnauthorized
		}

		students := s.students.WithTx(tx)

		existing, err := students.Get(ctx, payload.Account)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup student profile: %w", err)
		}

		existing.Achievements = append(existing.Achievements, payload.Text)

		if err := students.Save(ctx, &existing); err != nil {
			return err
		}
		profile = existing
		return nil
	})
	if err != nil {
		return dto.StudentProfileResponse{}, err
	}

	s.logger.Info().Str("account", payload.Account).Str("achievement", payload.Text).Msg("achievement awarded")

	return dto.NewStudentProfileResponse(profile), nil
}
