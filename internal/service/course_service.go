package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

// CourseService owns the course catalog.
type CourseService interface {
	CreateCourse(ctx context.Context, instructor string, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	GetCourse(ctx context.Context, id uint64) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, limit, offset int) ([]dto.CourseResponse, error)
	UpdateCourseDetails(ctx context.Context, caller string, id uint64, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	SetCourseActive(ctx context.Context, caller string, id uint64, payload dto.CourseStatusRequest) (dto.CourseResponse, error)
}

type courseService struct {
	db          *gorm.DB
	platform    repository.PlatformRepository
	courses     repository.CourseRepository
	instructors repository.InstructorProfileRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	events      LedgerEventPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewCourseService constructs the catalog service. The redis client is
// optional; without it every read goes to the database.
func NewCourseService(db *gorm.DB, platform repository.PlatformRepository, courses repository.CourseRepository, instructors repository.InstructorProfileRepository, cache *redis.Client, cacheTTL time.Duration, events LedgerEventPublisher, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		db:          db,
		platform:    platform,
		courses:     courses,
		instructors: instructors,
		cache:       cache,
		cacheTTL:    cacheTTL,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) CreateCourse(ctx context.Context, instructor string, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	var course models.Course
	err := runStep(ctx, s.db, s.platform, "course.create", func(tx *gorm.DB, state *models.PlatformState) error {
		if _, err := s.instructors.WithTx(tx).Get(ctx, instructor); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		} else if err != nil {
			return fmt.Errorf("lookup instructor profile: %w", err)
		}

		prerequisites := payload.Prerequisites
		if prerequisites == nil {
			prerequisites = []uint64{}
		}

		course = models.Course{
			ID:            state.NextCourseID,
			Title:         payload.Title,
			Instructor:    instructor,
			Price:         payload.Price,
			ContentHash:   payload.ContentHash,
			Category:      payload.Category,
			Description:   payload.Description,
			IsActive:      true,
			Prerequisites: prerequisites,
			CreatedSeq:    state.Sequence,
		}
		if err := s.courses.WithTx(tx).Create(ctx, &course); err != nil {
			return err
		}

		state.NextCourseID++
		return nil
	})
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint64("course_id", course.ID).Str("instructor", instructor).Msg("course created")

	if s.events != nil {
		s.events.Publish(ctx, LedgerEvent{
			Type:     EventCourseCreated,
			Account:  instructor,
			CourseID: course.ID,
			Sequence: course.CreatedSeq,
		})
	}

	return dto.NewCourseResponse(course), nil
}

// GetCourse is a read-only lookup; absence is reported as nil. Hits are
// served from the redis cache when one is configured.
func (s *courseService) GetCourse(ctx context.Context, id uint64) (*dto.CourseResponse, error) {
	cacheKey := courseCacheKey(id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.CourseResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint64("course_id", id).Msg("course cache hit")
				return &response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read course cache")
		}
	}

	course, err := s.courses.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	response := dto.NewCourseResponse(course)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store course cache")
			}
		}
	}

	return &response, nil
}

func (s *courseService) ListCourses(ctx context.Context, limit, offset int) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) UpdateCourseDetails(ctx context.Context, caller string, id uint64, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	var course models.Course
	err := runStep(ctx, s.db, s.platform, "course.update", func(tx *gorm.DB, state *models.PlatformState) error {
		courses := s.courses.WithTx(tx)

		existing, err := courses.Get(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup course: %w", err)
		}

		// Only the instructor of record may edit; id, instructor and
		// creation sequence are immutable.
		if existing.Instructor != caller {
			return ErrUnauthorized
		}

		if payload.Title != nil {
			existing.Title = *payload.Title
		}
		if payload.Price != nil {
			existing.Price = *payload.Price
		}
		if payload.ContentHash != nil {
			existing.ContentHash = *payload.ContentHash
		}
		if payload.Category != nil {
			existing.Category = *payload.Category
		}
		if payload.Description != nil {
			existing.Description = *payload.Description
		}
		if payload.Prerequisites != nil {
			existing.Prerequisites = payload.Prerequisites
		}

		if err := courses.Save(ctx, &existing); err != nil {
			return err
		}
		course = existing
		return nil
	})
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.invalidateCourseCache(ctx, id)

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) SetCourseActive(ctx context.Context, caller string, id uint64, payload dto.CourseStatusRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	var course models.Course
	err := runStep(ctx, s.db, s.platform, "course.set_active", func(tx *gorm.DB, state *models.PlatformState) error {
		courses := s.courses.WithTx(tx)

		existing, err := courses.Get(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup course: %w", err)
		}

		if existing.Instructor != caller {
			return ErrUnauthorized
		}

		existing.IsActive = *payload.Active

		if err := courses.Save(ctx, &existing); err != nil {
			return err
		}
		course = existing
		return nil
	})
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.invalidateCourseCache(ctx, id)

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) invalidateCourseCache(ctx context.Context, id uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, courseCacheKey(id)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint64("course_id", id).Msg("failed to invalidate course cache")
	}
}

func courseCacheKey(id uint64) string {
	return fmt.Sprintf("course:%d", id)
}
