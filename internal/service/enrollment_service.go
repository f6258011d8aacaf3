package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

const maxProgress = 100

// EnrollmentService owns the per-(student, course) state machine:
// not enrolled, enrolled, completed. There is no way back.
type EnrollmentService interface {
	Enroll(ctx context.Context, student string, courseID uint64) (dto.EnrollmentResponse, error)
	UpdateProgress(ctx context.Context, student string, courseID uint64, payload dto.ProgressUpdateRequest) (dto.EnrollmentResponse, error)
	CompleteCourse(ctx context.Context, student string, courseID uint64) (dto.EnrollmentResponse, error)
	GenerateCertificate(ctx context.Context, student string, courseID uint64, payload dto.CertificateRequest) (dto.EnrollmentResponse, error)
	RateCourse(ctx context.Context, student string, courseID uint64, payload dto.RatingRequest) (dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, student string, courseID uint64) (*dto.EnrollmentResponse, error)
	ListEnrollments(ctx context.Context, student string) ([]dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	db          *gorm.DB
	platform    repository.PlatformRepository
	students    repository.StudentProfileRepository
	instructors repository.InstructorProfileRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	cache       *redis.Client
	events      LedgerEventPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewEnrollmentService constructs the enrollment tracker.
func NewEnrollmentService(db *gorm.DB, platform repository.PlatformRepository, students repository.StudentProfileRepository, instructors repository.InstructorProfileRepository, courses repository.CourseRepository, enrollments repository.EnrollmentRepository, cache *redis.Client, events LedgerEventPublisher, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		db:          db,
		platform:    platform,
		students:    students,
		instructors: instructors,
		courses:     courses,
		enrollments: enrollments,
		cache:       cache,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
		tracer:      otel.Tracer("github.com/edumarket/elearn-api/internal/service/enrollment"),
	}
}

// Enroll creates the enrollment and settles the price in the same atomic
// step: the platform keeps price*fee/100 (truncating) and the remainder
// accrues to the instructor's withdrawable balance.
func (s *enrollmentService) Enroll(ctx context.Context, student string, courseID uint64) (dto.EnrollmentResponse, error) {
	attrs := []attribute.KeyValue{
		attribute.String("enrollment.student", student),
		attribute.Int64("enrollment.course_id", int64(courseID)),
	}
	spanCtx, span := s.tracer.Start(ctx, "enrollment.enroll", trace.WithAttributes(attrs...))
	defer span.End()

	var enrollment models.Enrollment
	var fee uint64
	err := runStep(spanCtx, s.db, s.platform, "enrollment.enroll", func(tx *gorm.DB, state *models.PlatformState) error {
		courses := s.courses.WithTx(tx)
		enrollments := s.enrollments.WithTx(tx)
		students := s.students.WithTx(tx)
		instructors := s.instructors.WithTx(tx)

		course, err := courses.Get(spanCtx, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup course: %w", err)
		}
		if !course.IsActive {
			return ErrUnauthorized
		}

		profile, err := students.Get(spanCtx, student)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup student profile: %w", err)
		}

		if _, err := enrollments.Get(spanCtx, student, courseID); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup enrollment: %w", err)
		}

		// Every prerequisite course must already be completed.
		for _, prereqID := range course.Prerequisites {
			prereq, err := enrollments.Get(spanCtx, student, prereqID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnauthorized
			} else if err != nil {
				return fmt.Errorf("lookup prerequisite enrollment: %w", err)
			}
			if !prereq.Completed {
				return ErrUnauthorized
			}
		}

		instructor, err := instructors.Get(spanCtx, course.Instructor)
		if err != nil {
			return fmt.Errorf("lookup course instructor: %w", err)
		}

		var net uint64
		fee, net = splitPrice(course.Price, state.FeePercentage)
		instructor.TotalEarnings += net
		instructor.TotalStudents++
		profile.TotalSpent += course.Price
		course.TotalStudents++

		enrollment = models.Enrollment{
			StudentAccount:  student,
			CourseID:        courseID,
			EnrolledSeq:     state.Sequence,
			LastAccessedSeq: state.Sequence,
		}

		if err := enrollments.Create(spanCtx, &enrollment); err != nil {
			return err
		}
		if err := courses.Save(spanCtx, &course); err != nil {
			return err
		}
		if err := students.Save(spanCtx, &profile); err != nil {
			return err
		}
		return instructors.Save(spanCtx, &instructor)
	})
	if err != nil {
		span.RecordError(err)
		return dto.EnrollmentResponse{}, err
	}

	s.invalidateCourseCache(spanCtx, courseID)

	s.logger.Info().
		Str("student", student).
		Uint64("course_id", courseID).
		Uint64("platform_fee", fee).
		Msg("enrollment settled")

	if s.events != nil {
		s.events.Publish(spanCtx, LedgerEvent{
			Type:     EventEnrollmentSettled,
			Account:  student,
			CourseID: courseID,
			Amount:   fee,
			Sequence: enrollment.EnrolledSeq,
		})
	}

	return dto.NewEnrollmentResponse(enrollment), nil
}

// UpdateProgress sets progress to the given value (not required to be
// monotonic) and refreshes last-accessed. Values above 100 fold into
// ErrUnauthorized.
func (s *enrollmentService) UpdateProgress(ctx context.Context, student string, courseID uint64, payload dto.ProgressUpdateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	progress := *payload.Progress

	var enrollment models.Enrollment
	err := runStep(ctx, s.db, s.platform, "enrollment.progress", func(tx *gorm.DB, state *models.PlatformState) error {
		if progress > maxProgress {
			return ErrUnauthorized
		}

		enrollments := s.enrollments.WithTx(tx)

		existing, err := enrollments.Get(ctx, student, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup enrollment: %w", err)
		}

		existing.Progress = progress
		existing.LastAccessedSeq = state.Sequence

		if err := enrollments.Save(ctx, &existing); err != nil {
			return err
		}
		enrollment = existing
		return nil
	})
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	return dto.NewEnrollmentResponse(enrollment), nil
}

// CompleteCourse flips the one-way completed flag and bumps the student's
// completed-courses counter. Re-completion is rejected.
func (s *enrollmentService) CompleteCourse(ctx context.Context, student string, courseID uint64) (dto.EnrollmentResponse, error) {
	var enrollment models.Enrollment
	err := runStep(ctx, s.db, s.platform, "enrollment.complete", func(tx *gorm.DB, state *models.PlatformState) error {
		enrollments := s.enrollments.WithTx(tx)
		students := s.students.WithTx(tx)

		existing, err := enrollments.Get(ctx, student, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup enrollment: %w", err)
		}
		if existing.Completed {
			return ErrAlreadyExists
		}

		profile, err := students.Get(ctx, student)
		if err != nil {
			return fmt.Errorf("lookup student profile: %w", err)
		}

		existing.Completed = true
		existing.LastAccessedSeq = state.Sequence
		profile.CompletedCourses++

		if err := enrollments.Save(ctx, &existing); err != nil {
			return err
		}
		if err := students.Save(ctx, &profile); err != nil {
			return err
		}
		enrollment = existing
		return nil
	})
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Str("student", student).Uint64("course_id", courseID).Msg("course completed")

	return dto.NewEnrollmentResponse(enrollment), nil
}

// GenerateCertificate stores the certificate hash on a completed enrollment.
// Certificates are immutable once written.
func (s *enrollmentService) GenerateCertificate(ctx context.Context, student string, courseID uint64, payload dto.CertificateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	var enrollment models.Enrollment
	err := runStep(ctx, s.db, s.platform, "enrollment.certificate", func(tx *gorm.DB, state *models.PlatformState) error {
		enrollments := s.enrollments.WithTx(tx)

		existing, err := enrollments.Get(ctx, student, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup enrollment: %w", err)
		}
		if !existing.Completed {
			return ErrUnauthorized
		}
		if existing.CertificateHash != nil {
			return ErrAlreadyExists
		}

		hash := payload.CertificateHash
		existing.CertificateHash = &hash

		if err := enrollments.Save(ctx, &existing); err != nil {
			return err
		}
		enrollment = existing
		return nil
	})
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Str("student", student).Uint64("course_id", courseID).Msg("certificate issued")

	return dto.NewEnrollmentResponse(enrollment), nil
}

// RateCourse stores a 1-5 rating once per enrollment and folds it into the
// course and instructor running averages.
func (s *enrollmentService) RateCourse(ctx context.Context, student string, courseID uint64, payload dto.RatingRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	rating := *payload.Rating

	var enrollment models.Enrollment
	err := runStep(ctx, s.db, s.platform, "enrollment.rate", func(tx *gorm.DB, state *models.PlatformState) error {
		if rating < 1 || rating > 5 {
			return ErrUnauthorized
		}

		enrollments := s.enrollments.WithTx(tx)
		courses := s.courses.WithTx(tx)
		instructors := s.instructors.WithTx(tx)

		existing, err := enrollments.Get(ctx, student, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup enrollment: %w", err)
		}
		if existing.Rating != nil {
			return ErrAlreadyExists
		}

		course, err := courses.Get(ctx, courseID)
		if err != nil {
			return fmt.Errorf("lookup course: %w", err)
		}

		instructor, err := instructors.Get(ctx, course.Instructor)
		if err != nil {
			return fmt.Errorf("lookup course instructor: %w", err)
		}

		course.AverageRating = runningAverage(course.AverageRating, course.TotalRatings, rating)
		course.TotalRatings++
		instructor.Rating = runningAverage(instructor.Rating, instructor.TotalReviews, rating)
		instructor.TotalReviews++

		existing.Rating = &rating
		existing.LastAccessedSeq = state.Sequence

		if err := enrollments.Save(ctx, &existing); err != nil {
			return err
		}
		if err := courses.Save(ctx, &course); err != nil {
			return err
		}
		if err := instructors.Save(ctx, &instructor); err != nil {
			return err
		}
		enrollment = existing
		return nil
	})
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.invalidateCourseCache(ctx, courseID)

	return dto.NewEnrollmentResponse(enrollment), nil
}

// GetEnrollment is a read-only lookup; absence is reported as nil.
func (s *enrollmentService) GetEnrollment(ctx context.Context, student string, courseID uint64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollments.Get(ctx, student, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	response := dto.NewEnrollmentResponse(enrollment)
	return &response, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, student string) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, student)
	if err != nil {
		return nil, err
	}
	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

func (s *enrollmentService) invalidateCourseCache(ctx context.Context, courseID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, courseCacheKey(courseID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint64("course_id", courseID).Msg("failed to invalidate course cache")
	}
}

// runningAverage folds one more sample into an integer running average.
func runningAverage(average uint, count uint, sample uint) uint {
	return (average*count + sample) / (count + 1)
}
