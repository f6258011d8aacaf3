package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/models"
	"github.com/edumarket/elearn-api/internal/repository"
)

// DiscussionService owns the per-course forum. Posting requires an
// enrollment in the course; reading and upvoting do not.
type DiscussionService interface {
	CreatePost(ctx context.Context, author string, courseID uint64, payload dto.DiscussionPostCreateRequest) (dto.DiscussionPostResponse, error)
	UpvotePost(ctx context.Context, courseID, postID uint64) (dto.DiscussionPostResponse, error)
	GetPost(ctx context.Context, courseID, postID uint64) (*dto.DiscussionPostResponse, error)
	ListPosts(ctx context.Context, courseID uint64, limit, offset int) ([]dto.DiscussionPostResponse, error)
}

type discussionService struct {
	db          *gorm.DB
	platform    repository.PlatformRepository
	enrollments repository.EnrollmentRepository
	posts       repository.DiscussionRepository
	sanitizer   *bluemonday.Policy
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewDiscussionService constructs the forum service. Post content is
// sanitized with a strict policy before it is stored.
func NewDiscussionService(db *gorm.DB, platform repository.PlatformRepository, enrollments repository.EnrollmentRepository, posts repository.DiscussionRepository, validate *validator.Validate, logger zerolog.Logger) DiscussionService {
	return &discussionService{
		db:          db,
		platform:    platform,
		enrollments: enrollments,
		posts:       posts,
		sanitizer:   bluemonday.StrictPolicy(),
		validator:   validate,
		logger:      logger.With().Str("component", "discussion_service").Logger(),
		tracer:      otel.Tracer("github.com/edumarket/elearn-api/internal/service/discussion"),
	}
}

// CreatePost appends a post to a course forum. Post ids are drawn from a
// single platform-wide counter, so they are unique across courses.
func (s *discussionService) CreatePost(ctx context.Context, author string, courseID uint64, payload dto.DiscussionPostCreateRequest) (dto.DiscussionPostResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DiscussionPostResponse{}, err
	}
	content := s.sanitizer.Sanitize(payload.Content)

	spanCtx, span := s.tracer.Start(ctx, "discussion.create_post", trace.WithAttributes(
		attribute.String("discussion.author", author),
		attribute.Int64("discussion.course_id", int64(courseID)),
	))
	defer span.End()

	var post models.DiscussionPost
	err := runStep(spanCtx, s.db, s.platform, "discussion.post", func(tx *gorm.DB, state *models.PlatformState) error {
		if _, err := s.enrollments.WithTx(tx).Get(spanCtx, author, courseID); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		} else if err != nil {
			return fmt.Errorf("lookup enrollment: %w", err)
		}

		post = models.DiscussionPost{
			CourseID:   courseID,
			PostID:     state.NextPostID,
			Author:     author,
			Content:    content,
			CreatedSeq: state.Sequence,
		}
		if err := s.posts.WithTx(tx).Create(spanCtx, &post); err != nil {
			return err
		}

		state.NextPostID++
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return dto.DiscussionPostResponse{}, err
	}

	s.logger.Info().
		Uint64("course_id", courseID).
		Uint64("post_id", post.PostID).
		Str("author", author).
		Msg("discussion post created")

	return dto.NewDiscussionPostResponse(post), nil
}

// UpvotePost increments the vote counter. Votes are anonymous and
// unlimited; there is no per-account dedup.
func (s *discussionService) UpvotePost(ctx context.Context, courseID, postID uint64) (dto.DiscussionPostResponse, error) {
	var post models.DiscussionPost
	err := runStep(ctx, s.db, s.platform, "discussion.upvote", func(tx *gorm.DB, state *models.PlatformState) error {
		posts := s.posts.WithTx(tx)

		existing, err := posts.Get(ctx, courseID, postID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("lookup discussion post: %w", err)
		}

		existing.Upvotes++

		if err := posts.Save(ctx, &existing); err != nil {
			return err
		}
		post = existing
		return nil
	})
	if err != nil {
		return dto.DiscussionPostResponse{}, err
	}

	return dto.NewDiscussionPostResponse(post), nil
}

// GetPost is a read-only lookup; absence is reported as nil.
func (s *discussionService) GetPost(ctx context.Context, courseID, postID uint64) (*dto.DiscussionPostResponse, error) {
	post, err := s.posts.Get(ctx, courseID, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	response := dto.NewDiscussionPostResponse(post)
	return &response, nil
}

func (s *discussionService) ListPosts(ctx context.Context, courseID uint64, limit, offset int) ([]dto.DiscussionPostResponse, error) {
	posts, err := s.posts.ListByCourse(ctx, courseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.NewDiscussionPostResponseSlice(posts), nil
}
