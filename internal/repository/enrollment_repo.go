package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/models"
)

// EnrollmentRepository persists enrollments under the composite
// (student account, course id) key.
type EnrollmentRepository interface {
	WithTx(tx *gorm.DB) EnrollmentRepository
	Get(ctx context.Context, student string, courseID uint64) (models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Save(ctx context.Context, enrollment *models.Enrollment) error
	ListByStudent(ctx context.Context, student string) ([]models.Enrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs a GORM-backed repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) WithTx(tx *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: tx}
}

func (r *enrollmentRepository) Get(ctx context.Context, student string, courseID uint64) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		First(&enrollment, "student_account = ? AND course_id = ?", student, courseID).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Save(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_account = ? AND course_id = ?", enrollment.StudentAccount, enrollment.CourseID).
		Updates(map[string]interface{}{
			"enrolled_at":      enrollment.EnrolledSeq,
			"last_accessed":    enrollment.LastAccessedSeq,
			"completed":        enrollment.Completed,
			"progress":         enrollment.Progress,
			"rating":           enrollment.Rating,
			"certificate_hash": enrollment.CertificateHash,
		}).Error
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, student string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("student_account = ?", student).
		Order("course_id ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}
