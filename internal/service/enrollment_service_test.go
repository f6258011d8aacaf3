package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/repository"
	"github.com/edumarket/elearn-api/internal/service"
)

type ledgerFixture struct {
	db          *gorm.DB
	platform    repository.PlatformRepository
	profiles    service.ProfileService
	courses     service.CourseService
	enrollments service.EnrollmentService
	settlement  service.SettlementService
	platformSvc service.PlatformService
}

func setupLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db, platformRepo := setupLedgerDB(t)

	studentRepo := repository.NewStudentProfileRepository(db)
	instructorRepo := repository.NewInstructorProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	validate := testValidator()
	logger := testLogger()

	return &ledgerFixture{
		db:          db,
		platform:    platformRepo,
		profiles:    service.NewProfileService(db, platformRepo, studentRepo, instructorRepo, validate, logger),
		courses:     service.NewCourseService(db, platformRepo, courseRepo, instructorRepo, nil, time.Minute, nil, validate, logger),
		enrollments: service.NewEnrollmentService(db, platformRepo, studentRepo, instructorRepo, courseRepo, enrollmentRepo, nil, nil, validate, logger),
		settlement:  service.NewSettlementService(db, platformRepo, instructorRepo, nil, validate, logger),
		platformSvc: service.NewPlatformService(db, platformRepo, validate, logger),
	}
}

// seedCourse registers an instructor, a student and one course priced at 100.
func (f *ledgerFixture) seedCourse(t *testing.T) uint64 {
	t.Helper()
	ctx := context.Background()

	_, err := f.profiles.CreateInstructorProfile(ctx, "bob.elearn", dto.InstructorProfileCreateRequest{Name: "Bob"})
	require.NoError(t, err)
	_, err = f.profiles.CreateStudentProfile(ctx, "alice.elearn", dto.StudentProfileCreateRequest{Name: "Alice"})
	require.NoError(t, err)

	course, err := f.courses.CreateCourse(ctx, "bob.elearn", dto.CourseCreateRequest{
		Title:       "Go Fundamentals",
		Price:       100,
		ContentHash: "hash-1",
	})
	require.NoError(t, err)
	return course.ID
}

func TestEnrollmentService_Enroll_SettlesFunds(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	enrollment, err := f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.NoError(t, err)
	require.Equal(t, "alice.elearn", enrollment.Student)
	require.Equal(t, courseID, enrollment.CourseID)
	require.False(t, enrollment.Completed)
	require.Zero(t, enrollment.Progress)
	require.Nil(t, enrollment.Rating)
	require.Nil(t, enrollment.CompletionCertificate)

	// Fee 5% of 100: platform keeps 5, instructor earns 95.
	instructor, err := f.profiles.GetInstructorProfile(ctx, "bob.elearn")
	require.NoError(t, err)
	require.Equal(t, uint64(95), instructor.TotalEarnings)
	require.Equal(t, uint(1), instructor.TotalStudents)

	student, err := f.profiles.GetStudentProfile(ctx, "alice.elearn")
	require.NoError(t, err)
	require.Equal(t, uint64(100), student.TotalSpent)

	course, err := f.courses.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, uint(1), course.TotalStudents)
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	_, err := f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.NoError(t, err)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.ErrorIs(t, err, service.ErrAlreadyExists)

	// The rejected enrollment must not settle funds twice.
	instructor, err := f.profiles.GetInstructorProfile(ctx, "bob.elearn")
	require.NoError(t, err)
	require.Equal(t, uint64(95), instructor.TotalEarnings)
}

func TestEnrollmentService_Enroll_MissingCourseOrStudent(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	_, err := f.enrollments.Enroll(ctx, "alice.elearn", 99)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.enrollments.Enroll(ctx, "ghost.elearn", courseID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestEnrollmentService_Enroll_InactiveCourse(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	inactive := false
	_, err := f.courses.SetCourseActive(ctx, "bob.elearn", courseID, dto.CourseStatusRequest{Active: &inactive})
	require.NoError(t, err)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestEnrollmentService_Enroll_Prerequisites(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	basicsID := f.seedCourse(t)

	advanced, err := f.courses.CreateCourse(ctx, "bob.elearn", dto.CourseCreateRequest{
		Title:         "Advanced Go",
		Price:         200,
		ContentHash:   "hash-2",
		Prerequisites: []uint64{basicsID},
	})
	require.NoError(t, err)

	// Not even enrolled in the prerequisite.
	_, err = f.enrollments.Enroll(ctx, "alice.elearn", advanced.ID)
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", basicsID)
	require.NoError(t, err)

	// Enrolled but not completed.
	_, err = f.enrollments.Enroll(ctx, "alice.elearn", advanced.ID)
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.enrollments.CompleteCourse(ctx, "alice.elearn", basicsID)
	require.NoError(t, err)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", advanced.ID)
	require.NoError(t, err)
}

func TestEnrollmentService_UpdateProgress(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	_, err := f.enrollments.UpdateProgress(ctx, "alice.elearn", courseID, dto.ProgressUpdateRequest{Progress: uintPtr(50)})
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.NoError(t, err)

	updated, err := f.enrollments.UpdateProgress(ctx, "alice.elearn", courseID, dto.ProgressUpdateRequest{Progress: uintPtr(50)})
	require.NoError(t, err)
	require.Equal(t, uint(50), updated.Progress)

	updated, err = f.enrollments.UpdateProgress(ctx, "alice.elearn", courseID, dto.ProgressUpdateRequest{Progress: uintPtr(100)})
	require.NoError(t, err)
	require.Equal(t, uint(100), updated.Progress)

	_, err = f.enrollments.UpdateProgress(ctx, "alice.elearn", courseID, dto.ProgressUpdateRequest{Progress: uintPtr(101)})
	require.ErrorIs(t, err, service.ErrUnauthorized)

	// Progress may move backwards.
	updated, err = f.enrollments.UpdateProgress(ctx, "alice.elearn", courseID, dto.ProgressUpdateRequest{Progress: uintPtr(10)})
	require.NoError(t, err)
	require.Equal(t, uint(10), updated.Progress)
}

func TestEnrollmentService_CompleteCourse(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	_, err := f.enrollments.CompleteCourse(ctx, "alice.elearn", courseID)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.NoError(t, err)

	completed, err := f.enrollments.CompleteCourse(ctx, "alice.elearn", courseID)
	require.NoError(t, err)
	require.True(t, completed.Completed)

	student, err := f.profiles.GetStudentProfile(ctx, "alice.elearn")
	require.NoError(t, err)
	require.Equal(t, uint(1), student.CompletedCourses)

	_, err = f.enrollments.CompleteCourse(ctx, "alice.elearn", courseID)
	require.ErrorIs(t, err, service.ErrAlreadyExists)

	// The rejected re-completion must not bump the counter again.
	student, err = f.profiles.GetStudentProfile(ctx, "alice.elearn")
	require.NoError(t, err)
	require.Equal(t, uint(1), student.CompletedCourses)
}

func TestEnrollmentService_GenerateCertificate(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	_, err := f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.NoError(t, err)

	_, err = f.enrollments.GenerateCertificate(ctx, "alice.elearn", courseID, dto.CertificateRequest{CertificateHash: "cert-1"})
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.enrollments.CompleteCourse(ctx, "alice.elearn", courseID)
	require.NoError(t, err)

	issued, err := f.enrollments.GenerateCertificate(ctx, "alice.elearn", courseID, dto.CertificateRequest{CertificateHash: "cert-1"})
	require.NoError(t, err)
	require.NotNil(t, issued.CompletionCertificate)
	require.Equal(t, "cert-1", *issued.CompletionCertificate)

	_, err = f.enrollments.GenerateCertificate(ctx, "alice.elearn", courseID, dto.CertificateRequest{CertificateHash: "cert-2"})
	require.ErrorIs(t, err, service.ErrAlreadyExists)
}

func TestEnrollmentService_RateCourse(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	_, err := f.enrollments.Enroll(ctx, "alice.elearn", courseID)
	require.NoError(t, err)

	_, err = f.enrollments.RateCourse(ctx, "alice.elearn", courseID, dto.RatingRequest{Rating: uintPtr(0)})
	require.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = f.enrollments.RateCourse(ctx, "alice.elearn", courseID, dto.RatingRequest{Rating: uintPtr(6)})
	require.ErrorIs(t, err, service.ErrUnauthorized)

	rated, err := f.enrollments.RateCourse(ctx, "alice.elearn", courseID, dto.RatingRequest{Rating: uintPtr(4)})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	require.Equal(t, uint(4), *rated.Rating)

	course, err := f.courses.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, uint(4), course.AverageRating)
	require.Equal(t, uint(1), course.TotalRatings)

	instructor, err := f.profiles.GetInstructorProfile(ctx, "bob.elearn")
	require.NoError(t, err)
	require.Equal(t, uint(4), instructor.Rating)
	require.Equal(t, uint(1), instructor.TotalReviews)

	_, err = f.enrollments.RateCourse(ctx, "alice.elearn", courseID, dto.RatingRequest{Rating: uintPtr(5)})
	require.ErrorIs(t, err, service.ErrAlreadyExists)

	// A second student's rating folds into the running average.
	_, err = f.profiles.CreateStudentProfile(ctx, "carol.elearn", dto.StudentProfileCreateRequest{Name: "Carol"})
	require.NoError(t, err)
	_, err = f.enrollments.Enroll(ctx, "carol.elearn", courseID)
	require.NoError(t, err)
	_, err = f.enrollments.RateCourse(ctx, "carol.elearn", courseID, dto.RatingRequest{Rating: uintPtr(2)})
	require.NoError(t, err)

	course, err = f.courses.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, uint(3), course.AverageRating)
	require.Equal(t, uint(2), course.TotalRatings)
}

func TestEnrollmentService_GetEnrollment_Missing(t *testing.T) {
	f := setupLedgerFixture(t)

	enrollment, err := f.enrollments.GetEnrollment(context.Background(), "alice.elearn", 1)
	require.NoError(t, err)
	require.Nil(t, enrollment)
}

func TestEnrollmentService_ListEnrollments(t *testing.T) {
	f := setupLedgerFixture(t)
	ctx := context.Background()
	basicsID := f.seedCourse(t)

	second, err := f.courses.CreateCourse(ctx, "bob.elearn", dto.CourseCreateRequest{
		Title:       "Advanced Go",
		Price:       200,
		ContentHash: "hash-2",
	})
	require.NoError(t, err)

	_, err = f.enrollments.Enroll(ctx, "alice.elearn", basicsID)
	require.NoError(t, err)
	_, err = f.enrollments.Enroll(ctx, "alice.elearn", second.ID)
	require.NoError(t, err)

	listed, err := f.enrollments.ListEnrollments(ctx, "alice.elearn")
	require.NoError(t, err)
	require.Len(t, listed, 2)
}
