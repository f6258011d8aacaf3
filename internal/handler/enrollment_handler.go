package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

// EnrollmentHandler provides HTTP endpoints for enrollments, progress,
// completion, certificates and ratings.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs a handler instance.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register binds the enrollment routes.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Get("/", h.listEnrollments)
	router.Post("/:courseID", h.enroll)
	router.Get("/:courseID", h.getEnrollment)
	router.Put("/:courseID/progress", h.updateProgress)
	router.Post("/:courseID/complete", h.completeCourse)
	router.Post("/:courseID/certificate", h.generateCertificate)
	router.Post("/:courseID/rating", h.rateCourse)
}

func (h *EnrollmentHandler) listEnrollments(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	enrollments, err := h.service.ListEnrollments(withRequestContext(c), student)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "enrollments", enrollments)
}

func (h *EnrollmentHandler) enroll(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Enroll(withRequestContext(c), student, courseID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "enrolled", response)
}

func (h *EnrollmentHandler) getEnrollment(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	enrollment, err := h.service.GetEnrollment(withRequestContext(c), student, courseID)
	if err != nil {
		return sendServiceError(c, err)
	}
	if enrollment == nil {
		return utils.SendErrorWithCode(c, fiber.StatusNotFound, service.CodeNotFound, "enrollment not found")
	}

	return utils.SendSuccess(c, "enrollment", enrollment)
}

func (h *EnrollmentHandler) updateProgress(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ProgressUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateProgress(withRequestContext(c), student, courseID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "progress updated", response)
}

func (h *EnrollmentHandler) completeCourse(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.CompleteCourse(withRequestContext(c), student, courseID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "course completed", response)
}

func (h *EnrollmentHandler) generateCertificate(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CertificateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.GenerateCertificate(withRequestContext(c), student, courseID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "certificate issued", response)
}

func (h *EnrollmentHandler) rateCourse(c *fiber.Ctx) error {
	student := accountFromContext(c)
	if student == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.RatingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.RateCourse(withRequestContext(c), student, courseID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "rating recorded", response)
}
