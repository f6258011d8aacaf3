package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

// ProfileHandler provides HTTP endpoints for student and instructor profiles.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler constructs a handler instance.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register binds the profile routes.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Post("/students", h.createStudentProfile)
	router.Get("/students/:account", h.getStudentProfile)
	router.Put("/students/preferences", h.updatePreferences)
	router.Post("/students/achievements", h.awardAchievement)

	router.Post("/instructors", h.createInstructorProfile)
	router.Get("/instructors/:account", h.getInstructorProfile)
}

func (h *ProfileHandler) createStudentProfile(c *fiber.Ctx) error {
	account := accountFromContext(c)
	if account == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.StudentProfileCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreateStudentProfile(withRequestContext(c), account, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student profile created", response)
}

func (h *ProfileHandler) getStudentProfile(c *fiber.Ctx) error {
	account := c.Params("account")
	if account == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "account required")
	}

	profile, err := h.service.GetStudentProfile(withRequestContext(c), account)
	if err != nil {
		return sendServiceError(c, err)
	}
	if profile == nil {
		return utils.SendErrorWithCode(c, fiber.StatusNotFound, service.CodeNotFound, "student profile not found")
	}

	return utils.SendSuccess(c, "student profile", profile)
}

func (h *ProfileHandler) updatePreferences(c *fiber.Ctx) error {
	account := accountFromContext(c)
	if account == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.PreferencesUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateStudentPreferences(withRequestContext(c), account, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "preferences updated", response)
}

func (h *ProfileHandler) awardAchievement(c *fiber.Ctx) error {
	caller := accountFromContext(c)
	if caller == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.AchievementAwardRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.AwardAchievement(withRequestContext(c), caller, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "achievement awarded", response)
}

func (h *ProfileHandler) createInstructorProfile(c *fiber.Ctx) error {
	account := accountFromContext(c)
	if account == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.InstructorProfileCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreateInstructorProfile(withRequestContext(c), account, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "instructor profile created", response)
}

func (h *ProfileHandler) getInstructorProfile(c *fiber.Ctx) error {
	account := c.Params("account")
	if account == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "account required")
	}

	profile, err := h.service.GetInstructorProfile(withRequestContext(c), account)
	if err != nil {
		return sendServiceError(c, err)
	}
	if profile == nil {
		return utils.SendErrorWithCode(c, fiber.StatusNotFound, service.CodeNotFound, "instructor profile not found")
	}

	return utils.SendSuccess(c, "instructor profile", profile)
}
