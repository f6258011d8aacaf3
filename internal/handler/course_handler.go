package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

// CourseHandler provides HTTP endpoints for the course catalog.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs a handler instance.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register binds the course routes.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("/", h.listCourses)
	router.Post("/", h.createCourse)
	router.Get("/:id", h.getCourse)
	router.Put("/:id", h.updateCourse)
	router.Patch("/:id/status", h.setCourseStatus)
}

func (h *CourseHandler) listCourses(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	courses, err := h.service.ListCourses(withRequestContext(c), limit, offset)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "courses", courses)
}

func (h *CourseHandler) createCourse(c *fiber.Ctx) error {
	instructor := accountFromContext(c)
	if instructor == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreateCourse(withRequestContext(c), instructor, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", response)
}

func (h *CourseHandler) getCourse(c *fiber.Ctx) error {
	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.service.GetCourse(withRequestContext(c), id)
	if err != nil {
		return sendServiceError(c, err)
	}
	if course == nil {
		return utils.SendErrorWithCode(c, fiber.StatusNotFound, service.CodeNotFound, "course not found")
	}

	return utils.SendSuccess(c, "course", course)
}

func (h *CourseHandler) updateCourse(c *fiber.Ctx) error {
	caller := accountFromContext(c)
	if caller == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateCourseDetails(withRequestContext(c), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "course updated", response)
}

func (h *CourseHandler) setCourseStatus(c *fiber.Ctx) error {
	caller := accountFromContext(c)
	if caller == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CourseStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.SetCourseActive(withRequestContext(c), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "course status updated", response)
}
