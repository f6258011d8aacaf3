package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

// PlatformHandler provides HTTP endpoints for the platform configuration.
type PlatformHandler struct {
	service service.PlatformService
	logger  zerolog.Logger
}

// NewPlatformHandler constructs a handler instance.
func NewPlatformHandler(service service.PlatformService, logger zerolog.Logger) *PlatformHandler {
	return &PlatformHandler{
		service: service,
		logger:  logger.With().Str("component", "platform_handler").Logger(),
	}
}

// Register binds the platform routes.
func (h *PlatformHandler) Register(router fiber.Router) {
	router.Get("/", h.getState)
	router.Put("/fee", h.setFee)
}

func (h *PlatformHandler) getState(c *fiber.Ctx) error {
	state, err := h.service.GetPlatformState(withRequestContext(c))
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "platform state", state)
}

func (h *PlatformHandler) setFee(c *fiber.Ctx) error {
	caller := accountFromContext(c)
	if caller == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.PlatformFeeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.SetPlatformFee(withRequestContext(c), caller, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "platform fee updated", response)
}
