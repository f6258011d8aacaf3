package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

// FinancialHandler provides HTTP endpoints for instructor earnings.
type FinancialHandler struct {
	service service.SettlementService
	logger  zerolog.Logger
}

// NewFinancialHandler constructs a handler instance.
func NewFinancialHandler(service service.SettlementService, logger zerolog.Logger) *FinancialHandler {
	return &FinancialHandler{
		service: service,
		logger:  logger.With().Str("component", "financial_handler").Logger(),
	}
}

// Register binds the financial routes.
func (h *FinancialHandler) Register(router fiber.Router) {
	router.Post("/withdrawals", h.withdraw)
}

func (h *FinancialHandler) withdraw(c *fiber.Ctx) error {
	account := accountFromContext(c)
	if account == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.WithdrawRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.WithdrawEarnings(withRequestContext(c), account, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "withdrawal recorded", response)
}
