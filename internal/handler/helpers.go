package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/edumarket/elearn-api/internal/middleware"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

func accountFromContext(c *fiber.Ctx) string {
	if v := c.Locals("account"); v != nil {
		if account, ok := v.(string); ok {
			return strings.TrimSpace(account)
		}
	}
	return ""
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseUintParamValue(c *fiber.Ctx, key string) (uint64, error) {
	value := strings.TrimSpace(c.Params(key))
	if value == "" {
		return 0, fmt.Errorf("%s required", key)
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendServiceError translates service failures into HTTP responses: ledger
// codes map onto 404/409/403, validation failures onto 400, everything else
// is a 500.
func sendServiceError(c *fiber.Ctx, err error) error {
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if code, ok := service.LedgerCode(err); ok {
		return utils.SendErrorWithCode(c, statusForLedgerCode(code), code, err.Error())
	}
	return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
}

func statusForLedgerCode(code uint) int {
	switch code {
	case service.CodeNotFound:
		return fiber.StatusNotFound
	case service.CodeAlreadyExists:
		return fiber.StatusConflict
	case service.CodeUnauthorized:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func withRequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}
