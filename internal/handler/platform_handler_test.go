package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/handler"
	"github.com/edumarket/elearn-api/internal/service"
)

type mockPlatformService struct {
	state dto.PlatformStateResponse
	err   error
}

func (m *mockPlatformService) SetPlatformFee(_ context.Context, _ string, payload dto.PlatformFeeRequest) (dto.PlatformStateResponse, error) {
	if m.err != nil {
		return dto.PlatformStateResponse{}, m.err
	}
	state := m.state
	state.FeePercentage = *payload.Percent
	return state, nil
}

func (m *mockPlatformService) GetPlatformState(_ context.Context) (dto.PlatformStateResponse, error) {
	if m.err != nil {
		return dto.PlatformStateResponse{}, m.err
	}
	return m.state, nil
}

func platformTestApp(svc service.PlatformService, account string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/platform", func(c *fiber.Ctx) error {
		if account != "" {
			c.Locals("account", account)
		}
		return c.Next()
	})
	handler.NewPlatformHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestPlatformHandler_GetState(t *testing.T) {
	svc := &mockPlatformService{state: dto.PlatformStateResponse{
		Owner:         "deployer.elearn",
		FeePercentage: 5,
		NextCourseID:  1,
		NextPostID:    1,
	}}
	app := platformTestApp(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/platform/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                      `json:"success"`
		Data    dto.PlatformStateResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, uint64(5), response.Data.FeePercentage)
	require.Equal(t, uint64(1), response.Data.NextCourseID)
}

func TestPlatformHandler_SetFee(t *testing.T) {
	svc := &mockPlatformService{state: dto.PlatformStateResponse{Owner: "deployer.elearn"}}
	app := platformTestApp(svc, "deployer.elearn")

	percent := uint64(12)
	body, err := json.Marshal(dto.PlatformFeeRequest{Percent: &percent})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/platform/fee", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                      `json:"success"`
		Data    dto.PlatformStateResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, uint64(12), response.Data.FeePercentage)
}

func TestPlatformHandler_SetFee_Unauthenticated(t *testing.T) {
	svc := &mockPlatformService{}
	app := platformTestApp(svc, "")

	percent := uint64(12)
	body, err := json.Marshal(dto.PlatformFeeRequest{Percent: &percent})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/platform/fee", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPlatformHandler_LedgerCodeMapping(t *testing.T) {
	svc := &mockPlatformService{err: service.ErrUnauthorized}
	app := platformTestApp(svc, "mallory.elearn")

	percent := uint64(12)
	body, err := json.Marshal(dto.PlatformFeeRequest{Percent: &percent})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/platform/fee", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Code    uint   `json:"code"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.False(t, response.Success)
	require.Equal(t, service.CodeUnauthorized, response.Code)
}
