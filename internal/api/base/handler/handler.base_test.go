package basehdl

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aptamer_api/internal/common"
	"aptamer_api/internal/logger"
)

func init() {
	_ = logger.Init(&logger.LogConfig{Level: "error", Format: "text", Output: "none"})
}

type pingInput struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1"`
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body
}

func TestErrorBody(t *testing.T) {
	status, body := errorBody(common.ErrNotFound)
	assert.Equal(t, common.StatusNotFound, status)
	assert.Equal(t, "DB_002", body["code"])
	assert.NotContains(t, body, "details")

	status, body = errorBody(common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, errors.New("unexpected EOF")))
	assert.Equal(t, common.StatusBadRequest, status)
	assert.Equal(t, "unexpected EOF", body["details"])

	status, body = errorBody(fiber.ErrMethodNotAllowed)
	assert.Equal(t, common.StatusMethodNotAllowed, status)
	assert.Equal(t, common.StatusMethodNotAllowed, body["code"])

	status, body = errorBody(errors.New("boom"))
	assert.Equal(t, common.StatusInternalServerError, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}

func TestParseRequestBodyAndPagination(t *testing.T) {
	h := NewBaseHandler[struct{}](nil, FilterOptions{})
	app := fiber.New()
	app.Post("/ping", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error {
			input := pingInput{Count: 5}
			if err := h.ParseRequestBody(c, &input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			page, limit := h.ParsePagination(c)
			h.HandleResponse(c, fiber.Map{"input": input, "page": page, "limit": limit}, nil)
			return nil
		})
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error { panic("kaboom") })
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/ping?page=0&limit=abc", jsonBody(`{"name":"x"}`)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(5), data["input"].(map[string]any)["count"])
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(10), data["limit"])

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/ping", jsonBody(`{"count":2}`)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "VAL_001", body["code"])
	assert.Equal(t, []any{"Name: required"}, body["details"])

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/ping", jsonBody(`not json`)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_002", decode(t, resp)["code"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "SYS_001", decode(t, resp)["code"])
}

func TestReadRoutesWithoutStore(t *testing.T) {
	h := NewBaseHandler[struct{}](nil, FilterOptions{})
	app := fiber.New()
	app.Get("/runs/:id", h.FindOneById)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/runs/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "DB_001", decode(t, resp)["code"])
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
