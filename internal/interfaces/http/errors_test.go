package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmoralesv/AgroStock-api/internal/application/dto"
	"github.com/cmoralesv/AgroStock-api/internal/domain"
)

// appReturning construye una app mínima cuya única ruta responde con el error dado.
func appReturning(err error) *fiber.App {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return replyError(c, err)
	})
	return app
}

func TestReplyErrorMapeaCentinelasAEstados(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"referencia inválida", domain.ErrInvalidReference, fiber.StatusBadRequest, "INVALID_REFERENCE"},
		{"transferencia inválida", domain.ErrInvalidTransfer, fiber.StatusBadRequest, "INVALID_TRANSFER"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"stock insuficiente", domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"estado inválido", domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
		{"activo no disponible", domain.ErrAssetUnavailable, fiber.StatusConflict, "ASSET_UNAVAILABLE"},
		{"error desconocido", assert.AnError, fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := appReturning(tc.err)
			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tc.wantCode, out.Code)
		})
	}
}

func TestGetActorIDLeeElHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"actor": GetActorID(c)})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Actor-Id", "operario-7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "operario-7", out["actor"])
}
