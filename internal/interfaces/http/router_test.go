package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/facturio/internal/interfaces/http"
)

// buildRouterApp registra el router completo. Las peticiones sin token nunca
// llegan a los handlers, así que no hace falta cablear casos de uso reales.
func buildRouterApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})
	return app
}

func routeRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// La generación del PDF registra document_location, así que la ruta es POST.
// Un GET sobre el mismo path no debe existir.
func TestRouter_PDFEsPost(t *testing.T) {
	app := buildRouterApp()

	resp := routeRequest(t, app, http.MethodPost, "/api/invoices/inv-1/pdf")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"la ruta POST existe: sin token debe cortar en el middleware con 401")

	resp = routeRequest(t, app, http.MethodGet, "/api/invoices/inv-1/pdf")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode,
		"GET sobre el path del PDF no es una ruta")
}

func TestRouter_NegocioDelUsuarioEsMe(t *testing.T) {
	app := buildRouterApp()

	resp := routeRequest(t, app, http.MethodGet, "/api/businesses/me")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"la ruta /api/businesses/me existe y está protegida")
}

func TestRouter_SesionActualProtegida(t *testing.T) {
	app := buildRouterApp()

	resp := routeRequest(t, app, http.MethodGet, "/api/auth/me")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"la ruta /api/auth/me existe y está protegida")
}
