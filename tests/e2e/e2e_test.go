//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full sale cycle: insumos → producto con receta → venta → finalizar,
//     checking stock deduction and loyalty points over HTTP
//   - Finalized sales are immutable (second finalize → 409)
//   - Recipe lines with incompatible units are rejected (422)
//   - Clock-in/out at the attendance terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/config"
	"github.com/iangusi/cafeteria-admin/internal/infra"
	"github.com/iangusi/cafeteria-admin/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("cafeteria_test"),
		tcPostgres.WithUsername("cafeteria"),
		tcPostgres.WithPassword("cafeteria"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		WorkerPoolSize: 1,
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		PDFStoragePath: t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)
	return srv
}

type idResp struct {
	ID string `json:"id"`
}

func crearInsumo(t *testing.T, srv *httptest.Server, nombre, unidad string, cantidad, minima, costo float64) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/insumos", jsonBody(t, map[string]any{
		"nombre":           nombre,
		"unidad":           unidad,
		"cantidad":         cantidad,
		"cantidad_minima":  minima,
		"costo_por_unidad": costo,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body idResp
	decodeJSON(t, resp, &body)
	return body.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloVentaCompleto(t *testing.T) {
	srv := setupTestServer(t)

	cafeID := crearInsumo(t, srv, "Café molido", "kg", 5, 1, 400)
	lecheID := crearInsumo(t, srv, "Leche", "l", 10, 2, 80)

	// Producto con receta en unidades de receta (g / ml)
	prodResp := do(t, srv, "POST", "/v1/productos", jsonBody(t, map[string]any{
		"nombre":       "Latte",
		"precio_venta": 35.50,
	}))
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod idResp
	decodeJSON(t, prodResp, &prod)

	for _, linea := range []map[string]any{
		{"insumo_id": cafeID, "cantidad": 18, "unidad": "g"},
		{"insumo_id": lecheID, "cantidad": 200, "unidad": "ml"},
	} {
		r := do(t, srv, "POST", fmt.Sprintf("/v1/productos/%s/receta", prod.ID), jsonBody(t, linea))
		require.Equal(t, http.StatusCreated, r.StatusCode)
	}

	costosResp := do(t, srv, "GET", fmt.Sprintf("/v1/productos/%s/costos", prod.ID), nil)
	require.Equal(t, http.StatusOK, costosResp.StatusCode)
	var costos struct {
		CostoTotal float64 `json:"costo_total,string"`
	}
	decodeJSON(t, costosResp, &costos)
	assert.InDelta(t, 23.20, costos.CostoTotal, 0.001)

	// Cliente con puntos acumulados
	cliResp := do(t, srv, "POST", "/v1/clientes", jsonBody(t, map[string]any{
		"nombre": "Ana López",
		"correo": "ana@example.com",
	}))
	require.Equal(t, http.StatusCreated, cliResp.StatusCode)
	var cli idResp
	decodeJSON(t, cliResp, &cli)

	// Venta pendiente con 3 lattes
	ventaResp := do(t, srv, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"titulo":     "Mesa 4",
		"cliente_id": cli.ID,
	}))
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta idResp
	decodeJSON(t, ventaResp, &venta)

	itemResp := do(t, srv, "POST", fmt.Sprintf("/v1/ventas/%s/items", venta.ID), jsonBody(t, map[string]any{
		"producto_id": prod.ID,
		"cantidad":    3,
	}))
	require.Equal(t, http.StatusCreated, itemResp.StatusCode)
	itemResp.Body.Close()

	finResp := do(t, srv, "POST", fmt.Sprintf("/v1/ventas/%s/finalizar", venta.ID), nil)
	require.Equal(t, http.StatusOK, finResp.StatusCode)
	var finalizada struct {
		Estado       string  `json:"estado"`
		PrecioTotal  float64 `json:"precio_total,string"`
		PrecioFinal  float64 `json:"precio_final,string"`
		PuntosUsados int     `json:"puntos_usados"`
	}
	decodeJSON(t, finResp, &finalizada)
	assert.Equal(t, "finalizada", finalizada.Estado)
	assert.InDelta(t, 106.50, finalizada.PrecioTotal, 0.001)
	assert.Equal(t, 0, finalizada.PuntosUsados)

	// Stock descendió en la unidad del insumo: 5 kg − 3×18 g = 4.95 kg
	insumoResp := do(t, srv, "GET", fmt.Sprintf("/v1/insumos/%s", cafeID), nil)
	require.Equal(t, http.StatusOK, insumoResp.StatusCode)
	var cafe struct {
		Cantidad float64 `json:"cantidad,string"`
	}
	decodeJSON(t, insumoResp, &cafe)
	assert.InDelta(t, 4.95, cafe.Cantidad, 0.001)

	// Puntos ganados: floor(106.50 / 10) = 10
	clienteResp := do(t, srv, "GET", fmt.Sprintf("/v1/clientes/%s", cli.ID), nil)
	require.Equal(t, http.StatusOK, clienteResp.StatusCode)
	var cliente struct {
		Puntos int `json:"puntos"`
	}
	decodeJSON(t, clienteResp, &cliente)
	assert.Equal(t, 10, cliente.Puntos)

	// La venta aparece en el listado del día
	listResp := do(t, srv, "GET", fmt.Sprintf("/v1/ventas?fecha=%s&estado=finalizada", time.Now().UTC().Format("2006-01-02")), nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var lista struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &lista)
	assert.Equal(t, int64(1), lista.Total)
}

func TestE2E_VentaFinalizadaEsInmutable(t *testing.T) {
	srv := setupTestServer(t)

	prodResp := do(t, srv, "POST", "/v1/productos", jsonBody(t, map[string]any{
		"nombre":       "Té de la casa",
		"precio_venta": 25.0,
	}))
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod idResp
	decodeJSON(t, prodResp, &prod)

	ventaResp := do(t, srv, "POST", "/v1/ventas", jsonBody(t, map[string]any{"titulo": "Para llevar"}))
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta idResp
	decodeJSON(t, ventaResp, &venta)

	itemResp := do(t, srv, "POST", fmt.Sprintf("/v1/ventas/%s/items", venta.ID), jsonBody(t, map[string]any{
		"producto_id": prod.ID,
		"cantidad":    1,
	}))
	require.Equal(t, http.StatusCreated, itemResp.StatusCode)
	itemResp.Body.Close()

	fin1 := do(t, srv, "POST", fmt.Sprintf("/v1/ventas/%s/finalizar", venta.ID), nil)
	require.Equal(t, http.StatusOK, fin1.StatusCode)
	fin1.Body.Close()

	// second finalize and cancel both hit the immutability guard
	fin2 := do(t, srv, "POST", fmt.Sprintf("/v1/ventas/%s/finalizar", venta.ID), nil)
	assert.Equal(t, http.StatusConflict, fin2.StatusCode)
	fin2.Body.Close()

	del := do(t, srv, "DELETE", fmt.Sprintf("/v1/ventas/%s", venta.ID), nil)
	assert.Equal(t, http.StatusConflict, del.StatusCode)
	del.Body.Close()
}

func TestE2E_RecetaUnidadIncompatible(t *testing.T) {
	srv := setupTestServer(t)

	cafeID := crearInsumo(t, srv, "Café en grano", "kg", 3, 1, 500)

	prodResp := do(t, srv, "POST", "/v1/productos", jsonBody(t, map[string]any{
		"nombre":       "Cold brew",
		"precio_venta": 40.0,
	}))
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod idResp
	decodeJSON(t, prodResp, &prod)

	r := do(t, srv, "POST", fmt.Sprintf("/v1/productos/%s/receta", prod.ID), jsonBody(t, map[string]any{
		"insumo_id": cafeID,
		"cantidad":  50,
		"unidad":    "ml",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, r.StatusCode)
	r.Body.Close()
}

func TestE2E_MarcarAsistencia(t *testing.T) {
	srv := setupTestServer(t)

	empResp := do(t, srv, "POST", "/v1/empleados", jsonBody(t, map[string]any{
		"nombre":        "Carla Méndez",
		"correo":        "carla@cafeteria.local",
		"password":      "espresso-doble",
		"rol":           "barista",
		"pago_por_hora": 150.0,
	}))
	require.Equal(t, http.StatusCreated, empResp.StatusCode)
	empResp.Body.Close()

	marca := func(tipo string) *http.Response {
		return do(t, srv, "POST", "/v1/asistencias/marcar", jsonBody(t, map[string]any{
			"correo":   "carla@cafeteria.local",
			"password": "espresso-doble",
			"tipo":     tipo,
		}))
	}

	// salida before any entrada is refused
	prematura := marca("salida")
	assert.Equal(t, http.StatusConflict, prematura.StatusCode)
	prematura.Body.Close()

	entrada := marca("entrada")
	require.Equal(t, http.StatusOK, entrada.StatusCode)
	var m struct {
		Tipo string `json:"tipo"`
	}
	decodeJSON(t, entrada, &m)
	assert.Equal(t, "entrada", m.Tipo)

	// a repeated entrada is refused instead of sliding into a salida
	repetida := marca("entrada")
	assert.Equal(t, http.StatusConflict, repetida.StatusCode)
	repetida.Body.Close()

	salida := marca("salida")
	require.Equal(t, http.StatusOK, salida.StatusCode)
	decodeJSON(t, salida, &m)
	assert.Equal(t, "salida", m.Tipo)

	// the day is closed: another salida is refused
	tercera := marca("salida")
	assert.Equal(t, http.StatusConflict, tercera.StatusCode)
	tercera.Body.Close()

	// wrong password never reveals which credential failed
	mal := do(t, srv, "POST", "/v1/asistencias/marcar", jsonBody(t, map[string]any{
		"correo":   "carla@cafeteria.local",
		"password": "incorrecta",
		"tipo":     "entrada",
	}))
	assert.Equal(t, http.StatusUnauthorized, mal.StatusCode)
	mal.Body.Close()
}
