//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rapifarma/internal/config"
	"rapifarma/internal/infra"
	"rapifarma/internal/router"
	"rapifarma/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("rapifarma_test"),
		tcPostgres.WithUsername("rapifarma"),
		tcPostgres.WithPassword("rapifarma"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
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
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		LegacyAPIURL:       "http://localhost:9999", // sin uso en estos tests
		WorkerPoolSize:     1,
		ReportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Admin de arranque
	hash, err := bcrypt.GenerateFromPassword([]byte("rapifarma2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (id, username, nombre, password_hash, rol, activo, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', 'Admin E2E', ?, 'administrador', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	legacyCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, legacyCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "rapifarma2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Ciclo completo: farmacia → cajero → cuadre → verificación → resumen.
func TestE2E_CicloDeCuadre(t *testing.T) {
	env := setupTestEnv(t)

	farmResp := do(t, env.server, "POST", "/v1/farmacias",
		jsonBody(t, map[string]any{"codigo_legado": "001", "nombre": "RapiFarma Centro"}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, farmResp.StatusCode)
	var farmacia struct {
		ID string `json:"id"`
	}
	decodeJSON(t, farmResp, &farmacia)

	cajResp := do(t, env.server, "POST", "/v1/cajeros",
		jsonBody(t, map[string]any{"farmacia_id": farmacia.ID, "nombre": "María Pérez"}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, cajResp.StatusCode)
	var cajero struct {
		ID string `json:"id"`
	}
	decodeJSON(t, cajResp, &cajero)

	// Esperado 100 USD (3600 Bs / 36), cobrado 105 → sobrante de 5
	cuadreResp := do(t, env.server, "POST", "/v1/cuadres",
		jsonBody(t, map[string]any{
			"farmacia_id":      farmacia.ID,
			"cajero_id":        cajero.ID,
			"fecha":            "2026-08-15",
			"total_sistema_bs": "3600",
			"efectivo_bs":      "1800",
			"efectivo_usd":     "45",
			"zelle_usd":        "10",
			"tasa":             "36",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, cuadreResp.StatusCode)
	var cuadre struct {
		ID            string `json:"id"`
		Estado        string `json:"estado"`
		DiferenciaUsd string `json:"diferencia_usd"`
	}
	decodeJSON(t, cuadreResp, &cuadre)
	assert.Equal(t, "wait", cuadre.Estado)
	assert.Equal(t, "5", cuadre.DiferenciaUsd)

	verResp := do(t, env.server, "PATCH", "/v1/cuadres/"+cuadre.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "verified"}),
		env.token,
	)
	require.Equal(t, http.StatusOK, verResp.StatusCode)
	verResp.Body.Close()

	resumenResp := do(t, env.server, "GET",
		"/v1/cuadres/resumen?farmacia="+farmacia.ID+"&fechaInicio=2026-08-01&fechaFin=2026-08-31",
		nil, env.token,
	)
	require.Equal(t, http.StatusOK, resumenResp.StatusCode)
	var resumen struct {
		Cantidad    int    `json:"cantidad"`
		SobranteUsd string `json:"sobrante_usd"`
	}
	decodeJSON(t, resumenResp, &resumen)
	assert.Equal(t, 1, resumen.Cantidad)
	assert.Equal(t, "5", resumen.SobranteUsd)
}

// Ledger bancario: el egreso sin fondos responde 409 y no toca el disponible.
func TestE2E_BancoFondosInsuficientes(t *testing.T) {
	env := setupTestEnv(t)

	bancoResp := do(t, env.server, "POST", "/v1/bancos",
		jsonBody(t, map[string]any{"nombre": "Banco de Venezuela", "divisa": "USD", "disponible": "100"}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, bancoResp.StatusCode)
	var banco struct {
		ID string `json:"id"`
	}
	decodeJSON(t, bancoResp, &banco)

	retiroResp := do(t, env.server, "POST", "/v1/bancos/"+banco.ID+"/retiro",
		jsonBody(t, map[string]any{"monto": "150", "descripcion": "Retiro excesivo", "fecha": "2026-08-15"}),
		env.token,
	)
	assert.Equal(t, http.StatusConflict, retiroResp.StatusCode)
	retiroResp.Body.Close()

	concResp := do(t, env.server, "GET", "/v1/bancos/"+banco.ID+"/conciliar", nil, env.token)
	require.Equal(t, http.StatusOK, concResp.StatusCode)
	var conc struct {
		Disponible string `json:"disponible"`
		Cuadrado   bool   `json:"cuadrado"`
	}
	decodeJSON(t, concResp, &conc)
	assert.Equal(t, "100", conc.Disponible)
	assert.True(t, conc.Cuadrado)
}

// Sin token no hay acceso a rutas protegidas.
func TestE2E_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/farmacias", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	health := do(t, env.server, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, health.StatusCode)
	health.Body.Close()
}
