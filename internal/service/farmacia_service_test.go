package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rapifarma/internal/dto"
	"rapifarma/internal/infra"
	"rapifarma/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFarmaciaRepo struct {
	farmacias map[uuid.UUID]*model.Farmacia
	cajeros   map[uuid.UUID]*model.Cajero
}

func newFakeFarmaciaRepo() *fakeFarmaciaRepo {
	return &fakeFarmaciaRepo{
		farmacias: make(map[uuid.UUID]*model.Farmacia),
		cajeros:   make(map[uuid.UUID]*model.Cajero),
	}
}

func (r *fakeFarmaciaRepo) Create(_ context.Context, f *model.Farmacia) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.farmacias[f.ID] = f
	return nil
}

func (r *fakeFarmaciaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Farmacia, error) {
	f, ok := r.farmacias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *fakeFarmaciaRepo) FindByCodigoLegado(_ context.Context, codigo string) (*model.Farmacia, error) {
	for _, f := range r.farmacias {
		if f.CodigoLegado == codigo {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFarmaciaRepo) List(_ context.Context) ([]model.Farmacia, error) {
	var result []model.Farmacia
	for _, f := range r.farmacias {
		if f.Activa {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (r *fakeFarmaciaRepo) Update(_ context.Context, f *model.Farmacia) error {
	r.farmacias[f.ID] = f
	return nil
}

func (r *fakeFarmaciaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	f, ok := r.farmacias[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Activa = false
	return nil
}

func (r *fakeFarmaciaRepo) ListCajeros(_ context.Context, farmaciaID *uuid.UUID) ([]model.Cajero, error) {
	var result []model.Cajero
	for _, c := range r.cajeros {
		if farmaciaID != nil && c.FarmaciaID != *farmaciaID {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeFarmaciaRepo) CreateCajero(_ context.Context, c *model.Cajero) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajeros[c.ID] = c
	return nil
}

func newFarmaciaSvc(repo *fakeFarmaciaRepo, legacyURL string) FarmaciaService {
	legacy := infra.NewLegacyClient(legacyURL, "test-token")
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	return NewFarmaciaService(repo, legacy, cb)
}

func TestCrearFarmaciaRechazaCodigoDuplicado(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	svc := newFarmaciaSvc(repo, "http://legacy.invalid")
	ctx := context.Background()

	_, err := svc.Crear(ctx, dto.CrearFarmaciaRequest{CodigoLegado: "001", Nombre: "RapiFarma Centro"})
	require.NoError(t, err)

	_, err = svc.Crear(ctx, dto.CrearFarmaciaRequest{CodigoLegado: "001", Nombre: "Otra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya existe")
}

func TestSincronizarImportaYActualiza(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	ctx := context.Background()

	// Ya conocida, con nombre viejo
	require.NoError(t, repo.Create(ctx, &model.Farmacia{CodigoLegado: "001", Nombre: "Centro", Activa: true}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"farmacias": {"001": "RapiFarma Centro", "002": "RapiFarma Norte"}}`))
	}))
	defer srv.Close()

	svc := newFarmaciaSvc(repo, srv.URL)
	resumen, err := svc.SincronizarDesdeLegacy(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, resumen.Importadas)
	assert.Equal(t, 1, resumen.Actualizadas)

	f, err := repo.FindByCodigoLegado(ctx, "001")
	require.NoError(t, err)
	assert.Equal(t, "RapiFarma Centro", f.Nombre)

	nueva, err := repo.FindByCodigoLegado(ctx, "002")
	require.NoError(t, err)
	assert.True(t, nueva.Activa)
}

func TestSincronizarAceptaMapaPlano(t *testing.T) {
	repo := newFakeFarmaciaRepo()

	// Forma vieja de la API legada: el mapa sin envoltura
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"003": "RapiFarma Sur"}`))
	}))
	defer srv.Close()

	svc := newFarmaciaSvc(repo, srv.URL)
	resumen, err := svc.SincronizarDesdeLegacy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resumen.Importadas)
}

func TestSincronizarAbreElCircuitoTrasFallasConsecutivas(t *testing.T) {
	repo := newFakeFarmaciaRepo()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := newFarmaciaSvc(repo, srv.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.SincronizarDesdeLegacy(ctx)
		require.Error(t, err)
	}

	// Sexta llamada: el breaker ya está abierto y ni toca la API
	_, err := svc.SincronizarDesdeLegacy(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, infra.ErrCircuitOpen))
}

func TestInventariosConsultaLaAPILegada(t *testing.T) {
	repo := newFakeFarmaciaRepo()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventarios", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"codigo": "P-001", "nombre": "Acetaminofén 500mg", "existencia": 120, "farmacia": "001"}]`))
	}))
	defer srv.Close()

	svc := newFarmaciaSvc(repo, srv.URL)
	filas, err := svc.Inventarios(context.Background())
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "P-001", filas[0].Codigo)
	assert.Equal(t, 120, filas[0].Existencia)
	assert.Equal(t, "001", filas[0].Farmacia)
}

func TestCrearCajeroValidaLaFarmacia(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	svc := newFarmaciaSvc(repo, "http://legacy.invalid")
	ctx := context.Background()

	_, err := svc.CrearCajero(ctx, dto.CrearCajeroRequest{FarmaciaID: uuid.NewString(), Nombre: "María"})
	require.Error(t, err)

	f := &model.Farmacia{CodigoLegado: "001", Nombre: "Centro", Activa: true}
	require.NoError(t, repo.Create(ctx, f))

	cajero, err := svc.CrearCajero(ctx, dto.CrearCajeroRequest{FarmaciaID: f.ID.String(), Nombre: "María"})
	require.NoError(t, err)
	assert.True(t, cajero.Activo)
}
