package service

// In-memory repository fakes shared by the service tests.

import (
	"context"
	"errors"
	"time"

	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ── Cuadres ──────────────────────────────────────────────────────────────────

type fakeCuadreRepo struct {
	cuadres map[uuid.UUID]*model.Cuadre
}

func newFakeCuadreRepo() *fakeCuadreRepo {
	return &fakeCuadreRepo{cuadres: make(map[uuid.UUID]*model.Cuadre)}
}

func (r *fakeCuadreRepo) Create(_ context.Context, c *model.Cuadre) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cuadres[c.ID] = c
	return nil
}

func (r *fakeCuadreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cuadre, error) {
	c, ok := r.cuadres[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *fakeCuadreRepo) List(_ context.Context, filtro repository.FiltroCuadres) ([]model.Cuadre, error) {
	var result []model.Cuadre
	for _, c := range r.cuadres {
		if filtro.FarmaciaID != nil && c.FarmaciaID != *filtro.FarmaciaID {
			continue
		}
		if filtro.Estado != "" && c.Estado != filtro.Estado {
			continue
		}
		if filtro.FechaInicio != nil && c.Fecha.Before(*filtro.FechaInicio) {
			continue
		}
		if filtro.FechaFin != nil && c.Fecha.After(*filtro.FechaFin) {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeCuadreRepo) Update(_ context.Context, c *model.Cuadre) error {
	r.cuadres[c.ID] = c
	return nil
}

// ── Gastos ───────────────────────────────────────────────────────────────────

type fakeGastoRepo struct {
	gastos map[uuid.UUID]*model.Gasto
}

func newFakeGastoRepo() *fakeGastoRepo {
	return &fakeGastoRepo{gastos: make(map[uuid.UUID]*model.Gasto)}
}

func (r *fakeGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos[g.ID] = g
	return nil
}

func (r *fakeGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return g, nil
}

func (r *fakeGastoRepo) List(_ context.Context, filtro repository.FiltroGastos) ([]model.Gasto, error) {
	var result []model.Gasto
	for _, g := range r.gastos {
		if filtro.FarmaciaID != nil && g.FarmaciaID != *filtro.FarmaciaID {
			continue
		}
		if filtro.Estado != "" && g.Estado != filtro.Estado {
			continue
		}
		if filtro.FechaInicio != nil && g.Fecha.Before(*filtro.FechaInicio) {
			continue
		}
		if filtro.FechaFin != nil && g.Fecha.After(*filtro.FechaFin) {
			continue
		}
		result = append(result, *g)
	}
	return result, nil
}

func (r *fakeGastoRepo) Update(_ context.Context, g *model.Gasto) error {
	r.gastos[g.ID] = g
	return nil
}

// ── Cuentas por pagar + pagos (shared store, FindByID attaches the pagos) ───

type cppStore struct {
	cuentas map[uuid.UUID]*model.CuentaPorPagar
	pagos   map[uuid.UUID]*model.PagoCPP
}

func newCPPStore() *cppStore {
	return &cppStore{
		cuentas: make(map[uuid.UUID]*model.CuentaPorPagar),
		pagos:   make(map[uuid.UUID]*model.PagoCPP),
	}
}

type fakeCPPRepo struct{ s *cppStore }

func (r *fakeCPPRepo) Create(_ context.Context, c *model.CuentaPorPagar) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.cuentas[c.ID] = c
	return nil
}

func (r *fakeCPPRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CuentaPorPagar, error) {
	c, ok := r.s.cuentas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	c.Pagos = nil
	for _, p := range r.s.pagos {
		if p.CuentaPorPagarID == id {
			c.Pagos = append(c.Pagos, *p)
		}
	}
	return c, nil
}

func (r *fakeCPPRepo) List(ctx context.Context) ([]model.CuentaPorPagar, error) {
	var result []model.CuentaPorPagar
	for id := range r.s.cuentas {
		c, _ := r.FindByID(ctx, id)
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeCPPRepo) ListRango(ctx context.Context, filtro repository.FiltroRangoCPP) ([]model.CuentaPorPagar, error) {
	all, _ := r.List(ctx)
	var result []model.CuentaPorPagar
	for _, c := range all {
		if filtro.FarmaciaID != nil && c.FarmaciaID != *filtro.FarmaciaID {
			continue
		}
		if filtro.Estatus != "" && c.Estatus != filtro.Estatus {
			continue
		}
		if filtro.StartDate != nil && c.FechaEmision.Before(*filtro.StartDate) {
			continue
		}
		if filtro.EndDate != nil && c.FechaEmision.After(*filtro.EndDate) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeCPPRepo) Update(_ context.Context, c *model.CuentaPorPagar) error {
	r.s.cuentas[c.ID] = c
	return nil
}

type fakePagoCPPRepo struct{ s *cppStore }

func (r *fakePagoCPPRepo) Create(_ context.Context, p *model.PagoCPP) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.pagos[p.ID] = p
	return nil
}

func (r *fakePagoCPPRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PagoCPP, error) {
	p, ok := r.s.pagos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakePagoCPPRepo) ListAll(_ context.Context) ([]model.PagoCPP, error) {
	var result []model.PagoCPP
	for _, p := range r.s.pagos {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePagoCPPRepo) ListByCuenta(_ context.Context, cuentaID uuid.UUID) ([]model.PagoCPP, error) {
	var result []model.PagoCPP
	for _, p := range r.s.pagos {
		if p.CuentaPorPagarID == cuentaID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakePagoCPPRepo) ListRango(_ context.Context, inicio, fin time.Time) ([]model.PagoCPP, error) {
	var result []model.PagoCPP
	for _, p := range r.s.pagos {
		if p.Fecha.Before(inicio) || p.Fecha.After(fin) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePagoCPPRepo) Update(_ context.Context, p *model.PagoCPP) error {
	r.s.pagos[p.ID] = p
	return nil
}

// ── Bancos ───────────────────────────────────────────────────────────────────

type fakeBancoRepo struct {
	bancos      map[uuid.UUID]*model.Banco
	movimientos []model.MovimientoBanco
}

func newFakeBancoRepo() *fakeBancoRepo {
	return &fakeBancoRepo{bancos: make(map[uuid.UUID]*model.Banco)}
}

func (r *fakeBancoRepo) Create(_ context.Context, b *model.Banco) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bancos[b.ID] = b
	return nil
}

func (r *fakeBancoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Banco, error) {
	b, ok := r.bancos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *fakeBancoRepo) List(_ context.Context) ([]model.Banco, error) {
	var result []model.Banco
	for _, b := range r.bancos {
		result = append(result, *b)
	}
	return result, nil
}

func (r *fakeBancoRepo) Update(_ context.Context, b *model.Banco) error {
	r.bancos[b.ID] = b
	return nil
}

func (r *fakeBancoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	b, ok := r.bancos[id]
	if !ok {
		return errors.New("not found")
	}
	b.Activo = false
	return nil
}

func (r *fakeBancoRepo) RegistrarMovimiento(_ context.Context, bancoID uuid.UUID, mov *model.MovimientoBanco, aplicar func(b *model.Banco) error) error {
	b, ok := r.bancos[bancoID]
	if !ok {
		return errors.New("not found")
	}
	if err := aplicar(b); err != nil {
		return err
	}
	if mov.ID == uuid.Nil {
		mov.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *mov)
	return nil
}

func (r *fakeBancoRepo) ListMovimientos(_ context.Context, bancoID, farmaciaID *uuid.UUID) ([]model.MovimientoBanco, error) {
	var result []model.MovimientoBanco
	for _, m := range r.movimientos {
		if bancoID != nil && m.BancoID != *bancoID {
			continue
		}
		if farmaciaID != nil && (m.FarmaciaID == nil || *m.FarmaciaID != *farmaciaID) {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

// ── Metas ────────────────────────────────────────────────────────────────────

type fakeMetaRepo struct {
	metas map[uuid.UUID]*model.Meta
}

func newFakeMetaRepo() *fakeMetaRepo {
	return &fakeMetaRepo{metas: make(map[uuid.UUID]*model.Meta)}
}

func (r *fakeMetaRepo) Create(_ context.Context, m *model.Meta) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metas[m.ID] = m
	return nil
}

func (r *fakeMetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Meta, error) {
	m, ok := r.metas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *fakeMetaRepo) List(_ context.Context, farmaciaID *uuid.UUID) ([]model.Meta, error) {
	var result []model.Meta
	for _, m := range r.metas {
		if farmaciaID != nil && m.FarmaciaID != *farmaciaID {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeMetaRepo) Update(_ context.Context, m *model.Meta) error {
	r.metas[m.ID] = m
	return nil
}

func (r *fakeMetaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.metas, id)
	return nil
}

// ── Reportes ─────────────────────────────────────────────────────────────────

type fakeReporteRepo struct {
	reportes map[uuid.UUID]*model.Reporte
}

func newFakeReporteRepo() *fakeReporteRepo {
	return &fakeReporteRepo{reportes: make(map[uuid.UUID]*model.Reporte)}
}

func (r *fakeReporteRepo) Create(_ context.Context, rep *model.Reporte) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	r.reportes[rep.ID] = rep
	return nil
}

func (r *fakeReporteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reporte, error) {
	rep, ok := r.reportes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rep, nil
}

func (r *fakeReporteRepo) Update(_ context.Context, rep *model.Reporte) error {
	r.reportes[rep.ID] = rep
	return nil
}

func (r *fakeReporteRepo) ListPendingRetries(_ context.Context, before time.Time, limit int) ([]model.Reporte, error) {
	var result []model.Reporte
	for _, rep := range r.reportes {
		if rep.Estado != "pendiente" || rep.NextRetryAt == nil || rep.NextRetryAt.After(before) {
			continue
		}
		result = append(result, *rep)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// ── Dispatcher ───────────────────────────────────────────────────────────────

// fakeDispatcher captures enqueued payloads instead of touching Redis.
type fakeDispatcher struct {
	emails   []interface{}
	reportes []interface{}
	fail     bool
}

func (d *fakeDispatcher) EnqueueEmail(_ context.Context, payload interface{}) error {
	if d.fail {
		return errors.New("redis down")
	}
	d.emails = append(d.emails, payload)
	return nil
}

func (d *fakeDispatcher) EnqueueReporte(_ context.Context, payload interface{}) error {
	if d.fail {
		return errors.New("redis down")
	}
	d.reportes = append(d.reportes, payload)
	return nil
}
