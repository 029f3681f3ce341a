package repository

import (
	"context"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FiltroRangoCPP struct {
	StartDate  *time.Time
	EndDate    *time.Time
	FarmaciaID *uuid.UUID
	Estatus    string
}

type CuentaPorPagarRepository interface {
	Create(ctx context.Context, c *model.CuentaPorPagar) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorPagar, error)
	List(ctx context.Context) ([]model.CuentaPorPagar, error)
	ListRango(ctx context.Context, filtro FiltroRangoCPP) ([]model.CuentaPorPagar, error)
	Update(ctx context.Context, c *model.CuentaPorPagar) error
}

type cppRepo struct{ db *gorm.DB }

func NewCuentaPorPagarRepository(db *gorm.DB) CuentaPorPagarRepository { return &cppRepo{db: db} }

func (r *cppRepo) Create(ctx context.Context, c *model.CuentaPorPagar) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cppRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorPagar, error) {
	var c model.CuentaPorPagar
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Farmacia").First(&c, id).Error
	return &c, err
}

func (r *cppRepo) List(ctx context.Context) ([]model.CuentaPorPagar, error) {
	var cuentas []model.CuentaPorPagar
	err := r.db.WithContext(ctx).Preload("Pagos").Preload("Farmacia").
		Order("fecha_emision DESC").Find(&cuentas).Error
	return cuentas, err
}

// ListRango filtra por fecha de emisión; el rango es inclusivo en ambos extremos.
func (r *cppRepo) ListRango(ctx context.Context, filtro FiltroRangoCPP) ([]model.CuentaPorPagar, error) {
	q := r.db.WithContext(ctx).Preload("Pagos").Preload("Farmacia")
	if filtro.StartDate != nil {
		q = q.Where("fecha_emision >= ?", *filtro.StartDate)
	}
	if filtro.EndDate != nil {
		q = q.Where("fecha_emision <= ?", *filtro.EndDate)
	}
	if filtro.FarmaciaID != nil {
		q = q.Where("farmacia_id = ?", *filtro.FarmaciaID)
	}
	if filtro.Estatus != "" {
		q = q.Where("estatus = ?", filtro.Estatus)
	}
	var cuentas []model.CuentaPorPagar
	err := q.Order("fecha_emision DESC").Find(&cuentas).Error
	return cuentas, err
}

func (r *cppRepo) Update(ctx context.Context, c *model.CuentaPorPagar) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// ── Pagos ────────────────────────────────────────────────────────────────────

type PagoCPPRepository interface {
	Create(ctx context.Context, p *model.PagoCPP) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PagoCPP, error)
	ListAll(ctx context.Context) ([]model.PagoCPP, error)
	ListByCuenta(ctx context.Context, cuentaID uuid.UUID) ([]model.PagoCPP, error)
	ListRango(ctx context.Context, inicio, fin time.Time) ([]model.PagoCPP, error)
	Update(ctx context.Context, p *model.PagoCPP) error
}

type pagoCPPRepo struct{ db *gorm.DB }

func NewPagoCPPRepository(db *gorm.DB) PagoCPPRepository { return &pagoCPPRepo{db: db} }

func (r *pagoCPPRepo) Create(ctx context.Context, p *model.PagoCPP) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoCPPRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PagoCPP, error) {
	var p model.PagoCPP
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *pagoCPPRepo) ListAll(ctx context.Context) ([]model.PagoCPP, error) {
	var pagos []model.PagoCPP
	err := r.db.WithContext(ctx).Order("fecha DESC").Find(&pagos).Error
	return pagos, err
}

func (r *pagoCPPRepo) ListByCuenta(ctx context.Context, cuentaID uuid.UUID) ([]model.PagoCPP, error) {
	var pagos []model.PagoCPP
	err := r.db.WithContext(ctx).Where("cuenta_por_pagar_id = ?", cuentaID).
		Order("fecha ASC").Find(&pagos).Error
	return pagos, err
}

func (r *pagoCPPRepo) ListRango(ctx context.Context, inicio, fin time.Time) ([]model.PagoCPP, error) {
	var pagos []model.PagoCPP
	err := r.db.WithContext(ctx).Where("fecha >= ? AND fecha <= ?", inicio, fin).
		Order("fecha DESC").Find(&pagos).Error
	return pagos, err
}

func (r *pagoCPPRepo) Update(ctx context.Context, p *model.PagoCPP) error {
	return r.db.WithContext(ctx).Save(p).Error
}
