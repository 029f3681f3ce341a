package repository

import (
	"context"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FiltroGastos struct {
	FarmaciaID  *uuid.UUID
	Estado      string
	FechaInicio *time.Time
	FechaFin    *time.Time
}

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	List(ctx context.Context, filtro FiltroGastos) ([]model.Gasto, error)
	Update(ctx context.Context, g *model.Gasto) error
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).Preload("Farmacia").First(&g, id).Error
	return &g, err
}

func (r *gastoRepo) List(ctx context.Context, filtro FiltroGastos) ([]model.Gasto, error) {
	q := r.db.WithContext(ctx).Preload("Farmacia")
	if filtro.FarmaciaID != nil {
		q = q.Where("farmacia_id = ?", *filtro.FarmaciaID)
	}
	if filtro.Estado != "" {
		q = q.Where("estado = ?", filtro.Estado)
	}
	if filtro.FechaInicio != nil {
		q = q.Where("fecha >= ?", *filtro.FechaInicio)
	}
	if filtro.FechaFin != nil {
		q = q.Where("fecha <= ?", *filtro.FechaFin)
	}
	var gastos []model.Gasto
	err := q.Order("fecha DESC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) Update(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}
