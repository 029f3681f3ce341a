package repository

import (
	"context"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FiltroCuadres narrows a cuadre listing. Zero values leave that side open,
// matching the dashboard's optional query params.
type FiltroCuadres struct {
	FarmaciaID  *uuid.UUID
	FechaInicio *time.Time
	FechaFin    *time.Time
	Estado      string
}

type CuadreRepository interface {
	Create(ctx context.Context, c *model.Cuadre) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cuadre, error)
	List(ctx context.Context, filtro FiltroCuadres) ([]model.Cuadre, error)
	Update(ctx context.Context, c *model.Cuadre) error
}

type cuadreRepo struct{ db *gorm.DB }

func NewCuadreRepository(db *gorm.DB) CuadreRepository { return &cuadreRepo{db: db} }

func (r *cuadreRepo) Create(ctx context.Context, c *model.Cuadre) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuadreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cuadre, error) {
	var c model.Cuadre
	err := r.db.WithContext(ctx).Preload("Farmacia").Preload("Cajero").First(&c, id).Error
	return &c, err
}

func (r *cuadreRepo) List(ctx context.Context, filtro FiltroCuadres) ([]model.Cuadre, error) {
	q := r.db.WithContext(ctx).Preload("Farmacia").Preload("Cajero")
	if filtro.FarmaciaID != nil {
		q = q.Where("farmacia_id = ?", *filtro.FarmaciaID)
	}
	// Ambos límites inclusivos (ventana [fechaInicio, fechaFin])
	if filtro.FechaInicio != nil {
		q = q.Where("fecha >= ?", *filtro.FechaInicio)
	}
	if filtro.FechaFin != nil {
		q = q.Where("fecha <= ?", *filtro.FechaFin)
	}
	if filtro.Estado != "" {
		q = q.Where("estado = ?", filtro.Estado)
	}
	var cuadres []model.Cuadre
	err := q.Order("fecha DESC, created_at DESC").Find(&cuadres).Error
	return cuadres, err
}

func (r *cuadreRepo) Update(ctx context.Context, c *model.Cuadre) error {
	return r.db.WithContext(ctx).Save(c).Error
}
