package repository

import (
	"context"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FarmaciaRepository interface {
	Create(ctx context.Context, f *model.Farmacia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Farmacia, error)
	FindByCodigoLegado(ctx context.Context, codigo string) (*model.Farmacia, error)
	List(ctx context.Context) ([]model.Farmacia, error)
	Update(ctx context.Context, f *model.Farmacia) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListCajeros(ctx context.Context, farmaciaID *uuid.UUID) ([]model.Cajero, error)
	CreateCajero(ctx context.Context, c *model.Cajero) error
}

type farmaciaRepo struct{ db *gorm.DB }

func NewFarmaciaRepository(db *gorm.DB) FarmaciaRepository { return &farmaciaRepo{db: db} }

func (r *farmaciaRepo) Create(ctx context.Context, f *model.Farmacia) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *farmaciaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Farmacia, error) {
	var f model.Farmacia
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *farmaciaRepo) FindByCodigoLegado(ctx context.Context, codigo string) (*model.Farmacia, error) {
	var f model.Farmacia
	err := r.db.WithContext(ctx).Where("codigo_legado = ?", codigo).First(&f).Error
	return &f, err
}

func (r *farmaciaRepo) List(ctx context.Context) ([]model.Farmacia, error) {
	var farmacias []model.Farmacia
	err := r.db.WithContext(ctx).Where("activa = true").Order("nombre ASC").Find(&farmacias).Error
	return farmacias, err
}

func (r *farmaciaRepo) Update(ctx context.Context, f *model.Farmacia) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *farmaciaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Farmacia{}).Where("id = ?", id).Update("activa", false).Error
}

func (r *farmaciaRepo) ListCajeros(ctx context.Context, farmaciaID *uuid.UUID) ([]model.Cajero, error) {
	q := r.db.WithContext(ctx).Where("activo = true")
	if farmaciaID != nil {
		q = q.Where("farmacia_id = ?", *farmaciaID)
	}
	var cajeros []model.Cajero
	err := q.Order("nombre ASC").Find(&cajeros).Error
	return cajeros, err
}

func (r *farmaciaRepo) CreateCajero(ctx context.Context, c *model.Cajero) error {
	return r.db.WithContext(ctx).Create(c).Error
}
