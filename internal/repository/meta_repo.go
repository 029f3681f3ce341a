package repository

import (
	"context"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetaRepository interface {
	Create(ctx context.Context, m *model.Meta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Meta, error)
	List(ctx context.Context, farmaciaID *uuid.UUID) ([]model.Meta, error)
	Update(ctx context.Context, m *model.Meta) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type metaRepo struct{ db *gorm.DB }

func NewMetaRepository(db *gorm.DB) MetaRepository { return &metaRepo{db: db} }

func (r *metaRepo) Create(ctx context.Context, m *model.Meta) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Meta, error) {
	var m model.Meta
	err := r.db.WithContext(ctx).Preload("Farmacia").First(&m, id).Error
	return &m, err
}

func (r *metaRepo) List(ctx context.Context, farmaciaID *uuid.UUID) ([]model.Meta, error) {
	q := r.db.WithContext(ctx).Preload("Farmacia")
	if farmaciaID != nil {
		q = q.Where("farmacia_id = ?", *farmaciaID)
	}
	var metas []model.Meta
	err := q.Order("fecha_inicio DESC").Find(&metas).Error
	return metas, err
}

func (r *metaRepo) Update(ctx context.Context, m *model.Meta) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *metaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Meta{}, id).Error
}
