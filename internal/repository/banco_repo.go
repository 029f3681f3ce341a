package repository

import (
	"context"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BancoRepository interface {
	Create(ctx context.Context, b *model.Banco) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Banco, error)
	List(ctx context.Context) ([]model.Banco, error)
	Update(ctx context.Context, b *model.Banco) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// RegistrarMovimiento persists the ledger entry and the new balance in one
	// transaction, re-reading the row FOR UPDATE so two concurrent egresos
	// cannot both pass the disponible check.
	RegistrarMovimiento(ctx context.Context, bancoID uuid.UUID, mov *model.MovimientoBanco, aplicar func(disponible *model.Banco) error) error
	ListMovimientos(ctx context.Context, bancoID, farmaciaID *uuid.UUID) ([]model.MovimientoBanco, error)
}

type bancoRepo struct{ db *gorm.DB }

func NewBancoRepository(db *gorm.DB) BancoRepository { return &bancoRepo{db: db} }

func (r *bancoRepo) Create(ctx context.Context, b *model.Banco) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bancoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Banco, error) {
	var b model.Banco
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *bancoRepo) List(ctx context.Context) ([]model.Banco, error) {
	var bancos []model.Banco
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&bancos).Error
	return bancos, err
}

func (r *bancoRepo) Update(ctx context.Context, b *model.Banco) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bancoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Banco{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *bancoRepo) RegistrarMovimiento(ctx context.Context, bancoID uuid.UUID, mov *model.MovimientoBanco, aplicar func(b *model.Banco) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var banco model.Banco
		if err := tx.Clauses(forUpdate()).First(&banco, bancoID).Error; err != nil {
			return err
		}
		if err := aplicar(&banco); err != nil {
			return err
		}
		if err := tx.Create(mov).Error; err != nil {
			return err
		}
		return tx.Model(&model.Banco{}).Where("id = ?", banco.ID).
			Update("disponible", banco.Disponible).Error
	})
}

func (r *bancoRepo) ListMovimientos(ctx context.Context, bancoID, farmaciaID *uuid.UUID) ([]model.MovimientoBanco, error) {
	q := r.db.WithContext(ctx)
	if bancoID != nil {
		q = q.Where("banco_id = ?", *bancoID)
	}
	if farmaciaID != nil {
		q = q.Where("farmacia_id = ?", *farmaciaID)
	}
	var movs []model.MovimientoBanco
	err := q.Order("fecha ASC, created_at ASC").Find(&movs).Error
	return movs, err
}
