package repository

import (
	"context"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReporteRepository interface {
	Create(ctx context.Context, r *model.Reporte) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reporte, error)
	Update(ctx context.Context, r *model.Reporte) error
	// ListPendingRetries feeds the retry cron: failed reports whose
	// next_retry_at has passed, oldest first.
	ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.Reporte, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) Create(ctx context.Context, rep *model.Reporte) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reporteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reporte, error) {
	var rep model.Reporte
	err := r.db.WithContext(ctx).First(&rep, id).Error
	return &rep, err
}

func (r *reporteRepo) Update(ctx context.Context, rep *model.Reporte) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *reporteRepo) ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.Reporte, error) {
	var reportes []model.Reporte
	err := r.db.WithContext(ctx).
		Where("estado = 'pendiente' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", before).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&reportes).Error
	return reportes, err
}

// forUpdate is shared by repositories that need a row lock inside a transaction.
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
