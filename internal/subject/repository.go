package subject

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, subject *Subject) (*Subject, error)
	GetAll(ctx context.Context, offset, limit int) ([]Subject, error)
	GetByID(ctx context.Context, id int) (*Subject, error)
	Update(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, subject *Subject) (*Subject, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(subject).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "subjects", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *repository) GetAll(ctx context.Context, offset, limit int) ([]Subject, error) {
	start := time.Now()
	var subjects []Subject
	err := r.db.NewSelect().
		Model(&subjects).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "subjects", time.Since(start), err)

	return subjects, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subject, error) {
	start := time.Now()
	subject := new(Subject)
	err := r.db.NewSelect().Model(subject).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "subjects", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (r *repository) Update(ctx context.Context, subject *Subject) error {
	start := time.Now()
	result, err := r.db.NewUpdate().Model(subject).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "subjects", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	subject := &Subject{ID: id}
	result, err := r.db.NewDelete().Model(subject).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "subjects", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}
