package mark

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, mark *Mark) (*Mark, error)
	GetAll(ctx context.Context, offset, limit int) ([]Mark, error)
	GetByID(ctx context.Context, id int) (*Mark, error)
	Update(ctx context.Context, mark *Mark) error
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

func (r *repository) Create(ctx context.Context, mark *Mark) (*Mark, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(mark).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "marks", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return mark, nil
}

func (r *repository) GetAll(ctx context.Context, offset, limit int) ([]Mark, error) {
	start := time.Now()
	var marks []Mark
	err := r.db.NewSelect().
		Model(&marks).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "marks", time.Since(start), err)

	return marks, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Mark, error) {
	start := time.Now()
	mark := new(Mark)
	err := r.db.NewSelect().Model(mark).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "marks", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMarkNotFound
		}
		return nil, err
	}
	return mark, nil
}

func (r *repository) Update(ctx context.Context, mark *Mark) error {
	start := time.Now()
	result, err := r.db.NewUpdate().Model(mark).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "marks", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMarkNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	mark := &Mark{ID: id}
	result, err := r.db.NewDelete().Model(mark).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "marks", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMarkNotFound
	}
	return nil
}
