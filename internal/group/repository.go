package group

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, group *Group) (*Group, error)
	GetAll(ctx context.Context, offset, limit int) ([]Group, error)
	GetByID(ctx context.Context, id int) (*Group, error)
	Update(ctx context.Context, group *Group) error
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

func (r *repository) Create(ctx context.Context, group *Group) (*Group, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(group).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "groups", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *repository) GetAll(ctx context.Context, offset, limit int) ([]Group, error) {
	start := time.Now()
	var groups []Group
	err := r.db.NewSelect().
		Model(&groups).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "groups", time.Since(start), err)

	return groups, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Group, error) {
	start := time.Now()
	group := new(Group)
	err := r.db.NewSelect().Model(group).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "groups", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (r *repository) Update(ctx context.Context, group *Group) error {
	start := time.Now()
	result, err := r.db.NewUpdate().Model(group).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "groups", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	group := &Group{ID: id}
	result, err := r.db.NewDelete().Model(group).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "groups", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}
