package person

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, person *Person) (*Person, error)
	GetAll(ctx context.Context, offset, limit int) ([]Person, error)
	GetByID(ctx context.Context, id int) (*Person, error)
	Update(ctx context.Context, person *Person) error
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

func (r *repository) Create(ctx context.Context, person *Person) (*Person, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(person).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "people", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return person, nil
}

func (r *repository) GetAll(ctx context.Context, offset, limit int) ([]Person, error) {
	start := time.Now()
	var people []Person
	err := r.db.NewSelect().
		Model(&people).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "people", time.Since(start), err)

	return people, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Person, error) {
	start := time.Now()
	person := new(Person)
	err := r.db.NewSelect().Model(person).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "people", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

func (r *repository) Update(ctx context.Context, person *Person) error {
	start := time.Now()
	result, err := r.db.NewUpdate().Model(person).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "people", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	person := &Person{ID: id}
	result, err := r.db.NewDelete().Model(person).WherePK().Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "people", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}
