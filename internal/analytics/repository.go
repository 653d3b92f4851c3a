package analytics

import (
	"context"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/group"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/mark"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/person"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/subject"

	"github.com/uptrace/bun"
)

// Repository fetches the mark set for a date window plus the full entity
// lists. The zero-default dimensions need every person/group/subject row,
// marks or not, so the grouping itself happens in the service.
type Repository interface {
	MarksBetween(ctx context.Context, from, toExclusive time.Time) ([]mark.Mark, error)
	People(ctx context.Context) ([]person.Person, error)
	Groups(ctx context.Context) ([]group.Group, error)
	Subjects(ctx context.Context) ([]subject.Subject, error)
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

func (r *repository) MarksBetween(ctx context.Context, from, toExclusive time.Time) ([]mark.Mark, error) {
	start := time.Now()
	var marks []mark.Mark
	err := r.db.NewSelect().
		Model(&marks).
		Where("created_at >= ?", from).
		Where("created_at < ?", toExclusive).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "marks", time.Since(start), err)

	return marks, err
}

func (r *repository) People(ctx context.Context) ([]person.Person, error) {
	start := time.Now()
	var people []person.Person
	err := r.db.NewSelect().Model(&people).Order("id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "people", time.Since(start), err)

	return people, err
}

func (r *repository) Groups(ctx context.Context) ([]group.Group, error) {
	start := time.Now()
	var groups []group.Group
	err := r.db.NewSelect().Model(&groups).Order("id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "groups", time.Since(start), err)

	return groups, err
}

func (r *repository) Subjects(ctx context.Context) ([]subject.Subject, error) {
	start := time.Now()
	var subjects []subject.Subject
	err := r.db.NewSelect().Model(&subjects).Order("id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "subjects", time.Since(start), err)

	return subjects, err
}
