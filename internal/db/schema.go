package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/group"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/mark"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/person"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/subject"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"

	"github.com/uptrace/bun"
)

// Migrate creates the schema in dependency order. Deleting a group removes
// its people; deleting a person or subject removes the marks referencing it;
// deleting a person removes its account.
func Migrate(ctx context.Context, db *bun.DB) error {
	tables := []struct {
		name  string
		query *bun.CreateTableQuery
	}{
		{
			name:  "groups",
			query: db.NewCreateTable().Model((*group.Group)(nil)),
		},
		{
			name: "people",
			query: db.NewCreateTable().Model((*person.Person)(nil)).
				ForeignKey(`("group_id") REFERENCES "groups" ("id") ON DELETE CASCADE`),
		},
		{
			name:  "subjects",
			query: db.NewCreateTable().Model((*subject.Subject)(nil)),
		},
		{
			name: "marks",
			query: db.NewCreateTable().Model((*mark.Mark)(nil)).
				ForeignKey(`("student_id") REFERENCES "people" ("id") ON DELETE CASCADE`).
				ForeignKey(`("subject_id") REFERENCES "subjects" ("id") ON DELETE CASCADE`).
				ForeignKey(`("teacher_id") REFERENCES "people" ("id") ON DELETE CASCADE`),
		},
		{
			name: "users",
			query: db.NewCreateTable().Model((*user.User)(nil)).
				ForeignKey(`("person_id") REFERENCES "people" ("id") ON DELETE CASCADE`),
		},
	}

	for _, table := range tables {
		if _, err := table.query.IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	slog.Info("database migrations completed successfully")
	return nil
}
