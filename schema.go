package members

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema ensures the tables the package owns exist. Uniqueness on
// users.email, users.username, and ranks.name comes from the model tags,
// so the store enforces identity uniqueness atomically at insert time.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Rank)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		ForeignKey(`("rank_id") REFERENCES "ranks" ("id") ON DELETE SET NULL`).
		Exec(ctx); err != nil {
		return err
	}

	return nil
}
