package members

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Ranks is the rank registry store. Ranks are referenced, never owned,
// by accounts: deleting a rank nulls the reference on every account that
// carries it and never touches the accounts themselves.
type Ranks interface {
	Create(ctx context.Context, rank *Rank) (*Rank, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Rank, error)
	List(ctx context.Context) ([]*Rank, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ranks struct {
	db *bun.DB
}

var _ Ranks = (*ranks)(nil)

// NewRanksRepository returns the bun-backed Ranks store.
func NewRanksRepository(db *bun.DB) Ranks {
	return &ranks{db: db}
}

func (r *ranks) Create(ctx context.Context, rank *Rank) (*Rank, error) {
	if rank.ID == uuid.Nil {
		rank.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(rank).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateRank
		}
		return nil, err
	}

	return rank, nil
}

func (r *ranks) GetByID(ctx context.Context, id uuid.UUID) (*Rank, error) {
	record := &Rank{}
	err := r.db.NewSelect().
		Model(record).
		Where("rnk.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *ranks) List(ctx context.Context) ([]*Rank, error) {
	records := []*Rank{}

	err := r.db.NewSelect().
		Model(&records).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes a rank and nulls the reference on every account that
// carried it, in one transaction. Explicit null-out instead of a
// SET NULL foreign key: sqlite only honors those behind a per-connection
// pragma, and the behavior must hold on every backend.
func (r *ranks) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw(`UPDATE users SET rank_id = NULL WHERE rank_id = ?;`, id).Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewRaw(`DELETE FROM ranks WHERE id = ?;`, id).Exec(ctx)
		if err != nil {
			return err
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}

		return nil
	})
}
