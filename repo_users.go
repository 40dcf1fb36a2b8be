package members

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApprovalFilter selects accounts by their approval flag in listings.
type ApprovalFilter int

const (
	// FilterAll returns every account.
	FilterAll ApprovalFilter = iota
	// FilterApproved returns accounts with is_approved set.
	FilterApproved
	// FilterUnapproved returns accounts still awaiting approval.
	FilterUnapproved
)

// Users is the account store. Uniqueness of email and username is
// enforced by the store itself; Create translates a constraint conflict
// into ErrDuplicateIdentity so a concurrent duplicate registration loses
// the race cleanly instead of surfacing a driver error.
type Users interface {
	Create(ctx context.Context, user *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User, columns ...string) (*User, error)
	Approve(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, filter ApprovalFilter) ([]*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns the bun-backed Users store.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (a *users) Create(ctx context.Context, user *User) (*User, error) {
	return a.CreateTx(ctx, a.db, user)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	user.EnsureDefaults()

	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	return user, nil
}

func (a *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.getOne(ctx, "usr.id = ?", id)
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	// exact match, no normalization
	return a.getOne(ctx, "usr.username = ?", username)
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.getOne(ctx, "usr.email = ?", email)
}

func (a *users) getOne(ctx context.Context, where string, arg any) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Rank").
		Where(where, arg).
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

func (a *users) Update(ctx context.Context, user *User, columns ...string) (*User, error) {
	user.UpdatedAt = time.Now()

	q := a.db.NewUpdate().Model(user).WherePK()
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return a.GetByID(ctx, user.ID)
}

// Approve flips is_approved in a single guarded statement. Zero rows
// affected means the account was already approved (or raced another
// approval); the caller decides how to report that.
func (a *users) Approve(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := a.db.NewRaw(`
		UPDATE users SET
			is_approved = TRUE,
			updated_at = ?
		WHERE id = ? AND is_approved = FALSE;
	`, time.Now(), id).Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (a *users) List(ctx context.Context, filter ApprovalFilter) ([]*User, error) {
	records := []*User{}

	q := a.db.NewSelect().
		Model(&records).
		Relation("Rank").
		Order("created_at ASC")

	switch filter {
	case FilterApproved:
		q = q.Where("usr.is_approved = ?", true)
	case FilterUnapproved:
		q = q.Where("usr.is_approved = ?", false)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}
