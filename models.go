package members

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model. Email and username are unique identity
// fields; both are exact-match, no normalization is applied.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	Username     string     `bun:"username,notnull,unique" json:"username"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Role         Role       `bun:"role,notnull" json:"role"`
	Phone        string     `bun:"phone" json:"phone,omitempty"`
	FullName     string     `bun:"full_name" json:"full_name,omitempty"`
	RankID       *uuid.UUID `bun:"rank_id,type:uuid,nullzero" json:"rank_id,omitempty"`
	Rank         *Rank      `bun:"rel:belongs-to,join:rank_id=id" json:"rank,omitempty"`
	IsActive     bool       `bun:"is_active,notnull" json:"is_active"`
	IsStaff      bool       `bun:"is_staff,notnull" json:"is_staff"`
	IsSuperuser  bool       `bun:"is_superuser,notnull" json:"is_superuser"`
	IsApproved   bool       `bun:"is_approved,notnull" json:"is_approved"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureDefaults fills the zero-value fields every stored account must have.
func (u *User) EnsureDefaults() {
	if u == nil {
		return
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
}

// Rank is an auxiliary classification label attachable to an account.
// It carries no behavior and is independent of Role.
type Rank struct {
	bun.BaseModel `bun:"table:ranks,alias:rnk"`

	ID   uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name string    `bun:"name,notnull,unique" json:"name"`
}
