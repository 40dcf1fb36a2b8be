package members

import (
	"context"

	"github.com/google/uuid"
)

// AccountService governs the account lifecycle: registration, admin
// account creation, profile updates, the approval workflow, and the rank
// registry. Authorization is enforced at the HTTP entry points; the
// service assumes its caller already cleared the relevant policy.
type AccountService struct {
	repo   RepositoryManager
	tokens *TokenService
	logger Logger
}

// NewAccountService builds the lifecycle manager over the given stores
// and token issuer.
func NewAccountService(repo RepositoryManager, tokens *TokenService) *AccountService {
	return &AccountService{
		repo:   repo,
		tokens: tokens,
		logger: NewLogger("members.accounts"),
	}
}

// WithLogger overrides the service logger.
func (s *AccountService) WithLogger(l Logger) *AccountService {
	if l != nil {
		s.logger = l
	}
	return s
}

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Phone    string
	FullName string
}

// Register creates a member account and issues its first token pair.
// New accounts are always role=member, active, and unapproved. There is
// no existence pre-check: the store's uniqueness constraint decides, so
// two concurrent identical registrations cannot both win.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*User, *TokenPair, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         RoleMember,
		Phone:        in.Phone,
		FullName:     in.FullName,
		IsActive:     true,
		IsApproved:   false,
	}

	created, err := s.repo.Users().Create(ctx, user)
	if err != nil {
		s.logger.Warn("registration rejected", "username", in.Username, "error", err)
		return nil, nil, err
	}

	pair, err := s.tokens.IssueTokenPair(created)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("member registered", "user_id", created.ID.String())
	return created, pair, nil
}

// AdminCreateInput carries the fields for an admin-issued account.
type AdminCreateInput struct {
	Email    string
	Username string
	Password string
	Role     Role
	Phone    string
	FullName string
}

// AdminCreate creates a staff or admin account. Staff and admin accounts
// are never subject to approval gating, so the approval flag is left
// unset. Any other role is rejected: members only ever come from
// self-registration.
func (s *AccountService) AdminCreate(ctx context.Context, in AdminCreateInput) (*User, error) {
	if !in.Role.IsAssignable() {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Phone:        in.Phone,
		FullName:     in.FullName,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  in.Role == RoleAdmin,
	}

	created, err := s.repo.Users().Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user_id", created.ID.String(), "role", string(created.Role))
	return created, nil
}

// ProfileUpdateInput is a partial update: nil fields are left untouched.
// Assigning uuid.Nil as the rank clears the reference.
type ProfileUpdateInput struct {
	FullName *string
	Phone    *string
	RankID   *uuid.UUID
}

// UpdateProfile mutates the caller's own account. Only display name,
// phone, and the rank reference are reachable through this path; email,
// role, and approval state are immutable here regardless of caller.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (*User, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}

	if in.Phone != nil {
		user.Phone = *in.Phone
	}

	if in.RankID != nil {
		if *in.RankID == uuid.Nil {
			user.RankID = nil
		} else {
			rank, err := s.repo.Ranks().GetByID(ctx, *in.RankID)
			if err != nil {
				return nil, err
			}
			user.RankID = &rank.ID
		}
	}

	return s.repo.Users().Update(ctx, user, "full_name", "phone", "rank_id")
}

// Profile fetches the caller's own account.
func (s *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.Users().GetByID(ctx, userID)
}

// Approve flips the target's approval flag. The transition is
// one-directional and not idempotent: approving an already-approved
// account is rejected, not absorbed.
func (s *AccountService) Approve(ctx context.Context, targetID uuid.UUID) (*User, error) {
	user, err := s.repo.Users().GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.IsApproved {
		return nil, ErrAlreadyApproved
	}

	n, err := s.repo.Users().Approve(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// zero rows means a concurrent approval got there first
	if n == 0 {
		return nil, ErrAlreadyApproved
	}

	s.logger.Info("member approved", "user_id", targetID.String())
	return s.repo.Users().GetByID(ctx, targetID)
}

// ListAll returns every account.
func (s *AccountService) ListAll(ctx context.Context) ([]*User, error) {
	return s.repo.Users().List(ctx, FilterAll)
}

// ListApproved returns accounts cleared for member-level access.
func (s *AccountService) ListApproved(ctx context.Context) ([]*User, error) {
	return s.repo.Users().List(ctx, FilterApproved)
}

// ListNew returns the accounts surfaced on the new-members listing.
// TODO: this filters on is_approved exactly like ListApproved does,
// matching the behavior shipped so far; confirm whether new members
// should use FilterUnapproved instead.
func (s *AccountService) ListNew(ctx context.Context) ([]*User, error) {
	return s.repo.Users().List(ctx, FilterApproved)
}

// CreateRank registers a new rank label.
func (s *AccountService) CreateRank(ctx context.Context, name string) (*Rank, error) {
	return s.repo.Ranks().Create(ctx, &Rank{Name: name})
}

// ListRanks returns every rank.
func (s *AccountService) ListRanks(ctx context.Context) ([]*Rank, error) {
	return s.repo.Ranks().List(ctx)
}

// DeleteRank removes a rank; accounts referencing it keep existing with
// the reference nulled.
func (s *AccountService) DeleteRank(ctx context.Context, id uuid.UUID) error {
	return s.repo.Ranks().Delete(ctx, id)
}
