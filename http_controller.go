package members

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// Controller translates HTTP requests into service calls and formats the
// uniform JSON envelope. It owns no business rules.
type Controller struct {
	Accounts *AccountService
	Verifier *CredentialVerifier
	Tokens   *TokenService
	Store    Users
	Logger   Logger
}

// ControllerOption mutates the controller during construction.
type ControllerOption func(*Controller) *Controller

// NewController builds the HTTP controller.
func NewController(accounts *AccountService, verifier *CredentialVerifier, tokens *TokenService, store Users, opts ...ControllerOption) *Controller {
	c := &Controller{
		Accounts: accounts,
		Verifier: verifier,
		Tokens:   tokens,
		Store:    store,
		Logger:   NewLogger("members.http"),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Accounts == nil || c.Verifier == nil || c.Tokens == nil || c.Store == nil {
		panic("members: controller is missing a dependency")
	}

	return c
}

// RegisterRoutes mounts every endpoint on the app.
func (ctl *Controller) RegisterRoutes(app *fiber.App) {
	guard := func(policies ...Policy) fiber.Handler {
		return RequireUser(ctl.Tokens, ctl.Store, policies...)
	}

	app.Post("/register", ctl.Register)
	app.Post("/login", ctl.Login)
	app.Post("/token/refresh", ctl.RefreshToken)

	app.Post("/create-user", guard(IsAdmin), ctl.CreateUser)

	app.Get("/profile-detail", guard(IsAuthenticated), ctl.ProfileDetail)
	app.Put("/profile-update", guard(IsAuthenticated), ctl.ProfileUpdate)

	app.Get("/all-members", guard(IsAdminOrStaff), ctl.AllMembers)
	app.Get("/approved-members", guard(IsAdminOrStaff), ctl.ApprovedMembers)
	app.Get("/new-members", guard(IsAdminOrStaff), ctl.NewMembers)
	app.Post("/approve-member", guard(IsAdminOrStaff), ctl.ApproveMember)

	app.Get("/ranks", guard(IsAuthenticated), ctl.ListRanks)
	app.Post("/ranks", guard(IsAdminOrStaff), ctl.CreateRank)
	app.Delete("/ranks/:id", guard(IsAdmin), ctl.DeleteRank)
}

// UserRecord is the account representation sent to clients. Explicit
// struct, explicit fields: the password hash can never leak through it.
type UserRecord struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	FullName   string    `json:"full_name,omitempty"`
	Rank       *Rank     `json:"rank,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// NewUserRecord maps a stored account to its transfer form.
func NewUserRecord(u *User) UserRecord {
	return UserRecord{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Role:       string(u.Role),
		Phone:      u.Phone,
		FullName:   u.FullName,
		Rank:       u.Rank,
		IsActive:   u.IsActive,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
	}
}

// NewUserRecords maps a listing.
func NewUserRecords(users []*User) []UserRecord {
	records := make([]UserRecord, 0, len(users))
	for _, u := range users {
		records = append(records, NewUserRecord(u))
	}
	return records
}

// validPhoneNumber accepts empty values and otherwise requires a
// parseable, valid phone number.
func validPhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}

	return nil
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Phone, validation.By(validPhoneNumber)),
		validation.Field(&r.FullName, validation.Length(0, 200)),
	)
}

// Register handles POST /register.
func (ctl *Controller) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		ctl.Logger.Error("register parse payload", "error", err)
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	user, tokens, err := ctl.Accounts.Register(c.Context(), RegisterInput{
		Email:    payload.Email,
		Username: payload.Username,
		Password: payload.Password,
		Phone:    payload.Phone,
		FullName: payload.FullName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":   NewUserRecord(user),
		"tokens": tokens,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login handles POST /login.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := ctl.Verifier.Authenticate(c.Context(), payload.Username, payload.Password)
	if err != nil {
		return respondError(c, err)
	}

	tokens, err := ctl.Tokens.IssueTokenPair(user)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":   NewUserRecord(user),
		"tokens": tokens,
	})
}

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Validate will run validation rules
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required),
	)
}

// RefreshToken handles POST /token/refresh.
func (ctl *Controller) RefreshToken(c *fiber.Ctx) error {
	payload := new(RefreshRequest)

	if err := c.BodyParser(payload); err != nil {
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	access, err := ctl.Tokens.RefreshAccess(payload.Refresh)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Token refreshed successfully", fiber.Map{
		"access": access,
	})
}

// CreateUserRequest is the admin-issued account payload.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
}

// Validate will run validation rules
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Role, validation.Required),
		validation.Field(&r.Phone, validation.By(validPhoneNumber)),
	)
}

// CreateUser handles POST /create-user.
func (ctl *Controller) CreateUser(c *fiber.Ctx) error {
	payload := new(CreateUserRequest)

	if err := c.BodyParser(payload); err != nil {
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := ctl.Accounts.AdminCreate(c.Context(), AdminCreateInput{
		Email:    payload.Email,
		Username: payload.Username,
		Password: payload.Password,
		Role:     Role(payload.Role),
		Phone:    payload.Phone,
		FullName: payload.FullName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusCreated, roleTitle(user.Role)+" created successfully", NewUserRecord(user))
}

func roleTitle(r Role) string {
	s := string(r)
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// ProfileDetail handles GET /profile-detail.
func (ctl *Controller) ProfileDetail(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return respondError(c, ErrUnauthorized)
	}

	return respond(c, fiber.StatusOK, "Profile fetched successfully", NewUserRecord(user))
}

// ProfileUpdateRequest is a partial update; absent fields stay as they
// are, an empty rank_id clears the rank reference.
type ProfileUpdateRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	RankID   *string `json:"rank_id"`
}

// Validate will run validation rules
func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(0, 200)),
		validation.Field(&r.Phone, validation.By(func(value any) error {
			if r.Phone == nil {
				return nil
			}
			return validPhoneNumber(*r.Phone)
		})),
		validation.Field(&r.RankID, validation.By(func(value any) error {
			if r.RankID == nil || *r.RankID == "" {
				return nil
			}
			if _, err := uuid.Parse(*r.RankID); err != nil {
				return errors.New("must be a valid UUID")
			}
			return nil
		})),
	)
}

// ProfileUpdate handles PUT /profile-update. Email, role, and approval
// state are not reachable through this path.
func (ctl *Controller) ProfileUpdate(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return respondError(c, ErrUnauthorized)
	}

	payload := new(ProfileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	in := ProfileUpdateInput{
		FullName: payload.FullName,
		Phone:    payload.Phone,
	}

	if payload.RankID != nil {
		rankID := uuid.Nil
		if *payload.RankID != "" {
			rankID = uuid.MustParse(*payload.RankID)
		}
		in.RankID = &rankID
	}

	updated, err := ctl.Accounts.UpdateProfile(c.Context(), user.ID, in)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Profile updated successfully", NewUserRecord(updated))
}

// AllMembers handles GET /all-members.
func (ctl *Controller) AllMembers(c *fiber.Ctx) error {
	users, err := ctl.Accounts.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "All members fetched successfully", NewUserRecords(users))
}

// ApprovedMembers handles GET /approved-members.
func (ctl *Controller) ApprovedMembers(c *fiber.Ctx) error {
	users, err := ctl.Accounts.ListApproved(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Approved members fetched successfully", NewUserRecords(users))
}

// NewMembers handles GET /new-members.
func (ctl *Controller) NewMembers(c *fiber.Ctx) error {
	users, err := ctl.Accounts.ListNew(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "New members fetched successfully", NewUserRecords(users))
}

// ApproveMemberRequest names the approval target.
type ApproveMemberRequest struct {
	UserID string `json:"user_id"`
}

// Validate will run validation rules
func (r ApproveMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
	)
}

// ApproveMember handles POST /approve-member.
func (ctl *Controller) ApproveMember(c *fiber.Ctx) error {
	payload := new(ApproveMemberRequest)

	if err := c.BodyParser(payload); err != nil {
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := ctl.Accounts.Approve(c.Context(), uuid.MustParse(payload.UserID))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "User profile approved successfully", NewUserRecord(user))
}

// CreateRankRequest names the new rank.
type CreateRankRequest struct {
	Name string `json:"name"`
}

// Validate will run validation rules
func (r CreateRankRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
	)
}

// CreateRank handles POST /ranks.
func (ctl *Controller) CreateRank(c *fiber.Ctx) error {
	payload := new(CreateRankRequest)

	if err := c.BodyParser(payload); err != nil {
		return respondParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	rank, err := ctl.Accounts.CreateRank(c.Context(), payload.Name)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Rank created successfully", rank)
}

// ListRanks handles GET /ranks.
func (ctl *Controller) ListRanks(c *fiber.Ctx) error {
	ranks, err := ctl.Accounts.ListRanks(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Ranks fetched successfully", ranks)
}

// DeleteRank handles DELETE /ranks/:id.
func (ctl *Controller) DeleteRank(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "Validation error occurred", fiber.Map{
			"id": "must be a valid UUID",
		})
	}

	if err := ctl.Accounts.DeleteRank(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Rank deleted successfully", nil)
}
