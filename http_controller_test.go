package members_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	members "github.com/clubware/go-members"
)

type envelope struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(users *MockUsers, ranks *MockRanks) *fiber.App {
	tokens := newTestTokenService()
	repo := stubRepoManager{users: users, ranks: ranks}
	accounts := members.NewAccountService(repo, tokens)
	verifier := members.NewCredentialVerifier(users)

	app := fiber.New()
	members.NewController(accounts, verifier, tokens, users).RegisterRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	assert.Equal(t, res.StatusCode, env.Status)

	return res, env
}

func accessTokenFor(t *testing.T, user *members.User) string {
	t.Helper()
	pair, err := newTestTokenService().IssueTokenPair(user)
	require.NoError(t, err)
	return pair.Access
}

func TestController_Register(t *testing.T) {
	t.Run("registers a member", func(t *testing.T) {
		users := &MockUsers{}
		users.On("Create", mock.Anything, mock.AnythingOfType("*members.User")).
			Return(testUser(members.RoleMember), nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/register", "", fiber.Map{
			"email":    "alice@example.com",
			"username": "alice",
			"password": "secret123",
		})

		assert.Equal(t, fiber.StatusCreated, res.StatusCode)
		assert.Equal(t, "User registered successfully", env.Message)

		var data struct {
			User   members.UserRecord `json:"user"`
			Tokens members.TokenPair  `json:"tokens"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))

		assert.Equal(t, "member", data.User.Role)
		assert.False(t, data.User.IsApproved)
		assert.NotEmpty(t, data.Tokens.Access)
		assert.NotEmpty(t, data.Tokens.Refresh)

		// the stored hash never crosses the wire
		assert.NotContains(t, string(env.Data), "password")
	})

	t.Run("duplicate identity", func(t *testing.T) {
		users := &MockUsers{}
		users.On("Create", mock.Anything, mock.Anything).Return(nil, members.ErrDuplicateIdentity)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/register", "", fiber.Map{
			"email":    "alice@example.com",
			"username": "alice",
			"password": "secret123",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Email or username already registered", env.Message)
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		users := &MockUsers{}
		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/register", "", fiber.Map{
			"email":    "not-an-email",
			"username": "alice",
			"password": "short",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Validation error occurred", env.Message)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestController_Login(t *testing.T) {
	hash, err := members.HashPassword("secret123")
	require.NoError(t, err)

	account := testUser(members.RoleMember)
	account.PasswordHash = hash

	t.Run("valid credentials", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByUsername", mock.Anything, "bob").Return(account, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/login", "", fiber.Map{
			"username": "bob",
			"password": "secret123",
		})

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "Login successful", env.Message)

		var data struct {
			Tokens members.TokenPair `json:"tokens"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))

		claims, err := newTestTokenService().Validate(data.Tokens.Access, members.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, account.ID.String(), claims.UserID())
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByUsername", mock.Anything, "bob").Return(account, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/login", "", fiber.Map{
			"username": "bob",
			"password": "wrong-password",
		})

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Invalid credentials", env.Message)
	})

	t.Run("unknown username reads the same as a wrong password", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByUsername", mock.Anything, "nobody").Return(nil, members.ErrNotFound)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/login", "", fiber.Map{
			"username": "nobody",
			"password": "secret123",
		})

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Invalid credentials", env.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/login", "", fiber.Map{
			"username": "bob",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Validation error occurred", env.Message)
	})
}

func TestController_RefreshToken(t *testing.T) {
	user := testUser(members.RoleMember)
	pair, err := newTestTokenService().IssueTokenPair(user)
	require.NoError(t, err)

	t.Run("mints a new access token", func(t *testing.T) {
		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/token/refresh", "", fiber.Map{
			"refresh": pair.Refresh,
		})

		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		var data struct {
			Access string `json:"access"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))

		claims, err := newTestTokenService().Validate(data.Access, members.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID())
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/token/refresh", "", fiber.Map{
			"refresh": pair.Access,
		})

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Session is expired or invalid", env.Message)
	})
}

func TestController_AuthMiddleware(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/profile-detail", "", nil)

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Session is expired or invalid", env.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodGet, "/profile-detail", "not.a.token", nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		user := testUser(members.RoleMember)
		stale := members.NewTokenService(testSigningKey, -time.Minute, time.Hour, "test-issuer", nil)
		pair, err := stale.IssueTokenPair(user)
		require.NoError(t, err)

		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/profile-detail", pair.Access, nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Session is expired or invalid", env.Message)
	})

	t.Run("token bound to a deleted account", func(t *testing.T) {
		user := testUser(members.RoleMember)

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, user.ID).Return(nil, members.ErrNotFound)

		app := newTestApp(users, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodGet, "/profile-detail", accessTokenFor(t, user), nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("token bound to a deactivated account", func(t *testing.T) {
		user := testUser(members.RoleMember)
		user.IsActive = false

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		app := newTestApp(users, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodGet, "/profile-detail", accessTokenFor(t, user), nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("refresh token cannot be used as a bearer credential", func(t *testing.T) {
		user := testUser(members.RoleMember)
		pair, err := newTestTokenService().IssueTokenPair(user)
		require.NoError(t, err)

		app := newTestApp(&MockUsers{}, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodGet, "/profile-detail", pair.Refresh, nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}

func TestController_Profile(t *testing.T) {
	t.Run("fetches the caller's own account", func(t *testing.T) {
		user := testUser(members.RoleMember)
		user.FullName = "Bob Example"

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/profile-detail", accessTokenFor(t, user), nil)

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "Profile fetched successfully", env.Message)

		var record members.UserRecord
		require.NoError(t, json.Unmarshal(env.Data, &record))
		assert.Equal(t, user.Username, record.Username)
		assert.Equal(t, "Bob Example", record.FullName)
	})

	t.Run("updates the caller's own profile", func(t *testing.T) {
		user := testUser(members.RoleMember)

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		users.On("Update", mock.Anything, user, []string{"full_name", "phone", "rank_id"}).
			Return(user, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPut, "/profile-update", accessTokenFor(t, user), fiber.Map{
			"full_name": "Robert Example",
		})

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "Profile updated successfully", env.Message)
		assert.Equal(t, "Robert Example", user.FullName)
	})

	t.Run("rejects a malformed rank id", func(t *testing.T) {
		user := testUser(members.RoleMember)

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPut, "/profile-update", accessTokenFor(t, user), fiber.Map{
			"rank_id": "not-a-uuid",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Validation error occurred", env.Message)
	})
}

func TestController_MemberListings(t *testing.T) {
	staff := testUser(members.RoleStaff)
	member := testUser(members.RoleMember)

	t.Run("member role is refused", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, member.ID).Return(member, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/all-members", accessTokenFor(t, member), nil)

		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
		assert.Equal(t, "You are not authorized to perform this action", env.Message)
		users.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("staff sees every account", func(t *testing.T) {
		listing := []*members.User{testUser(members.RoleMember), testUser(members.RoleMember)}

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
		users.On("List", mock.Anything, members.FilterAll).Return(listing, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/all-members", accessTokenFor(t, staff), nil)

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "All members fetched successfully", env.Message)

		var records []members.UserRecord
		require.NoError(t, json.Unmarshal(env.Data, &records))
		assert.Len(t, records, 2)
	})

	t.Run("approved listing filters on the approval flag", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
		users.On("List", mock.Anything, members.FilterApproved).Return([]*members.User{}, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/approved-members", accessTokenFor(t, staff), nil)

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "Approved members fetched successfully", env.Message)
		users.AssertExpectations(t)
	})

	t.Run("new listing currently mirrors the approved listing", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
		users.On("List", mock.Anything, members.FilterApproved).Return([]*members.User{}, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodGet, "/new-members", accessTokenFor(t, staff), nil)

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "New members fetched successfully", env.Message)
		users.AssertExpectations(t)
	})
}

func TestController_ApproveMember(t *testing.T) {
	staff := testUser(members.RoleStaff)

	t.Run("approves a pending member", func(t *testing.T) {
		pending := testUser(members.RoleMember)
		approved := *pending
		approved.IsApproved = true

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
		users.On("GetByID", mock.Anything, pending.ID).Return(pending, nil).Once()
		users.On("Approve", mock.Anything, pending.ID).Return(int64(1), nil).Once()
		users.On("GetByID", mock.Anything, pending.ID).Return(&approved, nil).Once()

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/approve-member", accessTokenFor(t, staff), fiber.Map{
			"user_id": pending.ID.String(),
		})

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "User profile approved successfully", env.Message)

		var record members.UserRecord
		require.NoError(t, json.Unmarshal(env.Data, &record))
		assert.True(t, record.IsApproved)
	})

	t.Run("second approval is rejected", func(t *testing.T) {
		already := testUser(members.RoleMember)
		already.IsApproved = true

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
		users.On("GetByID", mock.Anything, already.ID).Return(already, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/approve-member", accessTokenFor(t, staff), fiber.Map{
			"user_id": already.ID.String(),
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "User is already approved", env.Message)
	})

	t.Run("member role cannot approve", func(t *testing.T) {
		member := testUser(members.RoleMember)

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, member.ID).Return(member, nil)

		app := newTestApp(users, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodPost, "/approve-member", accessTokenFor(t, member), fiber.Map{
			"user_id": uuid.NewString(),
		})

		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("malformed target id", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/approve-member", accessTokenFor(t, staff), fiber.Map{
			"user_id": "42",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Validation error occurred", env.Message)
	})

	t.Run("unknown target", func(t *testing.T) {
		target := uuid.New()

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
		users.On("GetByID", mock.Anything, target).Return(nil, members.ErrNotFound)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/approve-member", accessTokenFor(t, staff), fiber.Map{
			"user_id": target.String(),
		})

		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Record not found", env.Message)
	})
}

func TestController_CreateUser(t *testing.T) {
	admin := testUser(members.RoleAdmin)
	staff := testUser(members.RoleStaff)

	t.Run("admin creates a staff account", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
		users.On("Create", mock.Anything, mock.AnythingOfType("*members.User")).
			Return(testUser(members.RoleStaff), nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/create-user", accessTokenFor(t, admin), fiber.Map{
			"email":    "carol@example.com",
			"username": "carol",
			"password": "secret123",
			"role":     "staff",
		})

		assert.Equal(t, fiber.StatusCreated, res.StatusCode)
		assert.Equal(t, "Staff created successfully", env.Message)
	})

	t.Run("member role is not assignable", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodPost, "/create-user", accessTokenFor(t, admin), fiber.Map{
			"email":    "carol@example.com",
			"username": "carol",
			"password": "secret123",
			"role":     "member",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid role", env.Message)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("staff cannot create accounts", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		app := newTestApp(users, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodPost, "/create-user", accessTokenFor(t, staff), fiber.Map{
			"email":    "carol@example.com",
			"username": "carol",
			"password": "secret123",
			"role":     "staff",
		})

		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})
}

func TestController_Ranks(t *testing.T) {
	admin := testUser(members.RoleAdmin)
	staff := testUser(members.RoleStaff)
	member := testUser(members.RoleMember)

	t.Run("any authenticated account lists ranks", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, member.ID).Return(member, nil)

		ranks := &MockRanks{}
		ranks.On("List", mock.Anything).Return([]*members.Rank{
			{ID: uuid.New(), Name: "Blue Belt"},
			{ID: uuid.New(), Name: "Black Belt"},
		}, nil)

		app := newTestApp(users, ranks)

		res, env := doRequest(t, app, fiber.MethodGet, "/ranks", accessTokenFor(t, member), nil)

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "Ranks fetched successfully", env.Message)

		var listing []members.Rank
		require.NoError(t, json.Unmarshal(env.Data, &listing))
		assert.Len(t, listing, 2)
	})

	t.Run("staff creates a rank", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		ranks := &MockRanks{}
		ranks.On("Create", mock.Anything, mock.AnythingOfType("*members.Rank")).
			Return(&members.Rank{ID: uuid.New(), Name: "Blue Belt"}, nil)

		app := newTestApp(users, ranks)

		res, env := doRequest(t, app, fiber.MethodPost, "/ranks", accessTokenFor(t, staff), fiber.Map{
			"name": "Blue Belt",
		})

		assert.Equal(t, fiber.StatusCreated, res.StatusCode)
		assert.Equal(t, "Rank created successfully", env.Message)
	})

	t.Run("member cannot create a rank", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, member.ID).Return(member, nil)

		app := newTestApp(users, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodPost, "/ranks", accessTokenFor(t, member), fiber.Map{
			"name": "Blue Belt",
		})

		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("duplicate rank name", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		ranks := &MockRanks{}
		ranks.On("Create", mock.Anything, mock.Anything).Return(nil, members.ErrDuplicateRank)

		app := newTestApp(users, ranks)

		res, env := doRequest(t, app, fiber.MethodPost, "/ranks", accessTokenFor(t, staff), fiber.Map{
			"name": "Blue Belt",
		})

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Rank already exists", env.Message)
	})

	t.Run("admin deletes a rank", func(t *testing.T) {
		id := uuid.New()

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

		ranks := &MockRanks{}
		ranks.On("Delete", mock.Anything, id).Return(nil)

		app := newTestApp(users, ranks)

		res, env := doRequest(t, app, fiber.MethodDelete, "/ranks/"+id.String(), accessTokenFor(t, admin), nil)

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "Rank deleted successfully", env.Message)
	})

	t.Run("staff cannot delete a rank", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		app := newTestApp(users, &MockRanks{})

		res, _ := doRequest(t, app, fiber.MethodDelete, "/ranks/"+uuid.NewString(), accessTokenFor(t, staff), nil)
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("deleting an unknown rank", func(t *testing.T) {
		id := uuid.New()

		users := &MockUsers{}
		users.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

		ranks := &MockRanks{}
		ranks.On("Delete", mock.Anything, id).Return(members.ErrNotFound)

		app := newTestApp(users, ranks)

		res, env := doRequest(t, app, fiber.MethodDelete, "/ranks/"+id.String(), accessTokenFor(t, admin), nil)

		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Record not found", env.Message)
	})

	t.Run("malformed rank id", func(t *testing.T) {
		users := &MockUsers{}
		users.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

		app := newTestApp(users, &MockRanks{})

		res, env := doRequest(t, app, fiber.MethodDelete, "/ranks/42", accessTokenFor(t, admin), nil)

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Validation error occurred", env.Message)
	})
}
