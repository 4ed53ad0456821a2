package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/testutil"
)

func boolptr(b bool) *bool {
	return &b
}

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, func() error) {
	db := testutil.TestDB("file://../../migrations", t)

	signer, err := NewTokenSigner("test-secret", time.Hour)
	require.NoError(t, err)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blogs")
		if err != nil {
			return err
		}

		_, err = db.Exec("DELETE FROM users")
		return err
	}

	return NewUserService(db, signer), db, cleanup
}

func TestCreateUser(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		setup       func(s *UserService) error
		payload     CreateUserRequest
		expectedErr error
		wantAdult   bool
		wantName    string
	}{
		{
			name:      "valid user",
			payload:   CreateUserRequest{Username: "kennyhei", Name: "Kenny Heinonen", Password: "secret"},
			wantAdult: true,
			wantName:  "Kenny Heinonen",
		},
		{
			name:      "name defaults to username",
			payload:   CreateUserRequest{Username: "kennyhei", Password: "secret"},
			wantAdult: true,
			wantName:  "kennyhei",
		},
		{
			name:      "explicit adult false is kept",
			payload:   CreateUserRequest{Username: "kennyhei", Password: "secret", Adult: boolptr(false)},
			wantAdult: false,
			wantName:  "kennyhei",
		},
		{
			name:        "missing username",
			payload:     CreateUserRequest{Password: "secret"},
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "username missing"}, Field: "username"},
		},
		{
			name:        "short password",
			payload:     CreateUserRequest{Username: "kennyhei", Password: "ab"},
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "password must be at least 3 characters long"}, Field: "password"},
		},
		{
			name: "duplicate username",
			setup: func(s *UserService) error {
				_, err := s.CreateUser(context.Background(), CreateUserRequest{Username: "kennyhei", Password: "secret"})
				return err
			},
			payload:     CreateUserRequest{Username: "kennyhei", Password: "ab"},
			expectedErr: ErrDuplicateUsername,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})

			if tc.setup != nil {
				require.NoError(t, tc.setup(s))
			}

			var before int
			require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&before))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			u, err := s.CreateUser(ctx, tc.payload)

			var after int
			require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&after))

			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, u)
				assert.Equal(t, before, after)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, u.ID)
			assert.Equal(t, tc.wantAdult, u.Adult)
			assert.Equal(t, tc.wantName, u.Name)
			assert.Empty(t, u.Blogs)
			assert.Equal(t, before+1, after)
		})
	}
}

func TestDuplicateUsernameConstraint(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	ctx := context.Background()

	u := User{Username: "kennyhei", Name: "kennyhei", Adult: true}
	require.NoError(t, u.Password.set("secret"))
	require.NoError(t, s.m.insertUser(ctx, &u))

	dup := User{Username: "kennyhei", Name: "kennyhei", Adult: true}
	require.NoError(t, dup.Password.set("secret"))
	assert.ErrorIs(t, s.m.insertUser(ctx, &dup), ErrDuplicateUsername)
}

func TestLoginUser(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	ctx := context.Background()

	created, err := s.CreateUser(ctx, CreateUserRequest{Username: "kennyhei", Password: "secret"})
	require.NoError(t, err)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{name: "valid credentials", username: "kennyhei", password: "secret"},
		{name: "wrong password", username: "kennyhei", password: "Secret", expectedErr: ErrInvalidCredentials},
		{name: "unknown user", username: "mluukkai", password: "secret", expectedErr: ErrInvalidCredentials},
		{
			name:        "missing password",
			username:    "kennyhei",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "password missing"}, Field: "password"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, u, err := s.LoginUser(ctx, tc.username, tc.password)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, created.ID, u.ID)

			claims, err := s.Authenticate(token)
			require.NoError(t, err)
			assert.Equal(t, created.ID, claims.UserID)
			assert.Equal(t, "kennyhei", claims.Username)
		})
	}
}

func TestGetUsers(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	ctx := context.Background()

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	kenny, err := s.CreateUser(ctx, CreateUserRequest{Username: "kennyhei", Password: "secret"})
	require.NoError(t, err)
	matti, err := s.CreateUser(ctx, CreateUserRequest{Username: "mluukkai", Password: "secret"})
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO blogs (title, author, url, likes, user_id) VALUES ($1, $2, $3, $4, $5)", "First", "Kenny", "http://example.com/1", 3, kenny.ID)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO blogs (title, author, likes, user_id) VALUES ($1, $2, $3, $4)", "Second", "Kenny", 5, kenny.ID)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO blogs (title, author) VALUES ($1, $2)", "Orphan", "Nobody")
	require.NoError(t, err)

	users, err = s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, kenny.ID, users[0].ID)
	require.Len(t, users[0].Blogs, 2)
	assert.Equal(t, "First", users[0].Blogs[0].Title)
	require.NotNil(t, users[0].Blogs[0].URL)
	assert.Equal(t, "http://example.com/1", *users[0].Blogs[0].URL)
	assert.Equal(t, "Second", users[0].Blogs[1].Title)
	assert.Nil(t, users[0].Blogs[1].URL)
	assert.Equal(t, 5, users[0].Blogs[1].Likes)

	assert.Equal(t, matti.ID, users[1].ID)
	assert.NotNil(t, users[1].Blogs)
	assert.Empty(t, users[1].Blogs)
}
