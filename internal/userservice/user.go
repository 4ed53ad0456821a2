package userservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func NewUserService(db *sql.DB, signer *TokenSigner) *UserService {
	return &UserService{
		m:      newUserModel(db),
		signer: signer,
	}
}

// CreateUser creates a new user account. Adult defaults to true only when it is not supplied,
// and Name defaults to the username.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)

	v := common.NewValidator()
	validateUsername(v, username)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	// The unique constraint is what guarantees uniqueness; this lookup only keeps the duplicate
	// error ahead of the password checks.
	exists, err := s.m.usernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     strings.TrimSpace(req.Name),
		Adult:    true,
		Blogs:    []UserBlog{},
	}
	if u.Name == "" {
		u.Name = username
	}
	if req.Adult != nil {
		u.Adult = *req.Adult
	}

	err = u.Password.set(req.Password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the password of username and returns a signed credential for it.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (string, *User, error) {
	v := common.NewValidator()
	validateLogin(v, username, password)
	if !v.Valid() {
		return "", nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return "", nil, ErrInvalidCredentials
		default:
			return "", nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GetUsers returns all users with their blogs.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}
