package userservice

import (
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTokenTTL is used when the configuration does not set one.
	DefaultTokenTTL time.Duration = 24 * time.Hour

	bcryptCost = 10
)

type UserService struct {
	m      *DBModel
	signer *TokenSigner
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Password  Password   `json:"-"`
	Adult     bool       `json:"adult"`
	Blogs     []UserBlog `json:"blogs"`
	CreatedAt time.Time  `json:"-"`
}

// UserBlog is the part of a blog inlined into its owner.
type UserBlog struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	URL    *string `json:"url"`
	Likes  int     `json:"likes"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

// CreateUserRequest is the input of CreateUser. Adult is a pointer so that an explicit false survives.
type CreateUserRequest struct {
	Username string
	Name     string
	Password string
	Adult    *bool
}

// Claims is the payload of a signed credential.
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}
