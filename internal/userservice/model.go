package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("username must be unique")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, password, adult)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	args := []any{
		u.Username,
		u.Name,
		u.Password.hash,
		u.Adult,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		switch {
		case common.ConstraintError(err, common.UniqueViolation, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) usernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, username).Scan(&exists)
	return exists, err
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password, adult, created_at
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &u.Adult, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsers returns every user ordered by id with the blogs they own inlined.
func (m *DBModel) getUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, name, adult, created_at
		FROM users
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	ids := []int64{}
	index := map[int]int{}

	for rows.Next() {
		u := User{Blogs: []UserBlog{}}
		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Adult, &u.CreatedAt)
		if err != nil {
			return nil, err
		}

		index[u.ID] = len(users)
		ids = append(ids, int64(u.ID))
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return users, nil
	}

	err = m.populateBlogs(ctx, ids, func(userID int, b UserBlog) {
		i := index[userID]
		users[i].Blogs = append(users[i].Blogs, b)
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (m *DBModel) populateBlogs(ctx context.Context, userIDs []int64, add func(userID int, b UserBlog)) error {
	query := `
		SELECT id, title, author, url, likes, user_id
		FROM blogs
		WHERE user_id = ANY($1)
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b      UserBlog
			userID int
		)

		err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &userID)
		if err != nil {
			return err
		}

		add(userID, b)
	}

	return rows.Err()
}
