package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

// errNegativeLikes is returned when the likes check constraint rejects a write that got past validation.
var errNegativeLikes = common.ValidationError{
	Errors: map[string]string{"likes": "likes must not be negative"},
	Field:  "likes",
}

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// blogColumns selects a blog aliased b with its owner aliased u.
const blogColumns = `b.id, b.title, b.author, b.url, b.likes, b.created_at, u.id, u.username, u.name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	var (
		blog          Blog
		ownerID       sql.NullInt64
		ownerUsername sql.NullString
		ownerName     sql.NullString
	)

	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.CreatedAt, &ownerID, &ownerUsername, &ownerName)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		blog.User = &Owner{
			ID:       int(ownerID.Int64),
			Username: ownerUsername.String,
			Name:     ownerName.String,
		}
	}

	return &blog, nil
}

// insert stores a blog owned by userID and returns it with the owner inlined.
func (m *BlogModel) insert(ctx context.Context, title, author string, url *string, likes, userID int) (*Blog, error) {
	query := `
		WITH b AS (
			INSERT INTO blogs (title, author, url, likes, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, title, author, url, likes, user_id, created_at
		)
		SELECT ` + blogColumns + `
		FROM b
		LEFT JOIN users u ON b.user_id = u.id`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, title, author, url, likes, userID))
	if err != nil {
		switch {
		case common.ConstraintError(err, common.ForeignKeyViolation, "blogs_user_id_fkey"):
			return nil, ErrUserForeignKey
		case common.ConstraintError(err, common.CheckViolation, "blogs_likes_check"):
			return nil, errNegativeLikes
		default:
			return nil, err
		}
	}

	return blog, nil
}

// getBlogById returns a blog joined with its owner, if it has one.
func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

// getBlogs returns every blog in insertion order.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// updateLikes replaces the likes of a blog. The owner must still be the one the caller authorized against.
func (m *BlogModel) updateLikes(ctx context.Context, id int, owner *int, likes int) (*Blog, error) {
	query := `
		WITH b AS (
			UPDATE blogs
			SET likes = $1
			WHERE id = $2 AND user_id IS NOT DISTINCT FROM $3::bigint
			RETURNING id, title, author, url, likes, user_id, created_at
		)
		SELECT ` + blogColumns + `
		FROM b
		LEFT JOIN users u ON b.user_id = u.id`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, likes, id, owner))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		case common.ConstraintError(err, common.CheckViolation, "blogs_likes_check"):
			return nil, errNegativeLikes
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int, owner *int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id IS NOT DISTINCT FROM $2::bigint`

	res, err := m.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
