package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	URL    *string `json:"url"`
	Likes  int     `json:"likes"`
	// User is nil for blogs created before ownership was recorded.
	User      *Owner    `json:"user"`
	CreatedAt time.Time `json:"-"`
}

// Owner is the part of a user inlined into a blog.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// OwnerID returns the id of the blog's owner, or nil when it has none.
func (b *Blog) OwnerID() *int {
	if b.User == nil {
		return nil
	}
	id := b.User.ID
	return &id
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m  *BlogModel
	mb common.MessageProducer
}

// BlogCreatedEvent is published on the blog exchange after a blog is stored.
type BlogCreatedEvent struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	URL      *string `json:"url"`
	Username string  `json:"username"`
}

// AuthorStat is the author with the most blogs and how many they have.
type AuthorStat struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// AuthorLikes is the author whose blogs have the most likes in total.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type Stats struct {
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Blog        `json:"favorite_blog"`
	MostBlogs    *AuthorStat  `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}
