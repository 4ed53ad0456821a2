package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var ErrEventNotPublished = errors.New("blog created event not published")

func NewBlogService(db *sql.DB, mb common.MessageProducer) *BlogService {
	return &BlogService{m: newBlogModel(db), mb: mb}
}

type CreateBlogRequest struct {
	Title  string
	Author string
	URL    *string
	Likes  int
	UserID int
}

// CreateBlog stores a new blog owned by req.UserID and announces it on the blog exchange.
//
// The blog is returned even when the announcement fails; the error then wraps ErrEventNotPublished.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	title := sanitizeText(req.Title)
	author := sanitizeText(req.Author)

	var url *string
	if req.URL != nil {
		if u := sanitizeText(*req.URL); u != "" {
			url = &u
		}
	}

	v := common.NewValidator()
	validateBlog(v, title, author, req.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.insert(ctx, title, author, url, req.Likes, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.publishCreated(ctx, blog); err != nil {
		return blog, fmt.Errorf("%w: %v", ErrEventNotPublished, err)
	}

	return blog, nil
}

func (s *BlogService) publishCreated(ctx context.Context, blog *Blog) error {
	if s.mb == nil {
		return nil
	}

	event := BlogCreatedEvent{
		ID:     blog.ID,
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
	}
	if blog.User != nil {
		event.Username = blog.User.Username
	}

	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, msg, common.BlogCreatedKey, common.BlogExchange)
}

// GetBlogByID returns a blog by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogById(ctx, id)
}

// GetBlogs returns all blogs with their owners.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx)
}

// UpdateLikes replaces the likes of a blog, provided it is still owned by owner.
func (s *BlogService) UpdateLikes(ctx context.Context, id int, owner *int, likes int) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id)
	validateLikes(v, likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.updateLikes(ctx, id, owner, likes)
}

// DeleteBlog deletes a blog, provided it is still owned by owner.
func (s *BlogService) DeleteBlog(ctx context.Context, id int, owner *int) error {
	v := common.NewValidator()
	validateID(v, id)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteBlog(ctx, id, owner)
}

// GetStats loads every blog and summarizes it.
func (s *BlogService) GetStats(ctx context.Context) (Stats, error) {
	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Summarize(blogs), nil
}
