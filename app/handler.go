package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Adult    *bool  `json:"adult"`
}

func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var input createUserRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.CreateUser(r.Context(), userservice.CreateUserRequest{
		Username: input.Username,
		Name:     input.Name,
		Password: input.Password,
		Adult:    input.Adult,
	})
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.badRequestErrorResponse(w, r, err)
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userService.GetUsers(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, users, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, user, err := app.userService.LoginUser(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidCredentials):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"token": token, "username": user.Username, "name": user.Name}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getAllBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type createBlogRequest struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// createBlogHandler must be wrapped by requireAuthUser; the blog is owned by the token's user.
func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &blogservice.CreateBlogRequest{
		Title:  input.Title,
		Author: input.Author,
		URL:    input.URL,
		UserID: app.getClaimsContext(r).UserID,
	}
	if input.Likes != nil {
		req.Likes = *input.Likes
	}

	blog, err := app.blogService.CreateBlog(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrEventNotPublished):
			app.logger.Error("blog stored without notification", slog.Int("blog_id", blog.ID), slog.String("error", err.Error()))
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err)
			return
		case errors.Is(err, blogservice.ErrUserForeignKey):
			app.invalidAuthenticationTokenResponse(w, r)
			return
		default:
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	err = app.writeJSON(w, http.StatusCreated, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// updateBlogRequest accepts the whole record a client sends back; only likes is applied.
type updateBlogRequest struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	URL    *string         `json:"url"`
	Likes  *int            `json:"likes"`
	User   json.RawMessage `json:"user"`
	ID     json.RawMessage `json:"id"`
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	// id is a URL parameter
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input updateBlogRequest

	// Parse the request body
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, ok := app.authorizeBlog(w, r, id, "no rights to update blog")
	if !ok {
		return
	}

	if input.Likes == nil {
		app.badRequestErrorResponse(w, r, errors.New("likes missing"))
		return
	}

	updated, err := app.blogService.UpdateLikes(r.Context(), id, blog.OwnerID(), *input.Likes)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.badRequestErrorResponse(w, r, errMalformattedID)
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, updated, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, ok := app.authorizeBlog(w, r, id, "no rights to remove blog")
	if !ok {
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), id, blog.OwnerID())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.badRequestErrorResponse(w, r, errMalformattedID)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorizeBlog loads blog id and checks that the request's token may modify it.
// It writes the error response itself and reports whether the caller may go on.
func (app *application) authorizeBlog(w http.ResponseWriter, r *http.Request, id int, forbidden string) (*blogservice.Blog, bool) {
	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.badRequestErrorResponse(w, r, errMalformattedID)
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}

	_, err = app.userService.Authorize(app.getTokenContext(r), blog.OwnerID())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthenticated):
			app.invalidAuthenticationTokenResponse(w, r)
		case errors.Is(err, common.ErrForbidden):
			app.forbiddenErrorResponse(w, r, forbidden)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}

	return blog, true
}

func (app *application) getStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.blogService.GetStats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, stats, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
