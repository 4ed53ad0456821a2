package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/userservice"
)

type contextKey string

const (
	tokenContextKey  = contextKey("token")
	claimsContextKey = contextKey("claims")
)

func (app *application) createTokenContext(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), tokenContextKey, token)
	return r.WithContext(ctx)
}

// getTokenContext returns the bearer token of the request, or "" when it carried none.
func (app *application) getTokenContext(r *http.Request) string {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}

func (app *application) createClaimsContext(r *http.Request, claims *userservice.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsContextKey, claims)
	return r.WithContext(ctx)
}

func (app *application) getClaimsContext(r *http.Request) *userservice.Claims {
	claims, ok := r.Context().Value(claimsContextKey).(*userservice.Claims)
	if !ok {
		return nil
	}
	return claims
}
