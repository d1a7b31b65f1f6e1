// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Package requestutil provides utilities for extracting data from HTTP requests.
//
// It abstracts away the underlying router's parameter extraction and common
// body decoding patterns, ensuring consistent error handling and type safety.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmtan/cinelog/internal/platform/apperr"
	"github.com/nmtan/cinelog/internal/platform/ctxutil"
	"github.com/nmtan/cinelog/internal/platform/sec"
	"github.com/nmtan/cinelog/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns validate.ErrInvalidJSON when decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated user claims from the request context.
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// UserID returns the caller's id, or "" for anonymous requests.
func UserID(request *http.Request) string {
	return ctxutil.GetUserID(request.Context())
}

// RequiredUserID returns the id of the currently authenticated caller,
// or apperr.Unauthorized when the request carries no identity.
func RequiredUserID(request *http.Request) (string, error) {
	claims := Claims(request)
	if claims == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	return claims.UserID, nil
}
