// Copyright (c) 2026 Cinelog Authors. All rights reserved.

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmtan/cinelog/internal/platform/ctxutil"
	"github.com/nmtan/cinelog/internal/platform/middleware"
	"github.com/nmtan/cinelog/internal/platform/sec"
)

// stubVerifier accepts the single token "good" and rejects everything else.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == "good" {
		return &sec.AuthClaims{UserID: "user-123"}, nil
	}
	return nil, errors.New("bad token")
}

func authProbe(t *testing.T) (http.Handler, *string) {
	t.Helper()

	var seenUserID string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenUserID = ctxutil.GetUserID(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	return middleware.Authenticate(stubVerifier{})(handler), &seenUserID
}

/*
TestAuthenticate_Anonymous verifies that requests without an Authorization
header pass through with no identity: reads stay public.
*/
func TestAuthenticate_Anonymous(t *testing.T) {
	handler, seenUserID := authProbe(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/movies", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, *seenUserID)
}

/*
TestAuthenticate_ValidToken verifies that a valid bearer token attaches the
caller's identity to the request context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	handler, seenUserID := authProbe(t)

	request := httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.Header.Set("Authorization", "Bearer good")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-123", *seenUserID)
}

/*
TestAuthenticate_Rejections verifies that malformed headers and invalid tokens
are rejected with 401 before reaching the handler.
*/
func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"invalid_token", "Bearer bad"},
		{"wrong_scheme", "Basic good"},
		{"missing_token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, seenUserID := authProbe(t)

			request := httptest.NewRequest(http.MethodGet, "/movies", nil)
			request.Header.Set("Authorization", tt.header)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Empty(t, *seenUserID)
		})
	}
}

/*
TestRequireAuth verifies the gate in both directions: anonymous requests stop
with 401, authenticated requests pass.
*/
func TestRequireAuth(t *testing.T) {
	var reached bool
	handler := middleware.RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		reached = true
		writer.WriteHeader(http.StatusOK)
	}))

	// Anonymous: blocked.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/movies", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)

	// Authenticated: allowed.
	request := httptest.NewRequest(http.MethodPost, "/movies", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "user-123"}))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, reached)
}
