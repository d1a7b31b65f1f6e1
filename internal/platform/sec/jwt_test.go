// Copyright (c) 2026 Cinelog Authors. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtan/cinelog/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a minted token carries the caller's
id back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "cinelog.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

/*
TestTokenService_Rejections covers the verification failure modes: wrong
secret, wrong issuer, expired token, garbage input.
*/
func TestTokenService_Rejections(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "cinelog.app")
	require.NoError(t, err)

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("other-secret", "cinelog.app")
		require.NoError(t, err)

		token, err := other.GenerateAccessToken("user-123", time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		other, err := sec.NewTokenService("test-secret", "someone-else.app")
		require.NoError(t, err)

		token, err := other.GenerateAccessToken("user-123", time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-123", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not-a-token")
		assert.Error(t, err)
	})
}

/*
TestNewTokenService_EmptySecret verifies the construction guard.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "cinelog.app")
	assert.Error(t, err)
}
