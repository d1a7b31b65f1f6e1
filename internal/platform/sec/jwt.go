// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Package sec provides bearer-token parsing for caller identification.
//
// # Architecture
//
// Cinelog does not manage accounts or sessions — authentication is an
// upstream concern. This package only verifies tokens minted by that upstream
// issuer so the catalog can attach the caller's id to reads and ratings.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a bearer token.
//
// The UserID claim is the only identity the catalog needs: it keys per-user
// ratings and the "your rating" enrichment on movie reads.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID is the caller's stable identifier (UUID), abbreviated in the
	// token payload to keep it small.
	UserID string `json:"uid"`
}

// TokenService handles generation and verification of bearer tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService sharing the issuer's signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: token secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// GenerateAccessToken creates a signed token for a user. It exists for local
// development and tests; production tokens come from the upstream issuer.
func (service *TokenService) GenerateAccessToken(userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
