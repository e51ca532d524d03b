// Package auth implements the email bridge-code login flow: a one-time
// numeric code is issued for an email address (and returned in the issue
// response; no email is sent), then exchanged for a JWT session.
package auth

import "errors"

// Domain errors for the bridge-code auth module.
var (
	ErrCodeNotFound        = errors.New("bridge code not found")
	ErrCodeExpired         = errors.New("bridge code expired")
	ErrCodeAlreadyConsumed = errors.New("bridge code already used")
	ErrRefreshTokenInvalid = errors.New("refresh token not found, expired, or revoked")
)
