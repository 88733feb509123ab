package domain

import "errors"

var (
	// ErrUpstreamUnavailable marks a transport failure of the exchange API.
	// The pipeline maps it to a 502 for the caller.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCacheMiss is returned by Cache.Get for absent or expired entries.
	ErrCacheMiss = errors.New("cache miss")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)
