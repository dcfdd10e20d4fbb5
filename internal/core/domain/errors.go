package domain

import "errors"

// ErrUnauthorized means the backend rejected the bearer token or credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable means the collaborator could not be reached at all.
var ErrUnavailable = errors.New("server unreachable")
