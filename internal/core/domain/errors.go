package domain

import "errors"

var (
	// ErrNotFound reports an absent entity id or slug.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a unique-constraint violation (duplicate slug or
	// email). Only the relational store raises it; the file store is
	// best-effort and allows duplicates.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials reports a failed login. Callers must not learn
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
