package repository

import "errors"

// ErrNotFound is returned by all repositories when the requested entity does
// not exist. Callers branch on it with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("already exists")
