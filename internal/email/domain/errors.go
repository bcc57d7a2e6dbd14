package domain

import "errors"

// ErrNotFound marks a referenced email or category that does not exist.
// Surfaced to the caller, never retried.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName marks a category create or rename that collides with an
// existing category's name.
var ErrDuplicateName = errors.New("name already in use")
