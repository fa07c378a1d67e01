package estimate

import "errors"

var (
	ErrNotFound  = errors.New("estimate not found")
	ErrForbidden = errors.New("forbidden")
)
