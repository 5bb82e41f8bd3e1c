package board

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("caller does not own this post")
	ErrNotFound   = errors.New("post not found")
)
