package equipment

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("caller may not act on this request")
	ErrNotFound   = errors.New("equipment request not found")
	ErrDecided    = errors.New("request is no longer open")
)
