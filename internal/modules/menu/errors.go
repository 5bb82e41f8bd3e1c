package menu

import "errors"

var ErrValidation = errors.New("validation error")
