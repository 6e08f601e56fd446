package services

import (
	"errors"

	"github.com/baharkarakas/blog-backend/internal/validate"
)

var (
	ErrValidation         = validate.ErrInvalid
	ErrNotFound           = errors.New("blog not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("not authorized")
	ErrAccessDenied       = errors.New("access denied")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
