package errs

import (
	"errors"
	"fmt"
)

var (
	ErrChatNotFound         = errors.New("chat not found")
	ErrContactNotFound      = errors.New("contact message not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")

	// ErrValidation is the sentinel wrapped by Validationf; handlers map it to 400.
	ErrValidation = errors.New("validation failed")
)

// Validationf builds a validation error that satisfies errors.Is(err, ErrValidation).
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// IsNotFound reports whether err is one of the domain not-found sentinels.
func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrChatNotFound,
		ErrContactNotFound,
		ErrNotificationNotFound,
		ErrProductNotFound,
		ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
