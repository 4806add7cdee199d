package stoch

import (
	"errors"
	"fmt"
)

// The framework distinguishes two error kinds. Invalid-parameter errors are
// raised synchronously by constructors and setters so that no partially
// invalid distribution state is ever observable. Protocol errors indicate a
// lifecycle violation by the caller (sampling unregistered or locked items,
// double registration, registering after finalization) and are never retried.
var (
	// ErrInvalidParam marks a parameter-domain violation.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrProtocol marks a registration/locking lifecycle violation.
	ErrProtocol = errors.New("protocol violation")
)

func invalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParam, fmt.Sprintf(format, args...))
}

func protocolf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProtocol, fmt.Sprintf(format, args...))
}
