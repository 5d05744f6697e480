package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrValueRejected  = errors.New("value rejected by filter")

	ErrInvalidBackend = errors.New("invalid backend")
	ErrStoreAccess    = errors.New("settings store read/write error")
	ErrInvalidSeed    = errors.New("invalid seed file")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
