package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// For rate lookups this is the normal "no such rate" outcome, not a defect.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing, invalid or revoked credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrData indicates a stored value that cannot be used for rate arithmetic
// (zero, negative or non-finite).
var ErrData = errors.New("corrupt stored data")

// ErrStore indicates a failure of the persistence layer.
var ErrStore = errors.New("store error")

// ErrMigrationScript indicates that an up or down script failed to execute.
var ErrMigrationScript = errors.New("migration script failed")

// ErrMigrationMarker indicates that the schema version marker could not be
// persisted together with its step. The schema state must be verified by an operator.
var ErrMigrationMarker = errors.New("schema version marker update failed")

// ErrConfiguration indicates malformed configuration, including an invalid migration list.
var ErrConfiguration = errors.New("configuration error")

// ErrProvider indicates that an external rate provider returned unusable data.
var ErrProvider = errors.New("provider error")

// Store wraps a persistence failure so that it matches ErrStore while keeping the driver error.
func Store(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
