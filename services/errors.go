package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyResolved  = errors.New("already resolved")
	ErrVoteRateExceeded = errors.New("too many votes in a short time, slow down")
	ErrDailyUploadLimit = errors.New("daily upload limit reached, try again tomorrow")
)

// InsufficientPointsError reports a failed debit with the shortfall so the
// caller can show required vs. available.
type InsufficientPointsError struct {
	Required  int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d, have %d", e.Required, e.Available)
}

// InvalidFileError carries every violated file constraint, not just the first.
type InvalidFileError struct {
	Violations []string
}

func (e *InvalidFileError) Error() string {
	return "invalid file: " + strings.Join(e.Violations, "; ")
}

// StorageError wraps a transient object-storage failure. No retry happens at
// this layer; the caller surfaces it for user-visible retry messaging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
