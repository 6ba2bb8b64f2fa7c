package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in storage.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNameRequired is returned when an account name is empty or blank.
	ErrAccountNameRequired = errors.New("account name is required")
)

// AccountErrorCode defines error codes for account errors.
type AccountErrorCode string

const (
	ErrCodeAccountNotFound     AccountErrorCode = "ACC-010001"
	ErrCodeAccountNameRequired AccountErrorCode = "ACC-010002"
)
