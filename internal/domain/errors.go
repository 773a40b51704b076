package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// Validation constants
const (
	MinDayOfMonth = 1
	MaxDayOfMonth = 31
)
