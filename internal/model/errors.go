package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Domain entity errors
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("email already in use")

	// Trash related errors
	ErrTrashEntryNotFound = errors.New("trash entry not found")
	ErrNotRestorable      = errors.New("entry is not restorable")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
