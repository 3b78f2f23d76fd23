// Package errors provides structured error handling with error codes for simple-rbac.
//
// This package standardizes error handling across all services with typed error codes
// and automatic HTTP status code mapping.
//
// # Basic Usage
//
// Creating errors with codes:
//
//	import "github.com/tendant/simple-rbac/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeUserNotFound, "user not found")
//
//	// Create error with formatted message
//	err := errors.Newf(errors.ErrCodeInvalidInput, "invalid email: %s", email)
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeInternal, "failed to query database")
//
// # HTTP Mapping
//
// Handlers convert service errors into responses without switching on
// concrete error values:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) {
//		render.Status(r, e.HTTPStatusCode())
//	}
//
// NotFound-family codes map to 404, conflict-family codes to 409,
// ErrCodeInvalidInput to 400, and everything else to 500.
package errors
