// Package errs defines the error taxonomy shared by the service and
// transport layers.
//
// Four kinds exist:
//   - ValidationError: a local precondition failed; the request never
//     reaches storage.
//   - AuthorizationError: the actor lacks the required capability; terminal
//     for that action, never retried.
//   - NotFoundError: the referenced entity is absent from the latest
//     snapshot; treated as "access denied or deleted".
//   - CollaboratorError: the storage collaborator failed; local state stays
//     at the last known good snapshot.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError indicates a request failed a local precondition.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AuthorizationError indicates the actor lacks the capability for an action.
type AuthorizationError struct {
	Actor  string
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s is not allowed to %s", e.Actor, e.Action)
}

// Unauthorized builds an AuthorizationError.
func Unauthorized(actor, action string) error {
	return &AuthorizationError{Actor: actor, Action: action}
}

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// CollaboratorError wraps a failure from the persistence collaborator.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Collaborator wraps err with the failing operation name.
func Collaborator(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthorization reports whether err is an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
