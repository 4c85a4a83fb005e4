package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
	"github.com/lib/pq"
)

var (
	ErrNotSignedIn     = errors.New("no signed-in user")
	ErrNothingToAdd    = errors.New("calories must be greater than zero")
	ErrTooManyCalories = errors.New("calories exceed the per-add limit")
	ErrNotFound        = errors.New("not found")
	ErrInvalidGoal     = errors.New("calorie goal must be greater than zero")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNoUploader      = errors.New("profile image uploads are not configured")
)

// AuthError carries the human-readable messages of a rejected auth attempt,
// most relevant first.
type AuthError struct {
	Status   int
	Messages []string
}

const genericAuthMessage = "Unexpected error occurred."

func newAuthError(status int, messages ...string) *AuthError {
	return &AuthError{Status: status, Messages: messages}
}

func (e *AuthError) Error() string { return e.FirstMessage() }

// FirstMessage is what the client shows in its alert.
func (e *AuthError) FirstMessage() string {
	for _, m := range e.Messages {
		if m != "" {
			return m
		}
	}
	return genericAuthMessage
}

type StoreErrorKind string

const (
	StoreUnavailable      StoreErrorKind = "unavailable"
	StorePermissionDenied StoreErrorKind = "permission_denied"
	StoreFailure          StoreErrorKind = "failure"
)

// StoreError is a classified calorie store failure. None of them are retried.
type StoreError struct {
	Kind StoreErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// StoreErrorKindOf reports the kind of a store error, or StoreFailure for
// anything unclassified.
func StoreErrorKindOf(err error) StoreErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return StoreFailure
}

func classifyPostgres(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := StoreFailure

	var pqErr *pq.Error
	switch {
	case errors.As(err, &pqErr):
		switch {
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "57":
			kind = StoreUnavailable // connection exception, operator intervention
		case pqErr.Code.Class() == "28", pqErr.Code == "42501":
			kind = StorePermissionDenied
		}
	case isNetworkError(err):
		kind = StoreUnavailable
	}
	return &StoreError{Kind: kind, Op: op, Err: err}
}

func classifyDynamo(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := StoreFailure

	var apiErr smithy.APIError
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException",
			"MissingAuthenticationTokenException", "InvalidSignatureException":
			kind = StorePermissionDenied
		case "ProvisionedThroughputExceededException", "RequestLimitExceeded",
			"ThrottlingException", "ServiceUnavailable", "InternalServerError":
			kind = StoreUnavailable
		}
	case isNetworkError(err):
		kind = StoreUnavailable
	}
	return &StoreError{Kind: kind, Op: op, Err: err}
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded)
}
