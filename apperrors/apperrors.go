// Package apperrors defines the error taxonomy shared by all controllers and
// the single place where error kinds map to HTTP responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Kind int

const (
	// KindValidation: malformed input shape, enum, or number format.
	KindValidation Kind = iota + 1
	// KindAuthentication: no or expired session ("who are you").
	KindAuthentication
	// KindAuthorization: insufficient role ("you may not").
	KindAuthorization
	// KindNotFound: the addressed record does not exist.
	KindNotFound
	// KindForeignKey: a referenced related record does not exist.
	KindForeignKey
	// KindStore: transport or transaction failure in the data store.
	KindStore
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ForeignKey(msg string) *Error {
	return &Error{Kind: KindForeignKey, Message: msg}
}

func ForeignKeyf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForeignKey, Message: fmt.Sprintf(format, args...)}
}

func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "store failure", Err: err}
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// HTTPStatus maps an error to its response status. Unknown errors are
// treated as store failures.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindForeignKey:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the JSON error body for err.
func Respond(c *gin.Context, err error) {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// internal detail stays in the logs
		logrus.WithError(err).Error("request failed")
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
