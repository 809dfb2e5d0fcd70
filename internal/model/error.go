package model

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the HTTP layer can map it to a status
// code without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthorized
)

// Standard error codes carried in API error responses.
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnknownProduct  = "UNKNOWN_PRODUCT"
	ErrCodeUnknownMenu     = "UNKNOWN_MENU"
	ErrCodeUnknownOption   = "UNKNOWN_OPTION"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeProtectedFields = "PROTECTED_FIELDS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a typed business failure. Services return these instead of
// letting storage errors escape to the HTTP layer.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// AsDomainError extracts a DomainError from an error chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// NotFoundError reports that an entity id did not resolve.
func NotFoundError(entity string, id int64) *DomainError {
	return NewDomainError(KindNotFound, ErrCodeNotFound, fmt.Sprintf("%s %d not found", entity, id))
}

// ForbiddenError reports a policy denial naming the roles that would have
// been accepted.
func ForbiddenError(action string, allowed ...Role) *DomainError {
	msg := fmt.Sprintf("access denied for %s", action)
	if len(allowed) > 0 {
		msg += ": allowed roles"
		for i, r := range allowed {
			if i > 0 {
				msg += ","
			}
			msg += " " + string(r)
		}
	}
	return NewDomainError(KindForbidden, ErrCodeForbidden, msg)
}

// ValidationError reports malformed or disallowed input.
func ValidationError(message string) *DomainError {
	return NewDomainError(KindValidation, ErrCodeValidation, message)
}

// ConflictError reports a unique-key violation such as a duplicate email.
func ConflictError(message string) *DomainError {
	return NewDomainError(KindConflict, ErrCodeConflict, message)
}

// UnauthorizedError reports a missing, expired or invalid credential.
func UnauthorizedError(message string) *DomainError {
	return NewDomainError(KindUnauthorized, ErrCodeUnauthorized, message)
}

// UnknownProductError reports order composition referencing a product id
// that does not exist.
func UnknownProductError(id int64) *DomainError {
	return NewDomainError(KindValidation, ErrCodeUnknownProduct, fmt.Sprintf("product %d does not exist", id))
}

// UnknownMenuError reports order composition referencing a menu id that does
// not exist.
func UnknownMenuError(id int64) *DomainError {
	return NewDomainError(KindValidation, ErrCodeUnknownMenu, fmt.Sprintf("menu %d does not exist", id))
}

// UnknownOptionError reports an option selection naming a product that does
// not exist, identifying the offending menu.
func UnknownOptionError(menuID, productID int64) *DomainError {
	return NewDomainError(KindValidation, ErrCodeUnknownOption,
		fmt.Sprintf("option product %d for menu %d does not exist", productID, menuID))
}

// ProtectedFieldsError reports a non-administrator self-update touching
// fields other than email and password.
func ProtectedFieldsError() *DomainError {
	return NewDomainError(KindValidation, ErrCodeProtectedFields,
		"only email and password may be changed on your own profile")
}

// ErrorResponse is the standardised error payload.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}
