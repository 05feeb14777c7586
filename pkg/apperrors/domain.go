package apperrors

import (
	"net/http"
)

// Factories for wrapping repository/storage errors.

// ErrStoreUnavailable wraps a document-store failure as an opaque 500.
func ErrStoreUnavailable(err error) *AppError {
	return Wrap(err, CodeStoreError, "store", "Internal server error", http.StatusInternalServerError)
}

// ErrBlobStoreFailure wraps an object-storage failure as an opaque 500.
func ErrBlobStoreFailure(err error) *AppError {
	return Wrap(err, CodeBlobError, "blob", "Failed to store attachment", http.StatusInternalServerError)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// Predefined errors for the frequent, static cases.

// ErrEmailAlreadyExists signals a duplicate account registration.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"User already exists",
	http.StatusConflict,
)

// ErrInvalidCredentials covers both unknown email and wrong password, so the
// response does not reveal which one failed.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrCardNotFound signals a lookup miss on card_id.
var ErrCardNotFound = New(
	CodeNotFound,
	"card",
	"Card not found",
	http.StatusNotFound,
)

// ErrNotCardOwner signals an authenticated caller whose identity does not
// match the card's contact email.
var ErrNotCardOwner = New(
	CodeForbidden,
	"card",
	"Access denied: you are not the owner of this card",
	http.StatusForbidden,
)

// ErrMissingToken signals an absent Authorization header.
var ErrMissingToken = New(
	CodeUnauthorized,
	"auth",
	"Authorization header missing or invalid",
	http.StatusUnauthorized,
)

// ErrInvalidToken signals a token that failed signature or expiry checks.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusForbidden,
)
