package domain

import "errors"

// ErrorKind classifies domain failures so the transport layer can pick a status.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a classified domain failure. Values are compared by identity with errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Registration.
var (
	ErrFieldsRequired   = newError(KindValidation, "all fields required")
	ErrInvalidEmail     = newError(KindValidation, "invalid email")
	ErrEmailExists      = newError(KindConflict, "email exists")
	ErrUsernameExists   = newError(KindConflict, "username exists")
	ErrPasswordTooShort = newError(KindValidation, "password too short")
)

// Login and per-request authorization.
var (
	ErrInvalidCredentials = newError(KindAuth, "invalid credentials")
	ErrNoToken            = newError(KindAuth, "no token provided")
	ErrInvalidToken       = newError(KindAuth, "invalid token")
	ErrTokenExpired       = newError(KindAuth, "token expired")
	ErrIdentityNotFound   = newError(KindAuth, "user not found")
)

// Profile operations.
var (
	ErrUserNotFound  = newError(KindNotFound, "user not found")
	ErrInvalidTheme  = newError(KindValidation, "invalid theme")
	ErrInvalidUpdate = newError(KindValidation, "invalid profile update")
)

// Posts and comments.
var (
	ErrPostNotFound        = newError(KindNotFound, "post not found")
	ErrCommentNotFound     = newError(KindNotFound, "comment not found")
	ErrPostEmpty           = newError(KindValidation, "post content required")
	ErrCommentEmpty        = newError(KindValidation, "comment content required")
	ErrNotPostAuthor       = newError(KindForbidden, "not the post author")
	ErrCommentDeleteDenied = newError(KindForbidden, "not allowed to delete comment")
)
