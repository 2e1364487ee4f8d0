package service

import "errors"

// Business errors surfaced to the HTTP layer, which maps them to status
// codes. Anything not listed here is reported as ErrInternalServer with a
// generic message; details stay in the logs.
var (
	ErrUserExists           = errors.New("user already exists")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrUnauthorized         = errors.New("invalid or expired token")
	ErrForbidden            = errors.New("not authorized")
	ErrUserNotFound         = errors.New("user not found")
	ErrAppNotFound          = errors.New("app not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrValidation           = errors.New("invalid input")
	ErrInternalServer       = errors.New("internal server error")
)
