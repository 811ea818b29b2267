package songdb

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO          ErrorKind = "io"
	ErrSQL         ErrorKind = "sql"
	ErrFilterParse ErrorKind = "filter_parse"
	ErrBadSong     ErrorKind = "bad_song"
	ErrNotFound    ErrorKind = "not_found"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func FilterParseError(cause error) *Error {
	return &Error{Kind: ErrFilterParse, Message: "parse filter", Cause: cause}
}

func NotFoundError(uri string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("song not found: %s", uri)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
