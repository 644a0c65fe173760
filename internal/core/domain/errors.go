package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDirection   = errors.New("invalid vote direction")
	ErrInvalidIntent      = errors.New("invalid vote intent")
	ErrInvalidTargetType  = errors.New("invalid target type")
	ErrInvalidTargetID    = errors.New("invalid target id")
	ErrInconsistentWidget = errors.New("widget is both upvoted and downvoted")
	ErrEmptyComment       = errors.New("comment content is empty")
	ErrThreadNotFound     = errors.New("thread not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrWidgetNotFound     = errors.New("widget not found")
	ErrUnauthorized       = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrBadRequest         = errors.New("bad request")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
)

// RejectedError is returned when the backend answers a vote with a non-null
// error field. The widget is left untouched.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("vote rejected: %s", e.Message)
}
