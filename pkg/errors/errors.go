package enigma_errors

import "errors"

// Command-recoverable errors. Each of these is surfaced to the caller as a
// structured {status: error, message} outcome, never as a failed request.
var (
	ErrInvalidFormat     = errors.New("invalid username format")
	ErrAlreadyTaken      = errors.New("username already taken")
	ErrHandleBound       = errors.New("session already has a username")
	ErrRecipientOffline  = errors.New("user not found or offline")
	ErrUnsupportedType   = errors.New("invalid file type")
	ErrUnrecognized      = errors.New("unrecognized command")
	ErrMalformed         = errors.New("malformed command")
	ErrMissingPayload    = errors.New("no image uploaded")
	ErrNoHandle          = errors.New("set a username first")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
)
