package client

import "errors"

var (
	ErrNoCommand         = errors.New("no command given")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingArgument   = errors.New("missing argument")
	ErrNoAdapterProvided = errors.New("no credential client provided")
)
