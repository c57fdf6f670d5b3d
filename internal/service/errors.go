package service

import "errors"

// Generation pipeline failure modes. The pipeline is all-or-nothing: any of
// these means no recipe was persisted, though the gateway call may already
// have happened.
var (
	// ErrTransport covers network failures and non-2xx responses from the
	// LLM gateway.
	ErrTransport = errors.New("llm gateway request failed")

	// ErrParse covers gateway responses whose content is not the expected
	// JSON recipe shape.
	ErrParse = errors.New("llm response could not be parsed")

	// ErrAuthRequired is returned when persistence is attempted without an
	// authenticated user.
	ErrAuthRequired = errors.New("authenticated user required")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
)
