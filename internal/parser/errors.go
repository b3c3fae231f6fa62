package parser

import "errors"

var (
	// ErrMalformedInput means the document does not parse or carries no
	// roster/force. Callers should leave previously stored state untouched.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMalformedTree means the selection graph is cyclic, shares a node
	// between two parents, or nests deeper than the configured limit.
	ErrMalformedTree = errors.New("malformed selection tree")
)
