package fuzzy

import "errors"

var (
	// ErrConfig indicates a malformed fuzzy configuration (breakpoints,
	// universes, rule references). An engine must not be built from it.
	ErrConfig = errors.New("invalid fuzzy configuration")

	// ErrDuplicateTerm indicates a term name is already defined on a variable
	ErrDuplicateTerm = errors.New("duplicate term")

	// ErrUnknownTerm indicates a lookup of a (variable, term) pair that was never fuzzified
	ErrUnknownTerm = errors.New("unknown term")
)
