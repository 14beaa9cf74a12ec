package graph

import "errors"

var (
	// ErrUnknownRelation is returned when a graph name does not match any relation
	ErrUnknownRelation = errors.New("unknown relation")
	// ErrMissingIdentifier is returned when a user key was never registered by the store
	ErrMissingIdentifier = errors.New("identifier not registered")
	// ErrNoSeeds is returned when Build is called without seed identifiers
	ErrNoSeeds = errors.New("no seed identifiers")
)
