package model

import (
	"errors"
	"fmt"
)

// ErrNoSources is returned when the search provider produced no usable candidates
var ErrNoSources = errors.New("no sources found")

// RetrievalError means the search provider could not be queried or parsed.
// It is fatal to the verification request.
type RetrievalError struct {
	Claim string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve sources for %q: %v", e.Claim, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// SynthesisError means the text-generation call failed.
// It is fatal to the verification request; there is no retry.
type SynthesisError struct {
	Claim string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize analysis for %q: %v", e.Claim, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
