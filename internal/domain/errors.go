package domain

import "errors"

// Sentinel errors surfaced across package boundaries. The API layer maps
// these to HTTP status codes and error payloads with errors.Is.
var (
	// ErrContentNotFound indicates the referenced identifier is absent
	// from the content store.
	ErrContentNotFound = errors.New("content not found")

	// ErrMissingAPIKey indicates the completion provider credential is
	// not configured. This is a configuration error, reported before any
	// network call is attempted.
	ErrMissingAPIKey = errors.New("AI21 API key not set")

	// ErrNoCompletions indicates the provider response contained an
	// empty completions list.
	ErrNoCompletions = errors.New("no completions found in response")

	// ErrEmptyCompletion indicates the generated text was empty after
	// trimming surrounding whitespace.
	ErrEmptyCompletion = errors.New("generated text is empty")
)
