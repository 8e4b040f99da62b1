package index

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrComposerRequired is returned when a Builder is created without a composer.
	ErrComposerRequired = errors.New("composer is required")

	// ErrEmbedderRequired is returned when a Builder is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrStoreRequired is returned when an Index is created without a snapshot store.
	ErrStoreRequired = errors.New("snapshot store is required")

	// ErrSourceRequired is returned when an Index is created without a record source.
	ErrSourceRequired = errors.New("record source is required")
)
