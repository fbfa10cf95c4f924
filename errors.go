package textgraph

import "errors"

var (
	// ErrMissingAPIKey is returned when the configured provider requires an
	// API key and none was supplied. No generation call is attempted.
	ErrMissingAPIKey = errors.New("textgraph: missing API key")

	// ErrEmptyInput is returned for blank or whitespace-only input text,
	// before any generation call is made.
	ErrEmptyInput = errors.New("textgraph: empty input text")

	// ErrEmptyExtraction is returned when extraction succeeded but produced
	// no entities and no relationships, or when the extracted data yields a
	// graph with zero nodes. No partial graph is rendered.
	ErrEmptyExtraction = errors.New("textgraph: empty extraction result")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("textgraph: invalid configuration")

	// ErrUnsupportedFormat is returned for unrecognized input file formats.
	ErrUnsupportedFormat = errors.New("textgraph: unsupported input format")
)
