// Package parser reads uploaded input files into the plain text the
// extraction pipeline analyzes.
package parser

import "context"

// Parser reads a specific input format into plain text.
type Parser interface {
	Parse(ctx context.Context, path string) (string, error)
	SupportedFormats() []string
}
