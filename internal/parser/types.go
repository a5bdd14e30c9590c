package parser

import (
	"context"

	"gettext-extractor/internal/extract"
)

// ParseResult holds extraction output for a single file.
type ParseResult struct {
	// FilePath is the path the file was read from.
	FilePath string
	// FileType is the grammar the file was parsed with (javascript, typescript, tsx).
	FileType string
	// Records are the evaluated keyword calls, in document order.
	Records []extract.Record
}

// Parser is the interface for source file parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse extracts keyword calls from a file.
	Parse(ctx context.Context, filePath string) (*ParseResult, error)
}
