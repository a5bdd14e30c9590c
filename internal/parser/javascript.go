package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gettext-extractor/internal/extract"
	"gettext-extractor/internal/jsast"
)

// dialects maps handled extensions to the grammar used for them.
var dialects = map[string]jsast.Dialect{
	".js":  jsast.DialectJavaScript,
	".mjs": jsast.DialectJavaScript,
	".cjs": jsast.DialectJavaScript,
	".jsx": jsast.DialectJavaScript,
	".ts":  jsast.DialectTypeScript,
	".mts": jsast.DialectTypeScript,
	".cts": jsast.DialectTypeScript,
	".tsx": jsast.DialectTSX,
}

// Extensions returns every file extension JSParser handles, sorted.
func Extensions() []string {
	out := make([]string, 0, len(dialects))
	for ext := range dialects {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// JSParser extracts keyword calls from JavaScript and TypeScript files.
type JSParser struct {
	extractor   *extract.Extractor
	keyword     string
	maxFileSize int
}

// NewJSParser creates a parser that runs extractor for keyword.
// maxFileSize of zero disables the size check.
func NewJSParser(extractor *extract.Extractor, keyword string, maxFileSize int) *JSParser {
	return &JSParser{extractor: extractor, keyword: keyword, maxFileSize: maxFileSize}
}

func (p *JSParser) CanParse(ext string) bool {
	_, ok := dialects[strings.ToLower(ext)]
	return ok
}

func (p *JSParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	dialect := dialects[strings.ToLower(filepath.Ext(filePath))]
	if dialect == "" {
		dialect = jsast.DialectJavaScript
	}

	records, err := p.extractor.Extract(ctx, extract.Request{
		Source:   string(content),
		Keyword:  p.keyword,
		Filename: filePath,
		ParserOptions: jsast.Options{
			Dialect:     dialect,
			MaxFileSize: p.maxFileSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filePath, err)
	}

	return &ParseResult{
		FilePath: filePath,
		FileType: string(dialect),
		Records:  records,
	}, nil
}
