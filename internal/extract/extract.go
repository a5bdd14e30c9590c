// Package extract finds calls to a translation keyword in JavaScript source
// and evaluates each one against a stand-in translation function.
//
// The pipeline runs three parses over the document: aliases of the keyword
// are collapsed, plain template literals are folded to string literals, and
// finally every keyword call is located, its arguments deferred, and the call
// evaluated in a fresh sandbox.
package extract

import (
	"context"
	"errors"
	"fmt"

	"gettext-extractor/internal/jsast"
	"gettext-extractor/internal/sandbox"

	"github.com/rs/zerolog/log"
)

// ErrNoKeyword is returned when a request names no keyword.
var ErrNoKeyword = errors.New("extract: keyword is required")

// Request is one extraction run over one source document.
type Request struct {
	Source   string
	Keyword  string
	Filename string
	// ParserOptions is passed to every parse; locations are always enabled
	// for the matching pass.
	ParserOptions jsast.Options
}

// EvalError reports a keyword call that failed to evaluate.
type EvalError struct {
	Line     int
	Filename string
	Err      error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("on line %d of file '%s' %s", e.Line, e.Filename, e.Err.Error())
}

func (e *EvalError) Unwrap() error { return e.Err }

var errNoValue = errors.New("translation function returned no value")

// Extractor evaluates keyword calls against an injected binding.
type Extractor struct {
	binding sandbox.Binding
}

// New creates an Extractor that binds the keyword to binding.
func New(binding sandbox.Binding) *Extractor {
	return &Extractor{binding: binding}
}

// Extract returns one Record per keyword call in req.Source, in document
// order. Any parse or evaluation failure aborts the run and no records are
// returned.
func (x *Extractor) Extract(ctx context.Context, req Request) ([]Record, error) {
	if req.Keyword == "" {
		return nil, ErrNoKeyword
	}

	src, err := NormalizeAliases(ctx, req.Source, req.Keyword, req.ParserOptions)
	if err != nil {
		return nil, err
	}
	src, err = FoldTemplates(ctx, src, req.ParserOptions)
	if err != nil {
		return nil, err
	}

	found, err := Gather(ctx, src, req.Keyword, req.ParserOptions)
	if err != nil {
		return nil, err
	}

	ev := sandbox.New(req.Keyword, x.binding)
	records := make([]Record, 0, len(found))
	for _, m := range found {
		rec, err := run(ctx, ev, m, req.Filename)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	log.Debug().
		Str("file", req.Filename).
		Str("keyword", req.Keyword).
		Int("records", len(records)).
		Msg("Extracted keyword calls")

	return records, nil
}

func run(ctx context.Context, ev *sandbox.Evaluator, m Match, filename string) (Record, error) {
	v, err := ev.Eval(ctx, m.Src)
	if err != nil {
		return Record{}, &EvalError{Line: m.Line, Filename: filename, Err: err}
	}
	if v == nil {
		return Record{}, &EvalError{Line: m.Line, Filename: filename, Err: errNoValue}
	}

	fields, ok := v.(map[string]any)
	if !ok {
		fields = map[string]any{"value": v}
	}
	return Record{Fields: fields, Line: m.Line, Filename: filename}, nil
}
