// Package extract turns web pages, Bilibili videos and uploaded documents
// into markdown text that can be added to a session as a source.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nadzzz/duocast/internal/source"
)

// ErrNoContent is returned when a source yields no text at all.
var ErrNoContent = errors.New("no text content found")

// Ref points at the content to extract. Origin is a URL, a video ID or an
// uploaded file name. Body carries the upload for document sources.
type Ref struct {
	Origin string
	Body   io.Reader
}

// Document is extracted content ready for aggregation.
type Document struct {
	Title    string
	Markdown string
	Pages    int
}

// Extractor converts one kind of source into a Document.
type Extractor interface {
	Kind() source.Kind
	Extract(ctx context.Context, ref Ref) (*Document, error)
}

// Cleaner rewrites raw page text as focused markdown.
type Cleaner interface {
	Clean(ctx context.Context, text string) (string, error)
}

// Transcriber converts an audio stream to text. The file name hints at the
// container format.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Error reports a failed extraction.
type Error struct {
	Kind   source.Kind
	Origin string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extracting %s %q: %v", e.Kind, e.Origin, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// fail wraps err for the given extractor kind.
func fail(kind source.Kind, origin string, err error) error {
	return &Error{Kind: kind, Origin: origin, Err: err}
}
