package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/nadzzz/duocast/internal/source"
)

// DefaultMaxDocumentSize bounds uploads read into memory.
const DefaultMaxDocumentSize = 25 << 20

// ErrUnsupportedFormat is returned for file types other than txt, md, pdf and docx.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrDocumentTooLarge is returned when an upload exceeds the size limit.
var ErrDocumentTooLarge = errors.New("document too large")

// Files extracts text from uploaded documents.
type Files struct {
	maxSize int64
}

// NewFiles creates a document extractor. A non-positive maxSize selects
// DefaultMaxDocumentSize.
func NewFiles(maxSize int64) *Files {
	if maxSize <= 0 {
		maxSize = DefaultMaxDocumentSize
	}
	return &Files{maxSize: maxSize}
}

// Kind returns source.KindDocument.
func (f *Files) Kind() source.Kind { return source.KindDocument }

// Extract reads ref.Body according to the extension of ref.Origin.
func (f *Files) Extract(_ context.Context, ref Ref) (*Document, error) {
	if ref.Body == nil {
		return nil, fail(source.KindDocument, ref.Origin, errors.New("no document body"))
	}

	data, err := io.ReadAll(io.LimitReader(ref.Body, f.maxSize+1))
	if err != nil {
		return nil, fail(source.KindDocument, ref.Origin, fmt.Errorf("reading document: %w", err))
	}
	if int64(len(data)) > f.maxSize {
		return nil, fail(source.KindDocument, ref.Origin, ErrDocumentTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(ref.Origin))
	var text string
	pages := 1
	switch ext {
	case ".txt", ".md", ".markdown":
		if !utf8.Valid(data) {
			err = errors.New("document is not valid UTF-8 text")
		}
		text = string(data)
	case ".pdf":
		text, pages, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fail(source.KindDocument, ref.Origin, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fail(source.KindDocument, ref.Origin, ErrNoContent)
	}

	title := strings.TrimSuffix(filepath.Base(ref.Origin), filepath.Ext(ref.Origin))
	return &Document{Title: title, Markdown: text, Pages: pages}, nil
}

func pdfText(data []byte) (string, int, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("opening pdf: %w", err)
	}

	r, err := doc.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("reading pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", 0, fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), doc.NumPage(), nil
}

// docxText returns the paragraphs of word/document.xml separated by blank lines.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}

	for _, zf := range zr.File {
		if zf.Name != "word/document.xml" {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return "", fmt.Errorf("opening docx body: %w", err)
		}
		defer rc.Close()
		return wordParagraphs(rc)
	}
	return "", errors.New("docx has no word/document.xml")
}

func wordParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if p := strings.TrimSpace(current.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
