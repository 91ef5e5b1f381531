package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nadzzz/duocast/internal/source"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Test Page</title>
<script>var tracking = "do-not-include";</script>
<style>body { color: red; }</style>
</head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Quantum computing explained</h1>
<p>Quantum computers use qubits, which can represent zero and one at the same time. This property, called superposition, lets them explore many possibilities in parallel.</p>
<p>Entanglement links qubits so that the state of one depends on another, even when they are far apart. Researchers use it to build algorithms that outperform classical ones.</p>
<p>Practical machines remain noisy, and error correction is the main engineering challenge of the coming decade.</p>
</article>
</body></html>`

type fakeCleaner struct {
	out  string
	err  error
	seen string
}

func (f *fakeCleaner) Clean(_ context.Context, text string) (string, error) {
	f.seen = text
	return f.out, f.err
}

func pageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "Mozilla/5.0") {
			t.Errorf("user agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWebExtract(t *testing.T) {
	srv := pageServer(t, http.StatusOK, articleHTML)

	doc, err := NewWeb(srv.Client(), nil).Extract(context.Background(), Ref{Origin: srv.URL + "/article"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(doc.Markdown, "superposition") || !strings.Contains(doc.Markdown, "error correction") {
		t.Errorf("markdown missing article text: %q", doc.Markdown)
	}
	if strings.Contains(doc.Markdown, "do-not-include") || strings.Contains(doc.Markdown, "color: red") {
		t.Errorf("markdown contains script or style: %q", doc.Markdown)
	}
	if strings.Contains(doc.Markdown, "\n\n\n") {
		t.Errorf("whitespace not collapsed: %q", doc.Markdown)
	}
	if doc.Title == "" || doc.Pages != 1 {
		t.Errorf("title = %q, pages = %d", doc.Title, doc.Pages)
	}
}

func TestWebExtractCleaner(t *testing.T) {
	srv := pageServer(t, http.StatusOK, articleHTML)
	cleaner := &fakeCleaner{out: "# Quantum\n\n- qubits\n"}

	doc, err := NewWeb(srv.Client(), cleaner).Extract(context.Background(), Ref{Origin: srv.URL})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Markdown != "# Quantum\n\n- qubits" {
		t.Errorf("markdown = %q", doc.Markdown)
	}
	if !strings.Contains(cleaner.seen, "qubits") {
		t.Errorf("cleaner input = %q", cleaner.seen)
	}
}

func TestWebExtractFailures(t *testing.T) {
	notFound := pageServer(t, http.StatusNotFound, "gone")
	empty := pageServer(t, http.StatusOK, "<html><body><script>x()</script></body></html>")
	ok := pageServer(t, http.StatusOK, articleHTML)

	tests := []struct {
		name    string
		origin  string
		cleaner Cleaner
		wantErr error
	}{
		{"not a url", "not a url", nil, nil},
		{"unsupported scheme", "ftp://example.com/file", nil, nil},
		{"status", notFound.URL, nil, nil},
		{"no text", empty.URL, nil, ErrNoContent},
		{"cleaner fails", ok.URL, &fakeCleaner{err: errors.New("quota")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeb(nil, tt.cleaner).Extract(context.Background(), Ref{Origin: tt.origin})

			var extErr *Error
			if !errors.As(err, &extErr) {
				t.Fatalf("err = %v, want *extract.Error", err)
			}
			if extErr.Kind != source.KindWeb || extErr.Origin != tt.origin {
				t.Errorf("error = %+v", extErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello  \n\n  world ", "hello world"},
		{"a  b\tc\n\n\nd", "a b\tc d"},
	}
	for _, tt := range tests {
		if got := collapseWhitespace(tt.in); got != tt.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
