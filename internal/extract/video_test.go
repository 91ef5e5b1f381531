package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/nadzzz/duocast/internal/source"
)

const testBVID = "BV1GJ411x7h7"

type fakeTranscriber struct {
	text     string
	err      error
	filename string
	audio    string
	staged   []os.DirEntry
	dir      string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, filename string, r io.Reader) (string, error) {
	f.filename = filename
	b, _ := io.ReadAll(r)
	f.audio = string(b)
	f.staged, _ = os.ReadDir(f.dir)
	return f.text, f.err
}

// bilibiliServer serves a video page whose player info points back at the
// server's /audio path.
func bilibiliServer(t *testing.T, page func(audioURL string) string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("GET /video/{bvid}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://www.bilibili.com" {
			t.Errorf("referer = %q", r.Header.Get("Referer"))
		}
		if r.PathValue("bvid") != testBVID {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, page(srv.URL+"/audio"))
	})
	mux.HandleFunc("GET /audio", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "AUDIO-BYTES")
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func videoPage(audioURL string) string {
	return fmt.Sprintf(`<html><head><title>fallback title</title></head><body>
<h1 title="Learning Go in 10 minutes" class="video-title">Learning Go in 10 minutes</h1>
<script>window.__playinfo__={"code":0,"data":{"dash":{"audio":[{"baseUrl":%q},{"baseUrl":"second"}]}}}</script>
</body></html>`, audioURL)
}

func TestVideoExtract(t *testing.T) {
	srv := bilibiliServer(t, videoPage)
	dir := t.TempDir()
	tr := &fakeTranscriber{text: "hello from the video", dir: dir}

	v := NewVideo(srv.Client(), tr, WithVideoBaseURL(srv.URL+"/video/"), WithTempDir(dir))
	doc, err := v.Extract(context.Background(), Ref{Origin: testBVID})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "# Learning Go in 10 minutes\n\n\nTranscript:\nhello from the video"
	if doc.Markdown != want {
		t.Errorf("markdown = %q, want %q", doc.Markdown, want)
	}
	if doc.Title != "Learning Go in 10 minutes" || doc.Pages != 1 {
		t.Errorf("doc = %+v", doc)
	}
	if tr.audio != "AUDIO-BYTES" || tr.filename != testBVID+".m4a" {
		t.Errorf("transcriber got %q as %q", tr.audio, tr.filename)
	}
	if len(tr.staged) != 1 || !strings.HasPrefix(tr.staged[0].Name(), testBVID) {
		t.Errorf("staged files during transcription = %v", tr.staged)
	}
	assertEmptyDir(t, dir)
}

func TestVideoExtractAcceptsURL(t *testing.T) {
	srv := bilibiliServer(t, videoPage)
	dir := t.TempDir()
	v := NewVideo(srv.Client(), &fakeTranscriber{text: "x", dir: dir}, WithVideoBaseURL(srv.URL+"/video"), WithTempDir(dir))

	if _, err := v.Extract(context.Background(), Ref{Origin: "https://www.bilibili.com/video/" + testBVID + "/?p=1"}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
}

func TestVideoExtractTranscriptionFailureRemovesTempFile(t *testing.T) {
	srv := bilibiliServer(t, videoPage)
	dir := t.TempDir()
	tr := &fakeTranscriber{err: errors.New("whisper unavailable"), dir: dir}

	v := NewVideo(srv.Client(), tr, WithVideoBaseURL(srv.URL+"/video"), WithTempDir(dir))
	_, err := v.Extract(context.Background(), Ref{Origin: testBVID})

	var extErr *Error
	if !errors.As(err, &extErr) || extErr.Kind != source.KindVideo {
		t.Fatalf("err = %v, want video *extract.Error", err)
	}
	if !strings.Contains(err.Error(), "whisper unavailable") {
		t.Errorf("err = %v", err)
	}
	if len(tr.staged) != 1 {
		t.Errorf("audio was not staged before transcription")
	}
	assertEmptyDir(t, dir)
}

func TestVideoExtractFailures(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		page    func(string) string
		wantErr error
	}{
		{"invalid id", "BV123", videoPage, ErrInvalidVideoID},
		{"unknown video", "BV1AAAAAAAAA", videoPage, nil},
		{"no player info", testBVID, func(string) string { return "<html><h1 title=\"t\"></h1></html>" }, nil},
		{"no audio stream", testBVID, func(string) string {
			return `<script>window.__playinfo__={"data":{"dash":{"audio":[]}}}</script>`
		}, nil},
		{"empty transcript", testBVID, videoPage, ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := bilibiliServer(t, tt.page)
			dir := t.TempDir()
			v := NewVideo(srv.Client(), &fakeTranscriber{text: "  ", dir: dir}, WithVideoBaseURL(srv.URL+"/video"), WithTempDir(dir))

			_, err := v.Extract(context.Background(), Ref{Origin: tt.origin})
			var extErr *Error
			if !errors.As(err, &extErr) {
				t.Fatalf("err = %v, want *extract.Error", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			assertEmptyDir(t, dir)
		})
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %v", entries)
	}
}
