package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nadzzz/duocast/internal/source"
)

const (
	// DefaultVideoBaseURL is the Bilibili video page prefix.
	DefaultVideoBaseURL = "https://www.bilibili.com/video"

	videoReferer = "https://www.bilibili.com"
)

var (
	bvidPattern     = regexp.MustCompile(`BV[0-9A-Za-z]{10}`)
	playinfoPattern = regexp.MustCompile(`(?s)window\.__playinfo__=(.*?)</script>`)

	// ErrInvalidVideoID is returned when the origin holds no BV identifier.
	ErrInvalidVideoID = errors.New("invalid Bilibili video ID")
)

// playinfo is the subset of the embedded player state holding audio streams.
type playinfo struct {
	Data struct {
		Dash struct {
			Audio []struct {
				BaseURL string `json:"baseUrl"`
			} `json:"audio"`
		} `json:"dash"`
	} `json:"data"`
}

// Video transcribes the soundtrack of a Bilibili video.
type Video struct {
	client      *http.Client
	transcriber Transcriber
	baseURL     string
	tempDir     string
}

// VideoOption customizes a Video extractor.
type VideoOption func(*Video)

// WithVideoBaseURL overrides the video page prefix.
func WithVideoBaseURL(u string) VideoOption {
	return func(v *Video) { v.baseURL = strings.TrimRight(u, "/") }
}

// WithTempDir sets where downloaded audio is staged. Defaults to os.TempDir.
func WithTempDir(dir string) VideoOption {
	return func(v *Video) { v.tempDir = dir }
}

// NewVideo creates a video extractor.
func NewVideo(client *http.Client, transcriber Transcriber, opts ...VideoOption) *Video {
	if client == nil {
		client = http.DefaultClient
	}
	v := &Video{client: client, transcriber: transcriber, baseURL: DefaultVideoBaseURL}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Kind returns source.KindVideo.
func (v *Video) Kind() source.Kind { return source.KindVideo }

// Extract accepts a BV identifier or a video URL containing one.
func (v *Video) Extract(ctx context.Context, ref Ref) (*Document, error) {
	bvid := bvidPattern.FindString(ref.Origin)
	if bvid == "" {
		return nil, fail(source.KindVideo, ref.Origin, ErrInvalidVideoID)
	}

	doc, err := v.extract(ctx, bvid)
	if err != nil {
		return nil, fail(source.KindVideo, bvid, err)
	}
	return doc, nil
}

func (v *Video) extract(ctx context.Context, bvid string) (*Document, error) {
	page, err := v.get(ctx, v.baseURL+"/"+bvid)
	if err != nil {
		return nil, fmt.Errorf("fetching video page: %w", err)
	}
	defer page.Body.Close()

	html, err := io.ReadAll(io.LimitReader(page.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("reading video page: %w", err)
	}

	title := videoTitle(html)
	audioURL, err := audioStream(html)
	if err != nil {
		return nil, err
	}

	text, err := v.transcribe(ctx, bvid, audioURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	slog.Debug("video transcribed", "bvid", bvid, "title", title, "length", len(text))
	return &Document{
		Title:    title,
		Markdown: "# " + title + "\n\n" + "\nTranscript:\n" + text,
		Pages:    1,
	}, nil
}

// transcribe stages the audio stream in a temp file, which is removed on
// every path, and sends it to the transcriber.
func (v *Video) transcribe(ctx context.Context, bvid, audioURL string) (string, error) {
	resp, err := v.get(ctx, audioURL)
	if err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}
	defer resp.Body.Close()

	f, err := os.CreateTemp(v.tempDir, bvid+"-*.m4a")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		f.Close()
		if err := os.Remove(f.Name()); err != nil {
			slog.Warn("removing temp audio failed", "path", f.Name(), "error", err)
		}
	}()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding audio: %w", err)
	}

	text, err := v.transcriber.Transcribe(ctx, bvid+".m4a", f)
	if err != nil {
		return "", fmt.Errorf("transcribing audio: %w", err)
	}
	return text, nil
}

func (v *Video) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Referer", videoReferer)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp, nil
}

// videoTitle reads the title from the page heading, falling back to the
// Open Graph title and then the document title.
func videoTitle(html []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}
	if t, ok := doc.Find("h1[title]").First().Attr("title"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// audioStream returns the first DASH audio URL from the embedded player state.
func audioStream(html []byte) (string, error) {
	m := playinfoPattern.FindSubmatch(html)
	if m == nil {
		return "", errors.New("player info not found in video page")
	}

	var info playinfo
	if err := json.Unmarshal(m[1], &info); err != nil {
		return "", fmt.Errorf("decoding player info: %w", err)
	}
	if len(info.Data.Dash.Audio) == 0 || info.Data.Dash.Audio[0].BaseURL == "" {
		return "", errors.New("no audio stream in player info")
	}
	return info.Data.Dash.Audio[0].BaseURL, nil
}
