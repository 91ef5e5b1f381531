// Package podcast runs the end-to-end pipeline: sources are extracted and
// aggregated into a session, then a script is generated, rendered to SSML
// and synthesized into a single WAV file.
//
// Every action either completes or fails as a whole. A failed action leaves
// the session as it was, and no partial audio is ever returned.
package podcast

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nadzzz/duocast/internal/extract"
	"github.com/nadzzz/duocast/internal/generator"
	"github.com/nadzzz/duocast/internal/script"
	"github.com/nadzzz/duocast/internal/source"
	"github.com/nadzzz/duocast/internal/ssml"
	"github.com/nadzzz/duocast/internal/tts"
	"github.com/nadzzz/duocast/internal/voice"
)

// Token limits accepted for generation requests.
const (
	MinTokens = 1000
	MaxTokens = 6000
)

// DefaultTitle is used when a standard request has no title.
const DefaultTitle = "AI in Action"

var (
	// ErrNoSources is returned when generating from an empty session.
	ErrNoSources = errors.New("no sources added")

	// ErrUnknownMode is returned for an unsupported generation mode.
	ErrUnknownMode = errors.New("unknown podcast mode")

	// ErrUnknownKind is returned when no extractor handles a source kind.
	ErrUnknownKind = errors.New("unsupported source kind")
)

// Request configures one generation.
type Request struct {
	Mode generator.Mode

	// Title is used in standard mode only.
	Title string

	// Voice1 and Voice2 are catalog display names. Empty selects the
	// catalog defaults.
	Voice1 string
	Voice2 string

	// MaxTokens of 0 selects the session's suggested budget. Other values
	// are clamped to [MinTokens, MaxTokens].
	MaxTokens int
}

// Result is a finished podcast.
type Result struct {
	Script      *script.Script
	Markup      ssml.Document
	Audio       []byte
	ContentType string
	SampleRate  int
	MaxTokens   int
}

// AudioBase64 returns the audio as standard base64.
func (r *Result) AudioBase64() string {
	return base64.StdEncoding.EncodeToString(r.Audio)
}

// Service wires extractors, the script generator and the synthesizer.
type Service struct {
	extractors   map[source.Kind]extract.Extractor
	generator    generator.Generator
	synthesizer  tts.Synthesizer
	catalog      *voice.Catalog
	defaultTitle string
	now          func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithDefaultTitle sets the title used when a request has none.
func WithDefaultTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.defaultTitle = title
		}
	}
}

// WithClock replaces time.Now for source timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCatalog replaces the default voice catalog.
func WithCatalog(c *voice.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// New creates a service. Extractors are keyed by their Kind.
func New(gen generator.Generator, synth tts.Synthesizer, extractors []extract.Extractor, opts ...Option) *Service {
	s := &Service{
		extractors:   make(map[source.Kind]extract.Extractor, len(extractors)),
		generator:    gen,
		synthesizer:  synth,
		catalog:      voice.Default(),
		defaultTitle: DefaultTitle,
		now:          time.Now,
	}
	for _, e := range extractors {
		s.extractors[e.Kind()] = e
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the voice catalog in use.
func (s *Service) Catalog() *voice.Catalog { return s.catalog }

// AddSource extracts ref and appends the result to the session.
func (s *Service) AddSource(ctx context.Context, sess *source.Session, kind source.Kind, ref extract.Ref) (source.Item, error) {
	logger := slog.With("session_id", sess.ID, "kind", kind, "origin", ref.Origin)

	ex, ok := s.extractors[kind]
	if !ok {
		return source.Item{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	start := time.Now()
	doc, err := ex.Extract(ctx, ref)
	if err != nil {
		logger.Error("source extraction failed", "error", err)
		return source.Item{}, err
	}

	item := source.Item{
		Kind:       kind,
		Origin:     ref.Origin,
		Content:    doc.Markdown,
		CapturedAt: s.now(),
	}
	if err := sess.Add(item); err != nil {
		return source.Item{}, err
	}

	logger.Info("source added",
		"title", doc.Title,
		"pages", doc.Pages,
		"length", len(doc.Markdown),
		"sources", sess.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return item, nil
}

// RemoveSource drops the item at index.
func (s *Service) RemoveSource(sess *source.Session, index int) error {
	if err := sess.Remove(index); err != nil {
		return err
	}
	slog.Info("source removed", "session_id", sess.ID, "index", index, "sources", sess.Len())
	return nil
}

// Generate produces a podcast from every source in the session.
func (s *Service) Generate(ctx context.Context, sess *source.Session, req Request) (*Result, error) {
	start := time.Now()

	mode := req.Mode
	if mode == "" {
		mode = generator.ModeStandard
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	v1, v2, err := s.resolveVoices(req.Voice1, req.Voice2)
	if err != nil {
		return nil, err
	}

	if sess.Len() == 0 {
		return nil, ErrNoSources
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = sess.SuggestedTokenBudget()
	}
	maxTokens = min(max(maxTokens, MinTokens), MaxTokens)

	logger := slog.With("session_id", sess.ID, "mode", mode, "voice_1", v1.Name, "voice_2", v2.Name)
	logger.Info("generation started", "sources", sess.Len(), "max_tokens", maxTokens)

	document := sess.CombinedDocument()
	var sc *script.Script
	switch mode {
	case generator.ModeBilingual:
		sc, err = s.generator.GenerateBilingual(ctx, generator.BilingualRequest{
			Document:  document,
			Voice1:    v1.Name,
			Voice2:    v2.Name,
			MaxTokens: maxTokens,
		})
	default:
		title := req.Title
		if title == "" {
			title = s.defaultTitle
		}
		sc, err = s.generator.GenerateStandard(ctx, generator.StandardRequest{
			Document:  document,
			Title:     title,
			Voice1:    v1.Name,
			Voice2:    v2.Name,
			MaxTokens: maxTokens,
		})
	}
	if err != nil {
		logger.Error("script generation failed", "error", err)
		return nil, err
	}
	sc.Voice1, sc.Voice2 = v1.ID, v2.ID
	logger.Info("script generated", "turns", len(sc.Turns), "language", sc.Config.Language)

	markup := ssml.Assemble(sc)
	logger.Debug("markup assembled", "length", len(markup))

	audio, err := s.synthesizer.Synthesize(ctx, markup)
	if err != nil {
		logger.Error("speech synthesis failed", "error", err)
		return nil, err
	}

	logger.Info("podcast generated",
		"audio_bytes", len(audio.Audio),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &Result{
		Script:      sc,
		Markup:      markup,
		Audio:       audio.Audio,
		ContentType: audio.ContentType,
		SampleRate:  audio.SampleRate,
		MaxTokens:   maxTokens,
	}, nil
}

func (s *Service) resolveVoices(name1, name2 string) (voice.Entry, voice.Entry, error) {
	d1, d2 := s.catalog.Defaults()
	if name1 == "" {
		name1 = d1
	}
	if name2 == "" {
		name2 = d2
	}
	v1, err := s.catalog.Resolve(name1)
	if err != nil {
		return voice.Entry{}, voice.Entry{}, err
	}
	v2, err := s.catalog.Resolve(name2)
	if err != nil {
		return voice.Entry{}, voice.Entry{}, err
	}
	return v1, v2, nil
}
