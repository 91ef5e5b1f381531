// Package azure implements the tts.Synthesizer interface against the Azure
// Speech text-to-speech REST API.
//
// Requests carry the full SSML document and ask for 48 kHz 16-bit mono PCM
// in a RIFF container. Authentication uses either a subscription key or an
// Entra ID token scoped to Cognitive Services.
package azure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/nadzzz/duocast/internal/config"
	"github.com/nadzzz/duocast/internal/ssml"
	"github.com/nadzzz/duocast/internal/tts"
)

const (
	// OutputFormat is the Azure name for 48 kHz 16-bit mono PCM in RIFF.
	OutputFormat = "riff-48khz-16bit-mono-pcm"

	tokenScope = "https://cognitiveservices.azure.com/.default"
	userAgent  = "duocast"
)

// Synthesizer renders SSML through Azure Speech.
type Synthesizer struct {
	endpoint   string
	key        string
	resourceID string
	cred       azcore.TokenCredential
	client     *http.Client
}

// Option customizes a Synthesizer.
type Option func(*Synthesizer)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Synthesizer) { s.client = c }
}

// WithCredential sets the Entra ID credential used when no key is configured.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(s *Synthesizer) { s.cred = cred }
}

// New creates a synthesizer from config. A key takes precedence over token
// auth; token auth needs both a resource ID and a credential.
func New(cfg config.SpeechConfig, opts ...Option) (*Synthesizer, error) {
	s := &Synthesizer{
		endpoint:   cfg.Endpoint,
		key:        cfg.Key,
		resourceID: cfg.ResourceID,
		client:     &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.endpoint == "" {
		if cfg.Region == "" {
			return nil, errors.New("azure speech: region is required")
		}
		s.endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", cfg.Region)
	}
	if s.key == "" && (s.resourceID == "" || s.cred == nil) {
		return nil, errors.New("azure speech: a key or a resource ID with a credential is required")
	}
	return s, nil
}

// Synthesize posts the document and returns the WAV audio.
func (s *Synthesizer) Synthesize(ctx context.Context, doc ssml.Document) (*tts.SynthesizeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(doc.String()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", OutputFormat)
	req.Header.Set("User-Agent", userAgent)

	if err := s.authorize(ctx, req); err != nil {
		return nil, &tts.CanceledError{Reason: tts.ReasonError, Details: err.Error()}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &tts.CanceledError{Reason: tts.ReasonCancelledByUser, Details: ctx.Err().Error()}
		}
		return nil, &tts.CanceledError{Reason: tts.ReasonError, Details: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		details := fmt.Sprintf("status %d", resp.StatusCode)
		if msg := strings.TrimSpace(string(body)); msg != "" {
			details += ": " + msg
		}
		if cancelStatus(resp.StatusCode) {
			return nil, &tts.CanceledError{Reason: tts.ReasonError, Details: details}
		}
		return nil, &tts.UnknownReasonError{Reason: details}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &tts.CanceledError{Reason: tts.ReasonCancelledByUser, Details: ctx.Err().Error()}
		}
		return nil, &tts.CanceledError{Reason: tts.ReasonError, Details: fmt.Sprintf("reading audio: %v", err)}
	}

	format, err := tts.ParseWAV(audio)
	if err != nil {
		return nil, &tts.UnknownReasonError{Reason: fmt.Sprintf("unexpected audio payload: %v", err)}
	}

	slog.Debug("speech synthesized",
		"bytes", len(audio),
		"sample_rate", format.SampleRate,
		"channels", format.Channels,
	)
	return &tts.SynthesizeResult{
		Audio:         audio,
		ContentType:   "audio/wav",
		SampleRate:    format.SampleRate,
		Channels:      format.Channels,
		BitsPerSample: format.BitsPerSample,
	}, nil
}

// Close is a no-op for the REST synthesizer.
func (s *Synthesizer) Close() error { return nil }

func (s *Synthesizer) authorize(ctx context.Context, req *http.Request) error {
	if s.key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", s.key)
		return nil
	}
	tok, err := s.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{tokenScope}})
	if err != nil {
		return fmt.Errorf("acquiring token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer aad#"+s.resourceID+"#"+tok.Token)
	return nil
}

// cancelStatus reports whether the service rejected the request outright.
func cancelStatus(code int) bool {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}
