// Package tts defines the interface for rendering SSML markup to audio.
//
// duocast synthesizes a whole podcast in one request: the synthesizer gets
// the complete document and returns the complete audio, or fails. There are
// no partial results.
package tts

import (
	"context"
	"fmt"

	"github.com/nadzzz/duocast/internal/ssml"
)

// Synthesizer converts an SSML document to audio.
type Synthesizer interface {
	// Synthesize renders the document. Failures are *CanceledError when the
	// engine canceled the request and *UnknownReasonError for any other
	// non-success outcome.
	Synthesize(ctx context.Context, doc ssml.Document) (*SynthesizeResult, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}

// SynthesizeResult holds the output of TTS synthesis.
type SynthesizeResult struct {
	// Audio is the synthesized audio as a WAV file.
	Audio []byte

	// ContentType is the MIME type of the audio (e.g., "audio/wav").
	ContentType string

	// SampleRate is the audio sample rate in Hz (e.g., 48000).
	SampleRate int

	// Channels is the number of audio channels (typically 1).
	Channels int

	// BitsPerSample is the PCM sample width (typically 16).
	BitsPerSample int
}

// Cancellation reasons reported in CanceledError.Reason.
const (
	ReasonError           = "Error"
	ReasonCancelledByUser = "CancelledByUser"
)

// CanceledError reports that the engine canceled synthesis.
type CanceledError struct {
	Reason  string
	Details string
}

func (e *CanceledError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("speech synthesis canceled: %s", e.Reason)
	}
	return fmt.Sprintf("speech synthesis canceled: %s: %s", e.Reason, e.Details)
}

// UnknownReasonError reports a completion that was neither success nor
// cancellation.
type UnknownReasonError struct {
	Reason string
}

func (e *UnknownReasonError) Error() string {
	return fmt.Sprintf("unknown exit reason: %s", e.Reason)
}
