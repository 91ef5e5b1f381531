package tts

import (
	"encoding/binary"
	"testing"
)

func TestParseWAVRoundTrip(t *testing.T) {
	pcm := make([]byte, 960)
	wav := PCMToWAV(pcm, 48000, 1, 2)

	f, err := ParseWAV(wav)
	if err != nil {
		t.Fatalf("ParseWAV: %v", err)
	}
	want := WAVFormat{SampleRate: 48000, Channels: 1, BitsPerSample: 16, DataLength: 960}
	if f != want {
		t.Errorf("ParseWAV = %+v, want %+v", f, want)
	}
}

func TestParseWAVSkipsExtraChunks(t *testing.T) {
	base := PCMToWAV([]byte{1, 2, 3, 4}, 22050, 2, 2)

	// Insert a LIST chunk with an odd size between fmt and data.
	list := []byte("LIST")
	list = binary.LittleEndian.AppendUint32(list, 3)
	list = append(list, 'a', 'b', 'c', 0)

	wav := append([]byte{}, base[:36]...)
	wav = append(wav, list...)
	wav = append(wav, base[36:]...)

	f, err := ParseWAV(wav)
	if err != nil {
		t.Fatalf("ParseWAV: %v", err)
	}
	if f.SampleRate != 22050 || f.Channels != 2 || f.DataLength != 4 {
		t.Errorf("ParseWAV = %+v", f)
	}
}

func TestParseWAVRejects(t *testing.T) {
	tests := map[string][]byte{
		"empty":         nil,
		"mp3":           []byte("ID3\x03\x00\x00\x00\x00\x00\x00\x00\x00"),
		"no data":       PCMToWAV(nil, 48000, 1, 2)[:36],
		"truncated fmt": append([]byte("RIFF\x00\x00\x00\x00WAVEfmt "), 16, 0, 0, 0, 1),
	}
	for name, b := range tests {
		if _, err := ParseWAV(b); err == nil {
			t.Errorf("%s: ParseWAV succeeded", name)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (&CanceledError{Reason: ReasonError, Details: "bad ssml"}).Error(); got != "speech synthesis canceled: Error: bad ssml" {
		t.Errorf("CanceledError = %q", got)
	}
	if got := (&CanceledError{Reason: ReasonCancelledByUser}).Error(); got != "speech synthesis canceled: CancelledByUser" {
		t.Errorf("CanceledError = %q", got)
	}
	if got := (&UnknownReasonError{Reason: "302"}).Error(); got != "unknown exit reason: 302" {
		t.Errorf("UnknownReasonError = %q", got)
	}
}
