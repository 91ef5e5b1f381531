package tts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// WAVFormat is the PCM layout read from a RIFF/WAVE header.
type WAVFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	DataLength    int
}

var errNotWAV = errors.New("not a RIFF/WAVE container")

// ParseWAV reads the fmt chunk of a RIFF/WAVE file. Chunks before "fmt " and
// between "fmt " and "data" are skipped.
func ParseWAV(b []byte) (WAVFormat, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return WAVFormat{}, errNotWAV
	}

	var (
		f      WAVFormat
		gotFmt bool
		pos    = 12
	)
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(b[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(b) {
				return WAVFormat{}, fmt.Errorf("short fmt chunk (%d bytes)", size)
			}
			if format := binary.LittleEndian.Uint16(b[body : body+2]); format != 1 {
				return WAVFormat{}, fmt.Errorf("unsupported audio format %d", format)
			}
			f.Channels = int(binary.LittleEndian.Uint16(b[body+2 : body+4]))
			f.SampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			f.BitsPerSample = int(binary.LittleEndian.Uint16(b[body+14 : body+16]))
			gotFmt = true
		case "data":
			if !gotFmt {
				return WAVFormat{}, errors.New("data chunk before fmt chunk")
			}
			f.DataLength = min(size, len(b)-body)
			return f, nil
		}
		pos = body + size + size%2
	}
	if !gotFmt {
		return WAVFormat{}, errors.New("missing fmt chunk")
	}
	return WAVFormat{}, errors.New("missing data chunk")
}

// PCMToWAV wraps raw little-endian PCM data in a WAV container.
func PCMToWAV(pcm []byte, sampleRate, channels, bytesPerSample int) []byte {
	dataLen := len(pcm)
	fileLen := 36 + dataLen // 44-byte header minus 8 bytes for RIFF header = 36

	buf := &bytes.Buffer{}
	buf.Grow(44 + dataLen)

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(fileLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bytesPerSample))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels*bytesPerSample))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bytesPerSample*8))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(pcm)

	return buf.Bytes()
}
