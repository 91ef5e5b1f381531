// Package ssml assembles a conversation script into a Speech Synthesis
// Markup Language document for a multi-voice synthesis engine.
//
// The output uses the Microsoft mstts extension for conversational styling.
// Assembly is a pure function: identical scripts produce byte-identical
// documents.
package ssml

import (
	"strings"

	"github.com/nadzzz/duocast/internal/script"
)

// Document is a complete, synthesizable SSML string.
type Document string

// String returns the markup.
func (d Document) String() string { return string(d) }

const (
	// DocumentLanguage is always declared on the root element; per-turn
	// language changes use <lang> spans instead.
	DocumentLanguage = "en-US"

	// SecondaryLanguage is the locale for (CN)-marked turns.
	SecondaryLanguage = "zh-CN"

	// SecondaryMarker flags a turn spoken in SecondaryLanguage.
	SecondaryMarker = "(CN)"

	secondaryRate = "0.95"
	turnPause     = "500ms"
	style         = "chat"

	header = `<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="http://www.w3.org/2001/mstts" xml:lang="` + DocumentLanguage + `">` + "\n"
	footer = `</speak>`
)

// Cue maps an inline cue token to the markup rendered in its place.
type Cue struct {
	Token  string
	Markup string
}

const (
	laugh   = `<break time="300ms"/> <say-as interpret-as="interjection">ha ha</say-as> <break time="200ms"/>`
	chuckle = `<break time="300ms"/> <say-as interpret-as="interjection">heh</say-as> <break time="200ms"/>`
)

// Cues is the cue token table. Tokens are matched case-sensitively.
var Cues = []Cue{
	{Token: "[laughter]", Markup: laugh},
	{Token: "[laughs]", Markup: laugh},
	{Token: "[chuckles]", Markup: chuckle},
}

var (
	cueReplacer  = newCueReplacer(Cues)
	textEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	markerRemove = strings.NewReplacer(SecondaryMarker, "")
)

// newCueReplacer builds a single-pass, left-to-right, non-overlapping replacer.
func newCueReplacer(cues []Cue) *strings.Replacer {
	pairs := make([]string, 0, 2*len(cues))
	for _, c := range cues {
		pairs = append(pairs, c.Token, c.Markup)
	}
	return strings.NewReplacer(pairs...)
}

// AssignVoices maps each distinct speaker to a voice. Speakers are taken in
// first-seen order; even positions get voice1 and odd positions voice2.
func AssignVoices(turns []script.Turn, voice1, voice2 string) map[string]string {
	speakers := script.Speakers(turns)
	voices := make(map[string]string, len(speakers))
	for i, name := range speakers {
		if i%2 == 0 {
			voices[name] = voice1
		} else {
			voices[name] = voice2
		}
	}
	return voices
}

// RenderText escapes a raw message, substitutes cue tokens and, when the
// message carries the secondary-language marker, strips it and wraps the
// result in a language span.
func RenderText(message string) (text string, secondary bool) {
	secondary = strings.Contains(message, SecondaryMarker)
	text = cueReplacer.Replace(textEscaper.Replace(message))
	if secondary {
		text = `<lang xml:lang="` + SecondaryLanguage + `">` + markerRemove.Replace(text) + `</lang>`
	}
	return text, secondary
}

// Assemble renders s into a document.
func Assemble(s *script.Script) Document {
	var b strings.Builder
	b.WriteString(header)

	voices := AssignVoices(s.Turns, s.Voice1, s.Voice2)
	for _, t := range s.Turns {
		writeTurn(&b, voices[t.Name], t.Message)
	}

	b.WriteString(footer)
	return Document(b.String())
}

func writeTurn(b *strings.Builder, voice, message string) {
	text, secondary := RenderText(message)

	b.WriteString(`<voice name="`)
	b.WriteString(attrEscaper.Replace(voice))
	b.WriteString(`"><mstts:express-as style="` + style + `">`)
	if secondary {
		b.WriteString(`<prosody rate="` + secondaryRate + `">`)
	}
	b.WriteString(text)
	b.WriteString(`<break time="` + turnPause + `"/>`)
	if secondary {
		b.WriteString(`</prosody>`)
	}
	b.WriteString("</mstts:express-as></voice>\n")
}
