package podcast

import (
	"errors"
	"fmt"

	"github.com/nadzzz/duocast/internal/extract"
	"github.com/nadzzz/duocast/internal/generator"
	"github.com/nadzzz/duocast/internal/script"
	"github.com/nadzzz/duocast/internal/source"
	"github.com/nadzzz/duocast/internal/tts"
	"github.com/nadzzz/duocast/internal/voice"
)

// Describe turns a pipeline error into a message for the end user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		extErr      *extract.Error
		genErr      *generator.Error
		canceledErr *tts.CanceledError
		unknownErr  *tts.UnknownReasonError
	)
	switch {
	case errors.As(err, &extErr):
		switch extErr.Kind {
		case source.KindWeb:
			return fmt.Sprintf("Error processing URL: %v", extErr.Err)
		case source.KindVideo:
			return fmt.Sprintf("Error processing Bilibili video: %v", extErr.Err)
		default:
			return fmt.Sprintf("Error processing document: %v", extErr.Err)
		}
	case errors.Is(err, source.ErrIndexOutOfRange):
		return "There is no source at that position."
	case errors.Is(err, source.ErrEmptyContent):
		return "The source has no text content."
	case errors.Is(err, source.ErrSessionNotFound):
		return "Session not found."
	case errors.Is(err, ErrNoSources):
		return "Add at least one source before generating a podcast."
	case errors.Is(err, ErrUnknownMode), errors.Is(err, ErrUnknownKind):
		return capitalize(err.Error()) + "."
	case errors.Is(err, voice.ErrUnknownVoice):
		return fmt.Sprintf("Error generating podcast: %v", err)
	case errors.As(err, &genErr):
		return fmt.Sprintf("Error generating podcast: %v", genErr.Err)
	case errors.Is(err, script.ErrEmptyScript):
		return "Error generating English learning podcast: No valid script content generated"
	case errors.As(err, &canceledErr):
		return fmt.Sprintf("Error generating podcast: %v", canceledErr)
	case errors.As(err, &unknownErr):
		return fmt.Sprintf("Error generating podcast: %v", unknownErr)
	}
	return fmt.Sprintf("Error: %v", err)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
