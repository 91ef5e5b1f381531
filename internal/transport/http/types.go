package http

import (
	"time"

	"github.com/nadzzz/duocast/internal/script"
	"github.com/nadzzz/duocast/internal/source"
)

// Voice is one selectable voice.
type Voice struct {
	Name    string   `json:"name" example:"Andrew"`
	ID      string   `json:"id" example:"en-US-Andrew:DragonHDLatestNeural"`
	Locales []string `json:"locales"`
}

// VoicesResponse lists the voice catalog.
type VoicesResponse struct {
	Voices        []Voice `json:"voices"`
	DefaultVoice1 string  `json:"default_voice_1" example:"Andrew"`
	DefaultVoice2 string  `json:"default_voice_2" example:"Emma"`
}

// Source describes one source in a session.
type Source struct {
	Index      int         `json:"index"`
	Kind       source.Kind `json:"kind" example:"web"`
	Origin     string      `json:"origin" example:"https://example.com/article"`
	Content    string      `json:"content"`
	CapturedAt time.Time   `json:"captured_at"`
}

// SessionResponse is a session and its sources in order.
type SessionResponse struct {
	ID                 string    `json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	Sources            []Source  `json:"sources"`
	SuggestedMaxTokens int       `json:"suggested_max_tokens" example:"3000"`
}

// SourceResponse reports a newly added source.
type SourceResponse struct {
	Source             Source `json:"source"`
	Sources            int    `json:"sources" example:"1"`
	SuggestedMaxTokens int    `json:"suggested_max_tokens" example:"3000"`
}

// WebSourceRequest adds a web page.
type WebSourceRequest struct {
	URL string `json:"url" example:"https://example.com/article"`
}

// VideoSourceRequest adds a Bilibili video by BV ID or URL.
type VideoSourceRequest struct {
	BVID string `json:"bvid" example:"BV1GJ411x7h7"`
}

// GenerateRequest configures podcast generation. All fields are optional.
type GenerateRequest struct {
	Mode      string `json:"mode,omitempty" enums:"standard,bilingual" example:"standard"`
	Title     string `json:"title,omitempty" example:"AI in Action"`
	Voice1    string `json:"voice_1,omitempty" example:"Andrew"`
	Voice2    string `json:"voice_2,omitempty" example:"Emma"`
	MaxTokens int    `json:"max_tokens,omitempty" example:"4000"`
}

// PodcastResponse is the JSON form of a generated podcast.
type PodcastResponse struct {
	Script      *script.Script `json:"script"`
	SSML        string         `json:"ssml"`
	Audio       string         `json:"audio"` // base64
	ContentType string         `json:"content_type" example:"audio/wav"`
	SampleRate  int            `json:"sample_rate" example:"48000"`
	MaxTokens   int            `json:"max_tokens" example:"3000"`
}

// ErrorResponse carries a human-readable failure message.
type ErrorResponse struct {
	Error string `json:"error" example:"Add at least one source before generating a podcast."`
}

func sourceView(index int, item source.Item) Source {
	return Source{
		Index:      index,
		Kind:       item.Kind,
		Origin:     item.Origin,
		Content:    item.Content,
		CapturedAt: item.CapturedAt,
	}
}

func sessionResponse(sess *source.Session) SessionResponse {
	resp := SessionResponse{
		ID:                 sess.ID,
		CreatedAt:          sess.CreatedAt,
		Sources:            []Source{},
		SuggestedMaxTokens: sess.SuggestedTokenBudget(),
	}
	for i, item := range sess.Items() {
		resp.Sources = append(resp.Sources, sourceView(i, item))
	}
	return resp
}
