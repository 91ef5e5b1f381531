// Package openai implements generator.Generator on Azure OpenAI.
//
// It uses the Chat Completions API for podcast scripts (structured JSON in
// standard mode, free text in bilingual mode) and for cleaning scraped web
// pages, and the Audio Transcription API (Whisper) for video soundtracks.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/nadzzz/duocast/internal/config"
	"github.com/nadzzz/duocast/internal/generator"
	"github.com/nadzzz/duocast/internal/script"
)

const (
	finishReasonStop   = "stop"
	finishReasonLength = "length"

	scriptTemperature  = 0.7
	cleanupTemperature = 0.3
	cleanupMaxTokens   = 8000
)

// Client talks to one Azure OpenAI resource.
type Client struct {
	chat  openai.Client
	audio openai.Client

	deployment              string
	transcriptionDeployment string
	schema                  *jsonschema.Schema
}

var _ generator.Generator = (*Client)(nil)

// New creates a client from config. Without an API key the default Azure
// credential chain is used. Every call is attempted exactly once.
// Extra options are applied to both the chat and audio clients.
func New(cfg config.OpenAIConfig, opts ...option.RequestOption) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("azure openai: endpoint is required")
	}

	var auth option.RequestOption
	if cfg.APIKey != "" {
		auth = azure.WithAPIKey(cfg.APIKey)
	} else {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("azure openai: creating credential: %w", err)
		}
		auth = azure.WithTokenCredential(cred)
	}

	schema, err := podcastSchema()
	if err != nil {
		return nil, err
	}

	newClient := func(apiVersion string) openai.Client {
		all := append([]option.RequestOption{
			azure.WithEndpoint(cfg.Endpoint, apiVersion),
			auth,
			option.WithMaxRetries(0),
		}, opts...)
		return openai.NewClient(all...)
	}

	return &Client{
		chat:                    newClient(cfg.APIVersion),
		audio:                   newClient(cfg.TranscriptionAPIVersion),
		deployment:              cfg.Deployment,
		transcriptionDeployment: cfg.TranscriptionDeployment,
		schema:                  schema,
	}, nil
}

// GenerateStandard requests a structured podcast script.
func (c *Client) GenerateStandard(ctx context.Context, req generator.StandardRequest) (*script.Script, error) {
	params := c.chatParams(req.MaxTokens, scriptTemperature,
		openai.SystemMessage(standardSystemPrompt(req.Voice1, req.Voice2)),
		openai.UserMessage(standardUserPrompt(req.Title, req.Document)),
	)
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        schemaName,
				Description: param.NewOpt(schemaDescription),
				Schema:      c.schema,
				Strict:      param.NewOpt(true),
			},
		},
	}

	content, _, err := c.complete(ctx, params)
	if err != nil {
		return nil, &generator.Error{Mode: generator.ModeStandard, Err: err}
	}

	s, err := decodeScript(content)
	if err != nil {
		return nil, &generator.Error{Mode: generator.ModeStandard, Err: err}
	}

	slog.Debug("standard script generated", "turns", len(s.Turns), "language", s.Config.Language)
	return s, nil
}

// GenerateBilingual requests a three-part lesson and classifies its lines.
func (c *Client) GenerateBilingual(ctx context.Context, req generator.BilingualRequest) (*script.Script, error) {
	params := c.chatParams(req.MaxTokens, scriptTemperature,
		openai.SystemMessage(bilingualPrompt),
		openai.UserMessage(bilingualUserPrompt(req.Document)),
	)

	content, _, err := c.complete(ctx, params)
	if err != nil {
		return nil, &generator.Error{Mode: generator.ModeBilingual, Err: err}
	}

	s, err := script.ParseBilingual(content)
	if err != nil {
		return nil, err
	}

	slog.Debug("bilingual script generated", "turns", len(s.Turns), "output_length", len(content))
	return s, nil
}

// Clean rewrites scraped page text as markdown, keeping only the main
// article. A response cut off by the token limit is still returned.
func (c *Client) Clean(ctx context.Context, text string) (string, error) {
	params := c.chatParams(cleanupMaxTokens, cleanupTemperature,
		openai.SystemMessage(cleanupPrompt),
		openai.UserMessage(text),
	)

	content, reason, err := c.complete(ctx, params)
	if err != nil {
		return "", fmt.Errorf("cleaning page: %w", err)
	}
	if reason == finishReasonLength {
		slog.Warn("page cleanup truncated", "input_length", len(text))
	}
	return content, nil
}

// Transcribe sends audio to the transcription deployment and returns the text.
func (c *Client) Transcribe(ctx context.Context, filename string, r io.Reader) (string, error) {
	resp, err := c.audio.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(r, filename, ""),
		Model: openai.AudioModel(c.transcriptionDeployment),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}

	slog.Debug("transcription complete", "text_length", len(resp.Text))
	return resp.Text, nil
}

func (c *Client) chatParams(maxTokens int, temperature float64, msgs ...openai.ChatCompletionMessageParamUnion) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.deployment),
		Messages:    msgs,
		Temperature: param.NewOpt(temperature),
	}
	if maxTokens > 0 {
		params.MaxTokens = param.NewOpt(int64(maxTokens))
	}
	return params
}

// complete runs one chat completion and returns the first choice's content
// and finish reason. Refusals, filtered output and empty answers are errors.
func (c *Client) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, string, error) {
	resp, err := c.chat.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", "", err
	}
	if len(resp.Choices) == 0 {
		return "", "", errors.New("no choices returned from chat API")
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return "", "", fmt.Errorf("request refused: %s", choice.Message.Refusal)
	}
	if choice.FinishReason != finishReasonStop && choice.FinishReason != finishReasonLength {
		return "", "", fmt.Errorf("unexpected finish reason: %s", choice.FinishReason)
	}
	if choice.Message.Content == "" {
		return "", "", errors.New("empty completion")
	}

	slog.Debug("chat completion",
		"deployment", c.deployment,
		"finish_reason", choice.FinishReason,
		"total_tokens", resp.Usage.TotalTokens,
	)
	return choice.Message.Content, choice.FinishReason, nil
}
