package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/nadzzz/duocast/internal/config"
	"github.com/nadzzz/duocast/internal/extract"
	openaigen "github.com/nadzzz/duocast/internal/generator/openai"
	"github.com/nadzzz/duocast/internal/podcast"
	"github.com/nadzzz/duocast/internal/tts/azure"
)

// loadConfig reads, validates and applies the configuration.
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	config.SetupLogging(cfg.Logging)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService wires the generator, synthesizer and extractors from config.
func newService(cfg *config.Config) (*podcast.Service, error) {
	gen, err := openaigen.New(cfg.OpenAI)
	if err != nil {
		return nil, err
	}
	slog.Info("using Azure OpenAI",
		"deployment", cfg.OpenAI.Deployment,
		"transcription_deployment", cfg.OpenAI.TranscriptionDeployment)

	var speechOpts []azure.Option
	if cfg.Speech.Key == "" {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("azure speech: creating credential: %w", err)
		}
		speechOpts = append(speechOpts, azure.WithCredential(cred))
	}
	synth, err := azure.New(cfg.Speech, speechOpts...)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.Extract.Timeout}

	var cleaner extract.Cleaner
	if cfg.Extract.WebCleanup {
		cleaner = gen
	}

	extractors := []extract.Extractor{
		extract.NewWeb(client, cleaner),
		extract.NewVideo(&http.Client{}, gen),
		extract.NewFiles(cfg.Extract.MaxUploadSize),
	}

	return podcast.New(gen, synth, extractors,
		podcast.WithDefaultTitle(cfg.Generation.DefaultTitle),
	), nil
}
