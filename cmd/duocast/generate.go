package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nadzzz/duocast/internal/extract"
	"github.com/nadzzz/duocast/internal/generator"
	"github.com/nadzzz/duocast/internal/podcast"
	"github.com/nadzzz/duocast/internal/script"
	"github.com/nadzzz/duocast/internal/source"
)

type generateOptions struct {
	web       []string
	video     []string
	docs      []string
	mode      string
	title     string
	voice1    string
	voice2    string
	maxTokens int
	out       string
	scriptOut string
	ssmlOut   string
}

func newGenerateCmd(configFile *string) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a podcast from sources in one shot",
		Long: `Generate a podcast from one or more sources.

Sources are added in flag order: web pages first, then videos, then documents.

Examples:
  duocast generate --web https://example.com/post --out episode.wav
  duocast generate --doc notes.pdf --doc slides.docx --mode bilingual
  duocast generate --video BV1GJ411x7h7 --script-out script.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runGenerate(ctx, svc, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&opts.web, "web", nil, "web page URL (repeatable)")
	f.StringArrayVar(&opts.video, "video", nil, "Bilibili BV ID or video URL (repeatable)")
	f.StringArrayVar(&opts.docs, "doc", nil, "TXT, Markdown, PDF or DOCX file (repeatable)")
	f.StringVar(&opts.mode, "mode", string(generator.ModeStandard), "podcast mode: standard or bilingual")
	f.StringVar(&opts.title, "title", "", "podcast title (standard mode)")
	f.StringVar(&opts.voice1, "voice1", "", "voice for the first host")
	f.StringVar(&opts.voice2, "voice2", "", "voice for the second host")
	f.IntVar(&opts.maxTokens, "max-tokens", 0, "script token budget (0 picks one from the source count)")
	f.StringVarP(&opts.out, "out", "o", "podcast.wav", "audio output file")
	f.StringVar(&opts.scriptOut, "script-out", "", "write the script to this file (.yaml/.yml or .json)")
	f.StringVar(&opts.ssmlOut, "ssml-out", "", "write the synthesis markup to this file")

	return cmd
}

func runGenerate(ctx context.Context, svc *podcast.Service, opts *generateOptions) error {
	sess := source.NewSession(uuid.NewString())

	add := func(kind source.Kind, ref extract.Ref) error {
		infoColor.Printf("Adding %s source %s\n", kind, ref.Origin)
		if _, err := svc.AddSource(ctx, sess, kind, ref); err != nil {
			return errors.New(podcast.Describe(err))
		}
		return nil
	}

	for _, u := range opts.web {
		if err := add(source.KindWeb, extract.Ref{Origin: u}); err != nil {
			return err
		}
	}
	for _, v := range opts.video {
		if err := add(source.KindVideo, extract.Ref{Origin: v}); err != nil {
			return err
		}
	}
	for _, path := range opts.docs {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = add(source.KindDocument, extract.Ref{Origin: filepath.Base(path), Body: f})
		f.Close()
		if err != nil {
			return err
		}
	}

	infoColor.Printf("Generating %s podcast from %d source(s)\n", opts.mode, sess.Len())
	res, err := svc.Generate(ctx, sess, podcast.Request{
		Mode:      generator.Mode(opts.mode),
		Title:     opts.title,
		Voice1:    opts.voice1,
		Voice2:    opts.voice2,
		MaxTokens: opts.maxTokens,
	})
	if err != nil {
		return errors.New(podcast.Describe(err))
	}

	if err := saveToFile(opts.out, res.Audio); err != nil {
		return err
	}
	successColor.Printf("Podcast saved to %s (%d turns, %d bytes)\n", opts.out, len(res.Script.Turns), len(res.Audio))

	if opts.scriptOut != "" {
		data, err := encodeScript(opts.scriptOut, res.Script)
		if err != nil {
			return err
		}
		if err := saveToFile(opts.scriptOut, data); err != nil {
			return err
		}
		successColor.Printf("Script saved to %s\n", opts.scriptOut)
	}
	if opts.ssmlOut != "" {
		if err := saveToFile(opts.ssmlOut, []byte(res.Markup)); err != nil {
			return err
		}
		successColor.Printf("SSML saved to %s\n", opts.ssmlOut)
	}
	return nil
}

// encodeScript renders s as YAML for .yaml/.yml paths and as indented JSON
// otherwise.
func encodeScript(path string, s *script.Script) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding script: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("encoding script as YAML: %w", err)
		}
		return out, nil
	}
	return append(data, '\n'), nil
}

func saveToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
