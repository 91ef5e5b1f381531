package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nadzzz/duocast/internal/script"
	"github.com/nadzzz/duocast/internal/voice"
)

func TestEncodeScript(t *testing.T) {
	s := &script.Script{
		Config: script.Config{Language: "en-US"},
		Turns: []script.Turn{
			{Name: "Andrew", Message: "Welcome back!"},
			{Name: "Emma", Message: "Glad to be here."},
		},
	}

	yml, err := encodeScript("out/script.yaml", s)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(yml), "language: en-US") || !strings.Contains(string(yml), "Welcome back!") {
		t.Errorf("yaml output = %s", yml)
	}

	js, err := encodeScript("script.json", s)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(js), `"language": "en-US"`) {
		t.Errorf("json output = %s", js)
	}
}

func TestPrintVoices(t *testing.T) {
	var buf bytes.Buffer
	printVoices(&buf, voice.Default())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(voice.Default().Entries()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(voice.Default().Entries()))
	}
	if !strings.HasPrefix(lines[0], "Andrew") || !strings.Contains(lines[0], "(default voice 1)") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "(default voice 2)") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "generate", "voices"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
