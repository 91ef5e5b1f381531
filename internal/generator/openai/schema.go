package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/kaptinlin/jsonrepair"

	"github.com/nadzzz/duocast/internal/script"
)

const (
	schemaName        = "podcast"
	schemaDescription = "An AI generated podcast script."
)

// podcastOutput is the structured output requested in standard mode.
type podcastOutput struct {
	Config struct {
		Language string `json:"language" jsonschema:"Language code + locale (BCP-47), e.g. en-US or es-PA"`
	} `json:"config"`
	Script []struct {
		Name    string `json:"name" jsonschema:"Name of the host. Use the provided names, don't change the casing or name."`
		Message string `json:"message"`
	} `json:"script"`
}

// podcastSchema builds the strict response schema once.
func podcastSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[podcastOutput](&jsonschema.ForOptions{})
	if err != nil {
		return nil, fmt.Errorf("building podcast schema: %w", err)
	}
	return strictSchema(s), nil
}

// strictSchema rewrites a schema for structured outputs: every object
// forbids additional properties and lists all of its properties as required.
func strictSchema(m *jsonschema.Schema) *jsonschema.Schema {
	if m == nil {
		return nil
	}
	switch schemaType(m) {
	case "array":
		m.Items = strictSchema(m.Items)
	case "object":
		m.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
		for k, v := range m.Properties {
			m.Properties[k] = strictSchema(v)
		}
		m.Required = slices.Sorted(maps.Keys(m.Properties))
	}
	return m
}

// schemaType returns the non-null type of m. Slices and pointers are
// reported as ["null", T].
func schemaType(m *jsonschema.Schema) string {
	if m.Type != "" {
		return m.Type
	}
	for _, t := range m.Types {
		if t != "null" {
			return t
		}
	}
	return ""
}

// decodeScript parses the model's JSON content into a validated script.
// Slightly malformed JSON (truncated strings, trailing commas) is repaired
// before giving up.
func decodeScript(content string) (*script.Script, error) {
	var out podcastOutput
	err := json.Unmarshal([]byte(content), &out)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		repaired, rerr := jsonrepair.JSONRepair(content)
		if rerr != nil {
			return nil, fmt.Errorf("decoding script: %w", err)
		}
		err = json.Unmarshal([]byte(repaired), &out)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}

	s := &script.Script{Config: script.Config{Language: strings.TrimSpace(out.Config.Language)}}
	if s.Config.Language == "" {
		s.Config.Language = script.DefaultLanguage
	}
	for _, t := range out.Script {
		s.Turns = append(s.Turns, script.Turn{Name: t.Name, Message: t.Message})
	}
	if len(s.Turns) == 0 {
		return nil, script.ErrEmptyScript
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
