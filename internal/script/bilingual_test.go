package script

import (
	"errors"
	"testing"
)

const lesson = `Part 1: Content Summary
Host 1: "Today we're exploring an article about AI."
Host 2: (CN) 在开始之前，我想指出一些差异...

Part 2: Deep Dive Q&A
Host 2: (CN) 能具体解释一下作者的观点吗？
Some narration the model added
Host 1: The author's perspective is nuanced.
  Host 1: indented lines are not turns
Part 3: Key Takeaways
Host 1: Three key takeaways.
`

func TestParseBilingual(t *testing.T) {
	s, err := ParseBilingual(lesson)
	if err != nil {
		t.Fatalf("ParseBilingual: %v", err)
	}
	if s.Config.Language != "en-US" {
		t.Errorf("language = %q", s.Config.Language)
	}

	want := []Turn{
		{Name: "Host 1", Message: `"Today we're exploring an article about AI."`, Section: SectionSummary},
		{Name: "Host 2", Message: "(CN) 在开始之前，我想指出一些差异...", Section: SectionSummary},
		{Name: "Host 2", Message: "(CN) 能具体解释一下作者的观点吗？", Section: SectionLanguageFocus},
		{Name: "Host 1", Message: "The author's perspective is nuanced.", Section: SectionLanguageFocus},
		{Name: "Host 1", Message: "Three key takeaways.", Section: SectionQuestions},
	}
	if len(s.Turns) != len(want) {
		t.Fatalf("got %d turns, want %d: %+v", len(s.Turns), len(want), s.Turns)
	}
	for i := range want {
		if s.Turns[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, s.Turns[i], want[i])
		}
	}
}

func TestParseBilingualAlternateHeaders(t *testing.T) {
	text := "## Summary Discussion\nHost 1: a\n## Language Focus\nHost 2: b\n## Discussion Questions\nHost 1: c"
	s, err := ParseBilingual(text)
	if err != nil {
		t.Fatal(err)
	}
	got := []Section{s.Turns[0].Section, s.Turns[1].Section, s.Turns[2].Section}
	want := []Section{SectionSummary, SectionLanguageFocus, SectionQuestions}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turn %d section = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseBilingualHeaderLineIsNotATurn(t *testing.T) {
	s, err := ParseBilingual("Host 1: Part 1: is a header\nHost 2: real")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Turns) != 1 || s.Turns[0].Name != "Host 2" || s.Turns[0].Section != SectionSummary {
		t.Errorf("turns = %+v", s.Turns)
	}
}

func TestParseBilingualEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "Part 1:\nSpeaker 1: hello\nHost 3: nope"} {
		if _, err := ParseBilingual(text); !errors.Is(err, ErrEmptyScript) {
			t.Errorf("ParseBilingual(%q) error = %v, want ErrEmptyScript", text, err)
		}
	}
}
