package script

import "strings"

// sectionRule switches the current section when a line contains any marker.
type sectionRule struct {
	markers []string
	section Section
}

// sectionRules are checked in order; header lines are consumed.
var sectionRules = []sectionRule{
	{markers: []string{"Part 1:", "Summary Discussion"}, section: SectionSummary},
	{markers: []string{"Part 2:", "Language Focus"}, section: SectionLanguageFocus},
	{markers: []string{"Part 3:", "Discussion Questions"}, section: SectionQuestions},
}

// speakerPrefix maps a line prefix to the speaker name it introduces.
type speakerPrefix struct {
	prefix string
	name   string
}

var speakerPrefixes = []speakerPrefix{
	{prefix: "Host 1:", name: "Host 1"},
	{prefix: "Host 2:", name: "Host 2"},
}

// ParseBilingual converts free-text bilingual lesson output into a script.
//
// Lines containing a section header marker switch the current section and
// are dropped. Lines starting with a recognized host prefix become turns
// tagged with the current section. Everything else is ignored. The locale is
// always DefaultLanguage. ErrEmptyScript is returned when no line starts with
// a host prefix.
func ParseBilingual(text string) (*Script, error) {
	var (
		turns   []Turn
		current = SectionNone
	)

lines:
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		for _, rule := range sectionRules {
			if containsAny(line, rule.markers) {
				current = rule.section
				continue lines
			}
		}

		for _, sp := range speakerPrefixes {
			if strings.HasPrefix(line, sp.prefix) {
				turns = append(turns, Turn{
					Name:    sp.name,
					Message: strings.TrimSpace(strings.TrimPrefix(line, sp.prefix)),
					Section: current,
				})
				break
			}
		}
	}

	if len(turns) == 0 {
		return nil, ErrEmptyScript
	}
	return &Script{
		Config: Config{Language: DefaultLanguage},
		Turns:  turns,
	}, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
