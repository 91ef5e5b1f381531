// Package voice holds the fixed catalog of synthesis voices offered to users.
//
// The catalog maps the short display names shown in pickers (e.g. "Andrew")
// to Azure Speech HD voice identifiers. It is built once and never mutated.
package voice

import (
	"errors"
	"fmt"
)

// ErrUnknownVoice is returned when a display name is not in the catalog.
var ErrUnknownVoice = errors.New("unknown voice")

// Entry describes a single catalog voice.
type Entry struct {
	// Name is the display name used in pickers and prompts.
	Name string `json:"name"`

	// ID is the synthesis-engine voice identifier placed in SSML.
	ID string `json:"id"`

	// Locales lists the BCP-47 locales the voice speaks natively.
	Locales []string `json:"locales"`
}

// Catalog is an immutable, ordered set of voices.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// defaultEntries is the shipped HD voice table. Order matters: the first two
// entries are the default picks for voice 1 and voice 2.
var defaultEntries = []Entry{
	{Name: "Andrew", ID: "en-US-Andrew:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Emma", ID: "en-US-Emma:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Andrew2", ID: "en-US-Andrew2:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Emma2", ID: "en-US-Emma2:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Ava", ID: "en-US-Ava:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Brian", ID: "en-US-Brian:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Aria", ID: "en-US-Aria:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Davis", ID: "en-US-Davis:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Jenny", ID: "en-US-Jenny:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Steffan", ID: "en-US-Steffan:DragonHDLatestNeural", Locales: []string{"en-US"}},
	{Name: "Xiaochen", ID: "zh-CN-Xiaochen:DragonHDLatestNeural", Locales: []string{"zh-CN"}},
	{Name: "Yunfan", ID: "zh-CN-Yunfan:DragonHDLatestNeural", Locales: []string{"zh-CN"}},
	{Name: "Masaru", ID: "ja-JP-Masaru:DragonHDLatestNeural", Locales: []string{"ja-JP"}},
	{Name: "Nanami", ID: "ja-JP-Nanami:DragonHDLatestNeural", Locales: []string{"ja-JP"}},
}

var defaultCatalog = New(defaultEntries)

// Default returns the shipped catalog.
func Default() *Catalog { return defaultCatalog }

// New builds a catalog from entries. Later duplicates of a name are ignored.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byName[e.Name]; dup {
			continue
		}
		e.Locales = append([]string(nil), e.Locales...)
		c.byName[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Resolve looks up a voice by display name.
func (c *Catalog) Resolve(name string) (Entry, error) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownVoice, name)
	}
	return c.entries[i], nil
}

// Names returns the display names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Defaults returns the default display names for voice 1 and voice 2.
func (c *Catalog) Defaults() (string, string) {
	switch len(c.entries) {
	case 0:
		return "", ""
	case 1:
		return c.entries[0].Name, c.entries[0].Name
	default:
		return c.entries[0].Name, c.entries[1].Name
	}
}
