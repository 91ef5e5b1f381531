package voice

import (
	"errors"
	"slices"
	"testing"
)

func TestResolve(t *testing.T) {
	c := Default()

	e, err := c.Resolve("Andrew")
	if err != nil {
		t.Fatalf("Resolve(Andrew) error: %v", err)
	}
	if e.ID != "en-US-Andrew:DragonHDLatestNeural" {
		t.Errorf("Resolve(Andrew).ID = %q", e.ID)
	}

	if _, err := c.Resolve("andrew"); !errors.Is(err, ErrUnknownVoice) {
		t.Errorf("Resolve(andrew) error = %v, want ErrUnknownVoice", err)
	}
	if _, err := c.Resolve(""); !errors.Is(err, ErrUnknownVoice) {
		t.Errorf("Resolve(\"\") error = %v, want ErrUnknownVoice", err)
	}
}

func TestNamesStableOrder(t *testing.T) {
	c := Default()
	first := c.Names()
	second := c.Names()
	if !slices.Equal(first, second) {
		t.Fatalf("Names() not stable: %v vs %v", first, second)
	}
	if first[0] != "Andrew" || first[1] != "Emma" {
		t.Errorf("first names = %v, want Andrew, Emma", first[:2])
	}

	v1, v2 := c.Defaults()
	if v1 != "Andrew" || v2 != "Emma" {
		t.Errorf("Defaults() = %q, %q", v1, v2)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	c := New([]Entry{
		{Name: "A", ID: "id-a", Locales: []string{"en-US"}},
		{Name: "A", ID: "id-dup"},
		{Name: "B", ID: "id-b"},
	})

	if got := c.Names(); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("Names() = %v", got)
	}

	entries := c.Entries()
	entries[0].ID = "mutated"

	e, _ := c.Resolve("A")
	if e.ID != "id-a" {
		t.Errorf("catalog mutated through Entries(): ID = %q", e.ID)
	}

	names := c.Names()
	names[0] = "Z"
	if _, err := c.Resolve("A"); err != nil {
		t.Errorf("catalog mutated through Names(): %v", err)
	}
}

func TestDefaultsSmallCatalogs(t *testing.T) {
	if a, b := New(nil).Defaults(); a != "" || b != "" {
		t.Errorf("empty Defaults() = %q, %q", a, b)
	}
	if a, b := New([]Entry{{Name: "Solo", ID: "x"}}).Defaults(); a != "Solo" || b != "Solo" {
		t.Errorf("single Defaults() = %q, %q", a, b)
	}
}
