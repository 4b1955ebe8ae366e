package chattemplate

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/samcharles93/chatfmt/internal/logger"
)

func TestBuiltinRegistryHasNoDuplicates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRegistry(Builtin(), WithLogger(logger.JSON(&buf, slog.LevelDebug)))
	if r.Duplicates() != 0 {
		t.Fatalf("expected no duplicates, got %d: %s", r.Duplicates(), buf.String())
	}

	names := r.Names()
	if len(names) != len(Builtin()) {
		t.Fatalf("expected %d names, got %d", len(Builtin()), len(names))
	}
	if names[0] != "chatml" {
		t.Fatalf("expected chatml first, got %q", names[0])
	}
	if len(r.Descriptions()) != len(names) {
		t.Fatalf("descriptions and names differ in length: %d vs %d", len(r.Descriptions()), len(names))
	}
	for _, name := range names {
		v, err := r.Lookup(name)
		if err != nil {
			t.Fatalf("lookup %q: %v", name, err)
		}
		if got, ok := r.NameForDescription(v.Description); !ok || got != name {
			t.Fatalf("description %q maps to %q, want %q", v.Description, got, name)
		}
	}
}

func TestRegistryDuplicateNameKeepsFirst(t *testing.T) {
	t.Parallel()

	first := Variant{Name: "dup", Description: "first", Stop: stops("A")}
	second := Variant{Name: "dup", Description: "second", Stop: stops("B")}

	var buf bytes.Buffer
	r := NewRegistry([]Variant{chatML(), first, second}, WithLogger(logger.JSON(&buf, slog.LevelInfo)))

	if r.Duplicates() != 1 {
		t.Fatalf("expected 1 duplicate, got %d", r.Duplicates())
	}
	v, err := r.Lookup("dup")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if v.Description != "first" {
		t.Fatalf("duplicate overwrote first registrant: %q", v.Description)
	}
	if _, ok := r.NameForDescription("second"); ok {
		t.Fatalf("rejected variant should not register its description")
	}
	out := buf.String()
	if !strings.Contains(out, "duplicate chat template registration") || !strings.Contains(out, `"kind":"name"`) {
		t.Fatalf("expected duplicate diagnostic in log, got: %s", out)
	}
	if !strings.Contains(out, `"level":"ERROR"`) {
		t.Fatalf("expected error level diagnostic, got: %s", out)
	}
}

func TestRegistryDuplicateKeys(t *testing.T) {
	t.Parallel()

	a := Variant{
		Name:            "a",
		Description:     "same",
		NameMatches:     []string{"shared"},
		TemplateMatches: []string{"{{ tpl }}"},
	}
	b := Variant{
		Name:            "b",
		Description:     "same",
		NameMatches:     []string{"shared", "own"},
		TemplateMatches: []string{"  {{ tpl }}\n"},
	}
	r := NewRegistry([]Variant{chatML(), a, b})

	if r.Duplicates() != 3 {
		t.Fatalf("expected 3 duplicates (description, name match, template match), got %d", r.Duplicates())
	}
	if name, _ := r.MatchName("shared"); name != "a" {
		t.Fatalf("first registrant should own name match, got %q", name)
	}
	if name, _ := r.MatchName("own"); name != "b" {
		t.Fatalf("non-colliding key should still register, got %q", name)
	}
	if name, _ := r.MatchTemplate("{{ tpl }}"); name != "a" {
		t.Fatalf("first registrant should own template match, got %q", name)
	}
	if _, err := r.Lookup("b"); err != nil {
		t.Fatalf("variant with colliding keys should still be registered: %v", err)
	}

	names, descs := r.Names(), r.Descriptions()
	if len(names) != len(descs) {
		t.Fatalf("names and descriptions out of step: %q vs %q", names, descs)
	}
	if names[2] != "b" || descs[2] != "same" {
		t.Fatalf("description not aligned with its variant: %q / %q", names[2], descs[2])
	}
	if name, _ := r.NameForDescription("same"); name != "a" {
		t.Fatalf("first registrant should own description, got %q", name)
	}
}

func TestRegistryLookupReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Builtin())
	msgs := []Message{{Role: "system", Content: "S"}, {Role: "user", Content: "Hi"}}
	before, err := r.ComputePrompt("chatml", msgs, "user", "assistant", false)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	v, err := r.Lookup("chatml")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	v.SystemPrefix = "changed"
	v.NameMatches[0] = "changed"
	v.Stop("a", "b")[0] = "X"

	after, err := r.ComputePrompt("chatml", msgs, "user", "assistant", false)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if after != before {
		t.Fatalf("registry prompt changed through a looked-up variant\n got: %q\nwant: %q", after, before)
	}
	again, _ := r.Lookup("chatml")
	if again.NameMatches[0] == "changed" {
		t.Fatalf("name matches shared with a looked-up variant")
	}
	got, _ := r.StopSequences("chatml", "a", "b")
	if len(got) == 0 || got[0] != "<|im_start|>" {
		t.Fatalf("stop strings shared with a looked-up variant: %q", got)
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Builtin())
	_, err := r.Lookup("no-such-template")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if !strings.Contains(err.Error(), "no-such-template") {
		t.Fatalf("error should name the variant: %v", err)
	}
	if _, err := r.StopSequences("no-such-template", "u", "a"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant from StopSequences, got %v", err)
	}
	if _, err := r.ComputePrompt("no-such-template", []Message{{Role: "user", Content: "x"}}, "u", "a", true); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant from ComputePrompt, got %v", err)
	}
	if _, err := r.LookupDescription("nope"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant from LookupDescription, got %v", err)
	}
}

func TestRegistryLookupDescription(t *testing.T) {
	t.Parallel()

	v, err := NewRegistry(Builtin()).LookupDescription("google gemma")
	if err != nil {
		t.Fatalf("lookup description: %v", err)
	}
	if v.Name != "gemma" || v.SystemPromptSupported() {
		t.Fatalf("unexpected variant %q (system supported=%v)", v.Name, v.SystemPromptSupported())
	}
}

func TestRegistryFallback(t *testing.T) {
	t.Parallel()

	if got := NewRegistry(Builtin()).Fallback(); got != DefaultFallback {
		t.Fatalf("expected default fallback %q, got %q", DefaultFallback, got)
	}
	if got := NewRegistry(Builtin(), WithFallback("alpaca")).Fallback(); got != "alpaca" {
		t.Fatalf("expected configured fallback, got %q", got)
	}

	var buf bytes.Buffer
	r := NewRegistry(Builtin(), WithFallback("missing"), WithLogger(logger.JSON(&buf, slog.LevelInfo)))
	if r.Fallback() != DefaultFallback {
		t.Fatalf("unknown fallback should revert to %q, got %q", DefaultFallback, r.Fallback())
	}
	if !strings.Contains(buf.String(), "fallback chat template not registered") {
		t.Fatalf("expected fallback diagnostic, got: %s", buf.String())
	}
}

func TestRegistryNamesIsCopy(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Builtin())
	names := r.Names()
	names[0] = "mutated"
	if r.Names()[0] != "chatml" {
		t.Fatalf("Names exposed internal state")
	}
}

func TestRegistryIsolatedFromCallerVariants(t *testing.T) {
	t.Parallel()

	vs := Builtin()
	r := NewRegistry(vs)
	vs[0].NameMatches[0] = "mutated"
	vs[0].PromptPrefix = "mutated"

	if name, ok := r.MatchName("chatml-7b"); !ok || name != "chatml" {
		t.Fatalf("registry affected by caller mutation: %q %v", name, ok)
	}
	v, _ := r.Lookup("chatml")
	if v.PromptPrefix != "" {
		t.Fatalf("registry variant affected by caller mutation: %q", v.PromptPrefix)
	}
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	t.Parallel()

	if Default() != Default() {
		t.Fatalf("Default should return the same registry")
	}
	if Default().Duplicates() != 0 {
		t.Fatalf("default registry has duplicates")
	}
}
