package chattemplate

import (
	"reflect"
	"testing"
)

func TestStopSequencesDoubled(t *testing.T) {
	t.Parallel()

	for _, v := range Builtin() {
		got := v.StopSequences("user", "assistant")
		if len(got) == 0 {
			t.Fatalf("%s: no stop sequences", v.Name)
		}
		if len(got)%2 != 0 {
			t.Fatalf("%s: odd number of stop sequences: %q", v.Name, got)
		}
		seen := make(map[string]bool, len(got))
		for i := 0; i < len(got); i += 2 {
			if got[i+1] != "\n"+got[i] {
				t.Fatalf("%s: stop %q not followed by newline form, got %q", v.Name, got[i], got[i+1])
			}
		}
		for _, s := range got {
			if seen[s] {
				t.Fatalf("%s: duplicate stop %q in %q", v.Name, s, got)
			}
			seen[s] = true
		}
	}
}

func TestStopSequencesUseDisplayNames(t *testing.T) {
	t.Parallel()

	v := mustVariant(t, "phi")
	got := v.StopSequences("Alice", "Bob")
	want := []string{"Alice:", "\nAlice:", "Bob:", "\nBob:"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	same := v.StopSequences("Bob", "Bob")
	if !reflect.DeepEqual(same, []string{"Bob:", "\nBob:"}) {
		t.Fatalf("identical names should collapse to one pair, got %q", same)
	}
}

func TestStopSequencesChatML(t *testing.T) {
	t.Parallel()

	got := mustVariant(t, "chatml").StopSequences("user", "assistant")
	want := []string{"<|im_start|>", "\n<|im_start|>", "<|im_end|>", "\n<|im_end|>"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStopSequencesNilStop(t *testing.T) {
	t.Parallel()

	v := Variant{Name: "bare"}
	if got := v.StopSequences("a", "b"); len(got) != 0 {
		t.Fatalf("expected no stops, got %q", got)
	}
}

func TestTruncateAtStop(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		text    string
		stops   []string
		want    string
		stopped bool
	}{
		{name: "no-stop", text: "hello", stops: []string{"<|im_end|>"}, want: "hello"},
		{name: "earliest-wins", text: "a<|im_end|>b<|im_start|>", stops: []string{"<|im_start|>", "<|im_end|>"}, want: "a", stopped: true},
		{name: "newline-form", text: "answer\nUser: next", stops: []string{"User:", "\nUser:"}, want: "answer", stopped: true},
		{name: "empty-stop-ignored", text: "abc", stops: []string{""}, want: "abc"},
		{name: "stop-at-start", text: "</s>rest", stops: []string{"</s>"}, want: "", stopped: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, stopped := TruncateAtStop(tc.text, tc.stops)
			if got != tc.want || stopped != tc.stopped {
				t.Fatalf("got (%q, %v), want (%q, %v)", got, stopped, tc.want, tc.stopped)
			}
		})
	}
}
