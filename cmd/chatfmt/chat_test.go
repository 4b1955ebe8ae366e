package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
)

func newTestSession(t *testing.T, name string) *chatSession {
	t.Helper()
	reg := chattemplate.Default()
	v, err := reg.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %q: %v", name, err)
	}
	return &chatSession{registry: reg, variant: v, player: "user", ai: "assistant"}
}

func TestChatSessionBuildsConversation(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, "chatml")
	var out bytes.Buffer
	steps := []string{"/system S", "Hi", "/ai Hello", "/undo", "/ai Yo"}
	for _, line := range steps {
		if quit, err := s.handle(&out, line); err != nil || quit {
			t.Fatalf("%q: quit=%v err=%v", line, quit, err)
		}
	}

	out.Reset()
	if _, err := s.handle(&out, "/show"); err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "<|im_start|>system\nS<|im_end|>\n<|im_start|>user\nHi<|im_end|>\n<|im_start|>assistant\nYo<|im_end|>\n<|im_start|>assistant\n\n"
	if out.String() != want {
		t.Fatalf("prompt mismatch\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestChatSessionCommands(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, "chatml")
	var out bytes.Buffer

	if _, err := s.handle(&out, "/template gemma"); err != nil {
		t.Fatalf("template: %v", err)
	}
	if s.variant.Name != "gemma" || !strings.Contains(out.String(), "template gemma") {
		t.Fatalf("template not switched: %q", out.String())
	}

	if _, err := s.handle(&out, "/template nope"); !errors.Is(err, chattemplate.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := s.handle(&out, "/bogus"); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if _, err := s.handle(&out, "/show"); !errors.Is(err, chattemplate.ErrNoMessages) {
		t.Fatalf("show on empty conversation: %v", err)
	}

	out.Reset()
	if _, err := s.handle(&out, "/stop"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.HasPrefix(out.String(), `"<start_of_turn>"`) {
		t.Fatalf("unexpected stops %q", out.String())
	}

	_, _ = s.handle(&out, "Hi")
	_, _ = s.handle(&out, "/reset")
	if len(s.conversation()) != 0 {
		t.Fatalf("reset left %d messages", len(s.conversation()))
	}

	if quit, _ := s.handle(&out, "/quit"); !quit {
		t.Fatal("/quit should end the session")
	}
}

func TestLineEditorPlainInput(t *testing.T) {
	prevTTY := stdinIsTTY
	stdinIsTTY = func() bool { return false }
	defer func() { stdinIsTTY = prevTTY }()

	var out bytes.Buffer
	ed := newLineEditor("> ", strings.NewReader("first\r\nsecond"), &out)
	for _, want := range []string{"first", "second"} {
		got, err := ed.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
	if _, err := ed.ReadLine(); err == nil {
		t.Fatal("expected EOF")
	}
	if len(ed.history) != 2 {
		t.Fatalf("history = %q", ed.history)
	}
}
