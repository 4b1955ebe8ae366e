package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
)

// runApp runs the CLI in-process against an isolated config path.
func runApp(t *testing.T, configYAML, input string, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if configYAML != "" {
		if err := os.WriteFile(cfgPath, []byte(configYAML), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv(envConfigPath, cfgPath)
	t.Setenv(envModelsDir, "")

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(input)
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	err := app.Run(context.Background(), append([]string{"chatfmt"}, args...))
	return out.String(), errOut.String(), err
}

func writeGGUF(t *testing.T, path string, kv map[string]string) {
	t.Helper()
	var b bytes.Buffer
	putString := func(s string) {
		_ = binary.Write(&b, binary.LittleEndian, uint64(len(s)))
		b.WriteString(s)
	}
	b.WriteString("GGUF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(3))
	_ = binary.Write(&b, binary.LittleEndian, uint64(0))
	_ = binary.Write(&b, binary.LittleEndian, uint64(len(kv)))
	for k, v := range kv {
		putString(k)
		_ = binary.Write(&b, binary.LittleEndian, uint32(8))
		putString(v)
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write gguf: %v", err)
	}
}

func TestTemplatesCommand(t *testing.T) {
	out, _, err := runApp(t, "", "", "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	got := strings.Split(strings.TrimSpace(out), "\n")
	builtin := chattemplate.Builtin()
	if len(got) != len(builtin) {
		t.Fatalf("got %d names, want %d", len(got), len(builtin))
	}
	for i, v := range builtin {
		if got[i] != v.Name {
			t.Fatalf("line %d = %q, want %q", i, got[i], v.Name)
		}
	}

	out, _, err = runApp(t, "", "", "templates", "--long")
	if err != nil {
		t.Fatalf("templates --long: %v", err)
	}
	if !strings.HasPrefix(out, "NAME") || !strings.Contains(out, "qwen3") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.jinja")
	gemma, err := chattemplate.Default().Lookup("gemma")
	if err != nil {
		t.Fatalf("lookup gemma: %v", err)
	}
	if err := os.WriteFile(tplPath, []byte("\n"+gemma.TemplateMatches[0]+"\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	modelPath := filepath.Join(dir, "model.gguf")
	writeGGUF(t, modelPath, map[string]string{"general.name": "Hermes 2 Pro Mistral 7B"})

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"resolve", "--name", "Mistral-7B-Instruct-v0.2"}, "mistral instruct"},
		{[]string{"resolve", "-v", "--filename", "/m/Phi-3-mini-4k.Q4.gguf"}, "phi-3\tfilename"},
		{[]string{"resolve", "-v", "--template-file", tplPath, "--name", "llama 3"}, "gemma\ttemplate"},
		{[]string{"resolve", "-v", "--gguf", modelPath}, "mistral instruct\tmodel_name"},
		{[]string{"resolve", "-v"}, "chatml\tdefault"},
	}
	for _, tc := range cases {
		out, _, err := runApp(t, "", "", tc.args...)
		if err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if got := strings.TrimSpace(out); got != tc.want {
			t.Fatalf("%v: got %q want %q", tc.args, got, tc.want)
		}
	}
}

func TestResolveUsesConfiguredFallback(t *testing.T) {
	out, _, err := runApp(t, "default_template: gemma\n", "", "resolve")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := strings.TrimSpace(out); got != "gemma" {
		t.Fatalf("got %q, want configured fallback", got)
	}
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.json")
	body := `[{"role":"system","content":"S"},{"role":"user","content":"Hi"},{"role":"assistant","content":"Hello"}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write messages: %v", err)
	}

	out, _, err := runApp(t, "", "", "render", "--messages", path, "--template", "chatml")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<|im_start|>system\nS<|im_end|>\n<|im_start|>user\nHi<|im_end|>\n<|im_start|>assistant\nHello<|im_end|>\n<|im_start|>assistant\n"
	if out != want {
		t.Fatalf("prompt mismatch\n got: %q\nwant: %q", out, want)
	}

	out, _, err = runApp(t, "", "", "render", "--messages", path, "--template", "chatml", "--no-prefix")
	if err != nil {
		t.Fatalf("render --no-prefix: %v", err)
	}
	if strings.HasSuffix(out, "<|im_start|>assistant\n") {
		t.Fatalf("unexpected AI prefix: %q", out)
	}

	out, _, err = runApp(t, "", "", "render", "--messages", path, "--template", "chatml", "--highlight")
	if err != nil {
		t.Fatalf("render --highlight: %v", err)
	}
	if !strings.Contains(out, "\x1b[") || !strings.Contains(out, "Hello") {
		t.Fatalf("expected ANSI fragments, got %q", out)
	}
}

func TestRenderFromStdinYAML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		args []string
		want string
	}{
		{
			name: "role labels name the speaker",
			in:   "- role: user\n  content: Hi\n",
			args: []string{"--template", "alpaca", "--player", "Player", "--ai", "Guard"},
			want: "### user: Hi\n### Guard:",
		},
		{
			name: "custom role label",
			in:   "- role: Player\n  content: Hi\n",
			args: []string{"--template", "alpaca", "--ai", "Guard"},
			want: "### Player: Hi\n### Guard:",
		},
		{
			name: "folded system turn on a fixed-prefix template",
			in:   "- role: system\n  content: S\n- role: user\n  content: Hi\n",
			args: []string{"--template", "gemma", "--player", "Player"},
			want: "<start_of_turn>user\nS\n\nHi<end_of_turn>\n<start_of_turn>model\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"render", "--messages", "-", "--format", "yaml"}, tc.args...)
			out, _, err := runApp(t, "", tc.in, args...)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if out != tc.want {
				t.Fatalf("got %q want %q", out, tc.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write messages: %v", err)
	}
	if _, _, err := runApp(t, "", "", "render", "--messages", path, "--template", "chatml"); err == nil {
		t.Fatal("expected error for empty conversation")
	}
	if _, _, err := runApp(t, "", "", "render", "--messages", "-", "--template", "nope"); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if _, _, err := runApp(t, "", "", "render", "--template", "chatml"); err == nil {
		t.Fatal("expected error when --messages is missing")
	}
}

func TestStopCommand(t *testing.T) {
	out, _, err := runApp(t, "player_name: Alice\n", "", "stop", "--template", "phi")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	want := `"Alice:"` + "\n" + `"\nAlice:"` + "\n" + `"assistant:"` + "\n" + `"\nassistant:"` + "\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}

	out, _, err = runApp(t, "player_name: Alice\n", "", "stop", "--template", "phi", "--player", "Bob")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.HasPrefix(out, `"Bob:"`) {
		t.Fatalf("flag must override config, got %q", out)
	}

	if _, _, err := runApp(t, "", "", "stop"); err == nil {
		t.Fatal("expected error without --template")
	}
}

func TestPostprocessCommand(t *testing.T) {
	out, _, err := runApp(t, "", "<think>plan</think>Answer<|im_end|>tail", "postprocess", "--template", "qwen3", "--json")
	if err != nil {
		t.Fatalf("postprocess: %v", err)
	}
	for _, want := range []string{`"content": "Answer"`, `"reasoning": "plan"`, `"stopped": true`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}

	out, errOut, err := runApp(t, "", "<think>plan</think>Answer", "postprocess", "--template", "qwen3")
	if err != nil {
		t.Fatalf("postprocess: %v", err)
	}
	if out != "Answer\n" || !strings.Contains(errOut, "plan") {
		t.Fatalf("stdout %q stderr %q", out, errOut)
	}
}

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gguf")
	writeGGUF(t, path, map[string]string{
		"general.name":         "Meta Llama 3 8B Instruct",
		"general.architecture": "llama",
	})

	out, _, err := runApp(t, "", "", "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"GGUF v3", "Meta Llama 3 8B Instruct", "tokenizer.chat_template", "(none)", "llama3 chat (matched model name)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	if _, _, err := runApp(t, "", "", "inspect"); err == nil {
		t.Fatal("expected error without a model")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runApp(t, "", "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "version:") {
		t.Fatalf("unexpected output %q", out)
	}
}
