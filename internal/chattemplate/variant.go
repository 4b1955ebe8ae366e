package chattemplate

import "slices"

// Message is one role-tagged turn of a conversation.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// RoleSystem is the only role label the compiler treats specially.
const RoleSystem = "system"

// emptyThinkBlock is appended after the AI prefix of thinking-mode variants so
// the model skips visible reasoning.
const emptyThinkBlock = "<think>\n\n</think>\n\n"

// Variant is one model family's prompt grammar. Variants are plain values:
// a derived variant is built by copying its parent and overriding fields.
type Variant struct {
	Name        string
	Description string

	// NameMatches are lowercase substrings looked for in model names and filenames.
	NameMatches []string
	// TemplateMatches are raw Jinja templates that identify this variant exactly.
	TemplateMatches []string

	PromptPrefix string
	SystemPrefix string
	SystemSuffix string
	// PlayerPrefix and AIPrefix receive the speaker's display name. Nil means "".
	PlayerPrefix func(name string) string
	AIPrefix     func(name string) string
	Separator    string

	RequestPrefix string
	RequestSuffix string
	PairSuffix    string

	// NoSystemPrompt marks grammars without a system role; a leading system
	// message is folded into the first user turn.
	NoSystemPrompt bool
	ThinkingMode   bool

	// Stop returns the base stop strings before newline doubling.
	Stop func(player, ai string) []string
}

func (v *Variant) SystemPromptSupported() bool { return !v.NoSystemPrompt }

func (v *Variant) HasThinkingMode() bool { return v.ThinkingMode }

func (v *Variant) playerPrefix(name string) string {
	if v.PlayerPrefix == nil {
		return ""
	}
	return v.PlayerPrefix(name)
}

func (v *Variant) aiPrefix(name string) string {
	if v.AIPrefix == nil {
		return ""
	}
	return v.AIPrefix(name)
}

// fixed returns a speaker prefix that ignores the display name.
func fixed(s string) func(string) string {
	return func(string) string { return s }
}

// named returns a speaker prefix that embeds the display name literally.
func named(before, after string) func(string) string {
	return func(name string) string { return before + name + after }
}

func stops(s ...string) func(string, string) []string {
	return func(string, string) []string { return slices.Clone(s) }
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
