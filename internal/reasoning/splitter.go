// Package reasoning separates <think> blocks from generated text produced
// by thinking-mode chat templates.
package reasoning

import "strings"

const (
	openTag  = "<think>"
	closeTag = "</think>"
)

type SplitResult struct {
	Content   string
	Reasoning string
}

// SplitRaw separates content and reasoning using <think>...</think> tags,
// matched case-insensitively. A block that is opened but never closed runs
// to the end of the text.
func SplitRaw(raw string) SplitResult {
	return split(raw, false)
}

// SplitOpen is SplitRaw for output whose prompt already opened a think block,
// so the text starts inside reasoning until the first closing tag.
func SplitOpen(raw string) SplitResult {
	return split(raw, true)
}

func split(source string, inThink bool) SplitResult {
	var content, reasoning strings.Builder
	cursor := 0
	for cursor < len(source) {
		if inThink {
			end := indexFold(source, closeTag, cursor)
			if end < 0 {
				reasoning.WriteString(source[cursor:])
				break
			}
			reasoning.WriteString(source[cursor:end])
			cursor = end + len(closeTag)
			inThink = false
			continue
		}
		start := indexFold(source, openTag, cursor)
		if start < 0 {
			content.WriteString(source[cursor:])
			break
		}
		content.WriteString(source[cursor:start])
		cursor = start + len(openTag)
		inThink = true
	}

	return SplitResult{
		Content:   content.String(),
		Reasoning: reasoning.String(),
	}
}

// Splitter incrementally emits content/reasoning deltas from streamed text.
// A trailing fragment that could still become a tag is held back until the
// next Push or Flush.
type Splitter struct {
	// StartInReasoning treats the stream as already inside a think block.
	StartInReasoning bool

	raw              strings.Builder
	lastContentLen   int
	lastReasoningLen int
}

func (s *Splitter) Push(delta string) (contentDelta, reasoningDelta string) {
	if delta == "" {
		return "", ""
	}
	s.raw.WriteString(delta)
	text := s.raw.String()
	return s.emit(text[:len(text)-partialTagLen(text)])
}

// Flush emits whatever Push held back.
func (s *Splitter) Flush() (contentDelta, reasoningDelta string) {
	return s.emit(s.raw.String())
}

func (s *Splitter) emit(text string) (contentDelta, reasoningDelta string) {
	out := split(text, s.StartInReasoning)
	if s.lastContentLen < len(out.Content) {
		contentDelta = out.Content[s.lastContentLen:]
		s.lastContentLen = len(out.Content)
	}
	if s.lastReasoningLen < len(out.Reasoning) {
		reasoningDelta = out.Reasoning[s.lastReasoningLen:]
		s.lastReasoningLen = len(out.Reasoning)
	}
	return contentDelta, reasoningDelta
}

// partialTagLen is the length of the longest suffix of text that is a proper
// prefix of either tag.
func partialTagLen(text string) int {
	best := 0
	for _, tag := range []string{openTag, closeTag} {
		for n := min(len(tag)-1, len(text)); n > best; n-- {
			if strings.EqualFold(text[len(text)-n:], tag[:n]) {
				best = n
				break
			}
		}
	}
	return best
}

// indexFold finds the first ASCII case-insensitive occurrence of tag in s at
// or after from, keeping byte offsets valid for s.
func indexFold(s, tag string, from int) int {
	for i := from; i+len(tag) <= len(s); i++ {
		if s[i] == '<' && strings.EqualFold(s[i:i+len(tag)], tag) {
			return i
		}
	}
	return -1
}
