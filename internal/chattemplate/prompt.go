package chattemplate

import "strings"

// SegmentKind tells template tokens apart from message text in a rendered prompt.
type SegmentKind int

const (
	SegmentFragment SegmentKind = iota
	SegmentContent
)

func (k SegmentKind) String() string {
	if k == SegmentContent {
		return "content"
	}
	return "fragment"
}

// Segment is one contiguous piece of a rendered prompt.
type Segment struct {
	Kind SegmentKind
	Text string
}

// ComputePrompt renders messages into the exact text the model expects.
// Messages after the optional leading system message are treated as
// alternating player/AI turns. With endWithAIPrefix the prompt ends with the
// AI prefix for aiName, followed by an empty think block on thinking-mode
// variants.
func (v *Variant) ComputePrompt(messages []Message, playerName, aiName string, endWithAIPrefix bool) (string, error) {
	segs, err := v.Segments(messages, playerName, aiName, endWithAIPrefix)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String(), nil
}

// Segments is ComputePrompt split into template fragments and message content.
// Empty fragments are omitted.
func (v *Variant) Segments(messages []Message, playerName, aiName string, endWithAIPrefix bool) ([]Segment, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	msgs := messages
	if v.NoSystemPrompt && msgs[0].Role == RoleSystem {
		msgs = foldSystem(msgs, playerName)
	}

	var out segmentWriter
	out.fragment(v.PromptPrefix)

	start := 0
	if msgs[0].Role == RoleSystem {
		out.fragment(v.RequestPrefix + v.SystemPrefix)
		out.content(msgs[0].Content)
		out.fragment(v.SystemSuffix)
		start = 1
	}

	for i := start; i < len(msgs); i += 2 {
		// The system header already emitted RequestPrefix for the first pair;
		// without a header the first pair opens its own request.
		if i > start || start == 0 {
			out.fragment(v.RequestPrefix)
		}
		out.fragment(v.playerPrefix(msgs[i].Role) + v.Separator)
		out.content(msgs[i].Content)
		out.fragment(v.RequestSuffix)

		if i+1 < len(msgs) {
			out.fragment(v.aiPrefix(msgs[i+1].Role) + v.Separator)
			out.content(msgs[i+1].Content)
			out.fragment(v.PairSuffix)
		}
	}

	if endWithAIPrefix {
		out.fragment(v.aiPrefix(aiName))
		if v.ThinkingMode {
			out.fragment(emptyThinkBlock)
		}
	}
	return out.segs, nil
}

// foldSystem merges a leading system message into the following turn, which
// is attributed to playerName. The input slice is not modified.
func foldSystem(messages []Message, playerName string) []Message {
	content := messages[0].Content
	rest := messages[1:]
	if len(rest) > 0 {
		if content != "" {
			content += "\n\n"
		}
		content += rest[0].Content
		rest = rest[1:]
	}
	out := make([]Message, 0, len(rest)+1)
	out = append(out, Message{Role: playerName, Content: content})
	return append(out, rest...)
}

type segmentWriter struct {
	segs []Segment
}

func (w *segmentWriter) fragment(s string) {
	w.add(SegmentFragment, s)
}

func (w *segmentWriter) content(s string) {
	w.add(SegmentContent, s)
}

func (w *segmentWriter) add(kind SegmentKind, s string) {
	if s == "" {
		return
	}
	if n := len(w.segs); n > 0 && w.segs[n-1].Kind == kind {
		w.segs[n-1].Text += s
		return
	}
	w.segs = append(w.segs, Segment{Kind: kind, Text: s})
}
