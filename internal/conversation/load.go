// Package conversation reads message lists for the chat template engine from
// JSON or YAML files.
package conversation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmpty is returned when a file decodes to zero messages.
var ErrEmpty = errors.New("conversation has no messages")

// FormatFromPath picks the decoder from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads messages from path. The file holds either a list of
// {role, content} objects or an object with a "messages" list.
func Load(path string) ([]chattemplate.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	msgs, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msgs, nil
}

// Decode reads messages in the given format from r.
func Decode(r io.Reader, format Format) ([]chattemplate.Message, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var msgs []message
	switch format {
	case FormatYAML:
		msgs, err = decodeYAML(raw)
	default:
		msgs, err = decodeJSON(raw)
	}
	if err != nil {
		return nil, err
	}
	return toMessages(msgs)
}

// message mirrors chattemplate.Message with a pointer role so a missing role
// can be told apart from an empty one.
type message struct {
	Role    *string `json:"role" yaml:"role"`
	Content string  `json:"content" yaml:"content"`
}

type document struct {
	Messages *[]message `json:"messages" yaml:"messages"`
}

func decodeJSON(raw []byte) ([]message, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("parse messages json: empty input")
	}
	switch trimmed[0] {
	case '[':
		var msgs []message
		if err := json.Unmarshal(trimmed, &msgs); err != nil {
			return nil, fmt.Errorf("parse messages json: %w", err)
		}
		return msgs, nil
	case '{':
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse messages json: %w", err)
		}
		return doc.list()
	default:
		return nil, errors.New("messages must be a list or an object")
	}
}

func decodeYAML(raw []byte) ([]message, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse messages yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("parse messages yaml: empty input")
	}
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var msgs []message
		if err := node.Decode(&msgs); err != nil {
			return nil, fmt.Errorf("parse messages yaml: %w", err)
		}
		return msgs, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse messages yaml: %w", err)
		}
		return doc.list()
	default:
		return nil, errors.New("messages must be a list or an object")
	}
}

func (d document) list() ([]message, error) {
	if d.Messages == nil {
		return nil, errors.New(`messages object missing "messages" field`)
	}
	return *d.Messages, nil
}

func toMessages(msgs []message) ([]chattemplate.Message, error) {
	if len(msgs) == 0 {
		return nil, ErrEmpty
	}
	out := make([]chattemplate.Message, 0, len(msgs))
	for i, m := range msgs {
		if m.Role == nil || *m.Role == "" {
			return nil, fmt.Errorf("message %d: role must be a non-empty string", i)
		}
		out = append(out, chattemplate.Message{Role: *m.Role, Content: m.Content})
	}
	return out, nil
}
