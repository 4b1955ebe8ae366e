package chattemplate

import (
	"path/filepath"
	"strings"
)

// Metadata keys read from model files.
const (
	KeyChatTemplate = "tokenizer.chat_template"
	KeyModelName    = "general.name"
)

// Metadata exposes string fields embedded in a model file.
type Metadata interface {
	GetString(key string) (string, bool)
}

// MatchSource names the evidence a resolution was based on.
type MatchSource string

const (
	SourceTemplate  MatchSource = "template"
	SourceModelName MatchSource = "model_name"
	SourceFilename  MatchSource = "filename"
	SourceDefault   MatchSource = "default"
)

// Source holds the identifying evidence for a model. Empty fields are skipped.
type Source struct {
	Template  string
	ModelName string
	Path      string
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Name   string
	Source MatchSource
}

// MatchTemplate returns the variant whose registered Jinja template equals
// text after trimming surrounding whitespace.
func (r *Registry) MatchTemplate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	name, ok := r.templateMatches[text]
	return name, ok
}

// MatchName returns the variant of the longest name-match key contained in
// the lowercased text. Keys of equal length keep registration order.
func (r *Registry) MatchName(text string) (string, bool) {
	text = strings.ToLower(text)
	if text == "" {
		return "", false
	}
	best := ""
	for _, key := range r.nameKeys {
		if len(key) > len(best) && strings.Contains(text, key) {
			best = key
		}
	}
	if best == "" {
		return "", false
	}
	return r.nameMatches[best], true
}

// MatchFilename applies MatchName to the base name of path without its extension.
func (r *Registry) MatchFilename(path string) (string, bool) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "", false
	}
	return r.MatchName(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Resolve tries the raw template, then the model name, then the filename and
// falls back to the configured default variant.
func (r *Registry) Resolve(src Source) Resolution {
	if name, ok := r.MatchTemplate(src.Template); ok {
		return Resolution{Name: name, Source: SourceTemplate}
	}
	if name, ok := r.MatchName(src.ModelName); ok {
		return Resolution{Name: name, Source: SourceModelName}
	}
	if name, ok := r.MatchFilename(src.Path); ok {
		return Resolution{Name: name, Source: SourceFilename}
	}
	r.log.Info("no chat template matched, using fallback", "fallback", r.fallback)
	return Resolution{Name: r.fallback, Source: SourceDefault}
}

// FromMetadata resolves the variant for a model file from its embedded
// chat template and name, then its path.
func (r *Registry) FromMetadata(md Metadata, path string) Resolution {
	var src Source
	if md != nil {
		src.Template, _ = md.GetString(KeyChatTemplate)
		src.ModelName, _ = md.GetString(KeyModelName)
	}
	src.Path = path
	return r.Resolve(src)
}
