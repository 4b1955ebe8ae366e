package chattemplate

import (
	"strings"
	"sync"

	"github.com/samcharles93/chatfmt/internal/logger"
)

// DefaultFallback is the variant used when nothing identifies a model.
const DefaultFallback = "chatml"

// Registry is the catalog of variants. It is built once by NewRegistry and
// never mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	log      logger.Logger
	fallback string

	variants     map[string]*Variant
	names        []string
	byDesc       map[string]string
	descriptions []string

	// nameKeys keeps name-match keys in registration order for stable
	// tie-breaking between keys of equal length.
	nameKeys        []string
	nameMatches     map[string]string
	templateMatches map[string]string

	duplicates int
}

// Option configures a Registry.
type Option func(*registryConfig)

type registryConfig struct {
	log      logger.Logger
	fallback string
}

// WithLogger sets the logger used for registration diagnostics and resolution.
func WithLogger(l logger.Logger) Option {
	return func(c *registryConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFallback sets the variant name Resolve returns when nothing matches.
func WithFallback(name string) Option {
	return func(c *registryConfig) {
		if name != "" {
			c.fallback = name
		}
	}
}

// NewRegistry registers variants in the given order. Any repeated name,
// description, name match or template match is logged and counted; the
// first registrant keeps the key.
func NewRegistry(variants []Variant, opts ...Option) *Registry {
	cfg := registryConfig{
		log:      logger.Discard(),
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		log:             cfg.log,
		variants:        make(map[string]*Variant, len(variants)),
		byDesc:          make(map[string]string, len(variants)),
		nameMatches:     make(map[string]string),
		templateMatches: make(map[string]string),
	}

	for i := range variants {
		v := variants[i]
		v.NameMatches = cloneStrings(v.NameMatches)
		v.TemplateMatches = cloneStrings(v.TemplateMatches)
		r.register(&v)
	}

	r.fallback = cfg.fallback
	if _, ok := r.variants[r.fallback]; !ok {
		r.log.Error("fallback chat template not registered", "name", cfg.fallback, "using", DefaultFallback)
		r.fallback = DefaultFallback
	}
	return r
}

func (r *Registry) register(v *Variant) {
	if _, ok := r.variants[v.Name]; ok {
		r.duplicate("name", v.Name, v.Name)
		return
	}
	r.variants[v.Name] = v
	r.names = append(r.names, v.Name)
	// descriptions stays index-aligned with names even when the description
	// collides; byDesc keeps the first owner.
	r.descriptions = append(r.descriptions, v.Description)

	if _, ok := r.byDesc[v.Description]; ok {
		r.duplicate("description", v.Description, v.Name)
	} else {
		r.byDesc[v.Description] = v.Name
	}

	for _, key := range v.NameMatches {
		key = strings.ToLower(key)
		if _, ok := r.nameMatches[key]; ok {
			r.duplicate("name_match", key, v.Name)
			continue
		}
		r.nameMatches[key] = v.Name
		r.nameKeys = append(r.nameKeys, key)
	}

	for _, tpl := range v.TemplateMatches {
		tpl = strings.TrimSpace(tpl)
		if _, ok := r.templateMatches[tpl]; ok {
			r.duplicate("template_match", abbreviate(tpl), v.Name)
			continue
		}
		r.templateMatches[tpl] = v.Name
	}
}

func (r *Registry) duplicate(kind, key, variant string) {
	r.duplicates++
	r.log.Error("duplicate chat template registration", "kind", kind, "key", key, "variant", variant)
}

// Duplicates reports how many colliding keys were dropped during registration.
func (r *Registry) Duplicates() int {
	return r.duplicates
}

// Fallback returns the variant name used when resolution finds no match.
func (r *Registry) Fallback() string {
	return r.fallback
}

// Lookup returns a copy of the variant registered under name. Changing the
// copy does not affect the registry.
func (r *Registry) Lookup(name string) (*Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return nil, unknownVariantError{name: name}
	}
	cp := *v
	cp.NameMatches = cloneStrings(v.NameMatches)
	cp.TemplateMatches = cloneStrings(v.TemplateMatches)
	return &cp, nil
}

// LookupDescription returns the variant registered with the description.
func (r *Registry) LookupDescription(desc string) (*Variant, error) {
	name, ok := r.byDesc[desc]
	if !ok {
		return nil, unknownVariantError{name: desc}
	}
	return r.Lookup(name)
}

// NameForDescription maps a UI description back to a variant name.
func (r *Registry) NameForDescription(desc string) (string, bool) {
	name, ok := r.byDesc[desc]
	return name, ok
}

// Names lists variant names in registration order.
func (r *Registry) Names() []string {
	return cloneStrings(r.names)
}

// Descriptions lists variant descriptions in registration order, one per
// entry of Names. A repeated description maps back to its first owner only
// through NameForDescription.
func (r *Registry) Descriptions() []string {
	return cloneStrings(r.descriptions)
}

// ComputePrompt renders messages with the named variant.
func (r *Registry) ComputePrompt(name string, messages []Message, playerName, aiName string, endWithAIPrefix bool) (string, error) {
	v, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return v.ComputePrompt(messages, playerName, aiName, endWithAIPrefix)
}

// StopSequences returns the named variant's stop strings.
func (r *Registry) StopSequences(name, playerName, aiName string) ([]string, error) {
	v, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return v.StopSequences(playerName, aiName), nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(Builtin(), WithLogger(logger.Default()))
})

// Default returns the process-wide registry of built-in variants, built on
// first use.
func Default() *Registry {
	return defaultRegistry()
}

func abbreviate(s string) string {
	const limit = 48
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
