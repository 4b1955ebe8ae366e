// Package chattemplate turns role-tagged conversations into the exact prompt
// text a model family expects, and infers which family a model file belongs to.
//
// Each supported family is a Variant: a table of fixed prompt fragments, two
// feature flags and a stop-word set. Variants are collected in a Registry,
// which also resolves a variant name from a model's raw Jinja chat template,
// its declared name or its filename, in that order.
package chattemplate
