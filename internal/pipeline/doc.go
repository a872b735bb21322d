// Package pipeline implements the markdown to storage-format conversion
// stages: code-span protection, diagram extraction, inline formatting, the
// list and table state machines, and final assembly with strict-dialect
// normalization.
//
// Stages are pure input to output transformations. Placeholder state (code
// fragments, diagram ordinals) is scoped to one conversion run via the
// CodeGuard value and the slice returned by ExtractDiagrams, never to
// package-level mutable state.
package pipeline
