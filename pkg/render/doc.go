// Package render materializes a template tree into an output directory.
//
// The walk is a depth-first recursion over the source tree. For every entry
// the renderer:
//
//   - skips template.toml when Options.SkipManifest is set
//   - prunes the entry (and its whole subtree) when its base name is in
//     Options.Exclusions
//   - substitutes variables into the entry name
//   - creates directories idempotently and recurses into them
//   - writes files, substituting variables into the content when the bytes
//     are valid UTF-8 and copying them unchanged otherwise
//
// Children are visited sorted by name so Plan and Preview are reproducible.
// A filesystem failure aborts the render with a path-qualified error and
// leaves whatever was already written in place.
package render
