// Package registry enumerates, resolves, adds and removes templates.
//
// Templates come from two places. Local templates live in the user's
// templates directory (./.templates by default); bundled templates are
// extracted from the binary into the user cache. Enumeration lists local
// templates first, then bundled ones whose directory name is not already
// taken locally, so a local template always shadows a bundled one.
//
// A directory only counts as a template if it directly contains
// template.toml. Directories without one, or with a manifest that fails to
// load, are skipped with a warning and never hide the other templates.
//
// Adding a template copies a local directory or a remote git reference (see
// package remote) into the local templates directory.
package registry
