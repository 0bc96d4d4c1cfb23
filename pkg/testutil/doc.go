// Package testutil provides helpers for testing scaffold components.
//
// Key components:
//   - WriteTree / ReadTree: declare and inspect file trees inline
//   - FaultyFS: a types.FS wrapper with error injection per path
//   - RequireGit: skips tests that need the git binary
//
// Most tests run against filesystem.NewMemory(); tests that exercise the OS
// (symlinks, permissions, git) use t.TempDir().
package testutil
