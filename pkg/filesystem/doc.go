// Package filesystem provides implementations of types.FS: the OS
// filesystem and an afero-backed one used by tests.
package filesystem
