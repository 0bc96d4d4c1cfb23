// Package types holds the small interfaces shared across scaffold packages.
package types
