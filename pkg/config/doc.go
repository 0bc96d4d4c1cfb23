// Package config manages the global defaults store: a key/value mapping of
// variable name to default value, consulted when a template variable is not
// given on the command line.
//
// Values are layered with koanf, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user's config.toml ($XDG_CONFIG_HOME/scaffold/config.toml)
//  3. environment variables SCAFFOLD_DEFAULT_<NAME>
//
// Writes only touch config.toml; environment values are never persisted.
package config
