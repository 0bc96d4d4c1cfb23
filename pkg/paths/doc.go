// Package paths provides centralized path handling for scaffold.
//
// It resolves the three locations the tool works with:
//
//   - the local templates directory (default ./.templates)
//   - the config directory holding config.toml ($XDG_CONFIG_HOME/scaffold)
//   - the cache directory holding extracted bundled templates ($XDG_CACHE_HOME/scaffold)
//
// # Environment Variables
//
//   - SCAFFOLD_TEMPLATES_DIR: override the local templates directory
//   - SCAFFOLD_CONFIG_DIR: override the config directory
//   - SCAFFOLD_CACHE_DIR: override the cache directory
//
// An explicit templates directory passed to New (the --templates-dir flag)
// beats the environment.
package paths
