package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scaffold/pkg/errors"
)

// Environment variable names
const (
	EnvTemplatesDir = "SCAFFOLD_TEMPLATES_DIR"
	EnvConfigDir    = "SCAFFOLD_CONFIG_DIR"
	EnvCacheDir     = "SCAFFOLD_CACHE_DIR"
	EnvHome         = "HOME"
)

// Fixed names inside the scaffold directories. These are not user-configurable.
const (
	AppDirName          = "scaffold"
	DefaultTemplatesDir = ".templates"
	ConfigFileName      = "config.toml"
	BundledDirName      = "bundled-templates"
	VersionMarker       = ".version"
)

// Paths provides centralized path management for scaffold
type Paths interface {
	TemplatesDir() string
	ConfigDir() string
	ConfigFile() string
	CacheDir() string
	BundledDir() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	templatesDir string
	configDir    string
	cacheDir     string
}

// New creates a Paths instance. An empty templatesDir falls back to
// SCAFFOLD_TEMPLATES_DIR and then to ./.templates.
func New(templatesDir string) (Paths, error) {
	p := &paths{}

	if templatesDir == "" {
		templatesDir = os.Getenv(EnvTemplatesDir)
	}
	if templatesDir == "" {
		templatesDir = DefaultTemplatesDir
	}

	abs, err := filepath.Abs(expandHome(templatesDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for templates dir %q", templatesDir)
	}
	p.templatesDir = abs

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = expandHome(dir)
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	return p, nil
}

func (p *paths) TemplatesDir() string {
	return p.templatesDir
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the path of the global defaults file
func (p *paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) CacheDir() string {
	return p.cacheDir
}

// BundledDir returns where bundled templates are extracted
func (p *paths) BundledDir() string {
	return filepath.Join(p.cacheDir, BundledDirName)
}

// NormalizePath expands home, makes the path absolute and cleans it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path")
	}
	return filepath.Clean(abs), nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}
