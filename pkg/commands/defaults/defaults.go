// Package defaults implements the config subcommands over the global
// defaults store.
package defaults

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/config"
	"github.com/arthur-debert/scaffold/pkg/logging"
)

// Entry is one configured default
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// SetResult confirms a stored default
type SetResult struct {
	Entry `yaml:",inline"`
}

// Text renders the confirmation with style markup
func (r *SetResult) Text() string {
	return fmt.Sprintf("Set [success]%s[/success] = [info]%s[/info]\n", r.Key, r.Value)
}

// SetDefault stores key=value in the config file
func SetDefault(store *config.Store, key, value string) (*SetResult, error) {
	log := logging.GetLogger("commands.defaults")
	log.Debug().Str("command", "SetDefault").Str("key", key).Msg("Executing command")
	if err := store.Set(key, value); err != nil {
		return nil, err
	}
	return &SetResult{Entry{Key: key, Value: value}}, nil
}

// GetResult is the value of one default
type GetResult struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Found bool   `json:"found" yaml:"found"`
}

// Text renders the value, or a not-set note
func (r *GetResult) Text() string {
	if !r.Found {
		return fmt.Sprintf("[muted]%s: not set[/muted]\n", r.Key)
	}
	return r.Value + "\n"
}

// GetDefault reads one default as a create run would see it
func GetDefault(store *config.Store, key string) (*GetResult, error) {
	v, ok, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	return &GetResult{Key: key, Value: v, Found: ok}, nil
}

// ListResult holds every configured default
type ListResult struct {
	Path     string  `json:"path" yaml:"path"`
	Defaults []Entry `json:"defaults" yaml:"defaults"`
}

// Text renders the listing with style markup
func (r *ListResult) Text() string {
	if len(r.Defaults) == 0 {
		return "No defaults configured.\n\nSet defaults with: [muted]scaffold config set <key> <value>[/muted]\n"
	}
	var b strings.Builder
	b.WriteString("Global defaults:\n\n")
	for _, e := range r.Defaults {
		fmt.Fprintf(&b, "  [success]%s[/success] = [info]%s[/info]\n", e.Key, e.Value)
	}
	fmt.Fprintf(&b, "\nConfig file: [muted]%s[/muted]\n", r.Path)
	return b.String()
}

// ListDefaults returns all defaults sorted by key
func ListDefaults(store *config.Store) (*ListResult, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}
	result := &ListResult{Path: store.Path(), Defaults: []Entry{}}
	for _, k := range cfg.Keys() {
		result.Defaults = append(result.Defaults, Entry{Key: k, Value: cfg.Defaults[k]})
	}
	return result, nil
}

// UnsetResult reports a removal
type UnsetResult struct {
	Key     string `json:"key" yaml:"key"`
	Removed bool   `json:"removed" yaml:"removed"`
}

// Text renders the outcome with style markup
func (r *UnsetResult) Text() string {
	if r.Removed {
		return fmt.Sprintf("Removed [success]%s[/success]\n", r.Key)
	}
	return fmt.Sprintf("[muted]%s: not set[/muted]\n", r.Key)
}

// UnsetDefault removes key from the config file
func UnsetDefault(store *config.Store, key string) (*UnsetResult, error) {
	removed, err := store.Unset(key)
	if err != nil {
		return nil, err
	}
	return &UnsetResult{Key: key, Removed: removed}, nil
}

// ResetResult reports whether a config file was deleted
type ResetResult struct {
	Path    string `json:"path" yaml:"path"`
	Removed bool   `json:"removed" yaml:"removed"`
}

// Text renders the outcome
func (r *ResetResult) Text() string {
	if r.Removed {
		return "Config reset to defaults.\n"
	}
	return "No config file to reset.\n"
}

// ResetDefaults deletes the config file
func ResetDefaults(store *config.Store) (*ResetResult, error) {
	removed, err := store.Reset()
	if err != nil {
		return nil, err
	}
	return &ResetResult{Path: store.Path(), Removed: removed}, nil
}
