package config

import (
	_ "embed"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml2 "github.com/pelletier/go-toml/v2"
)

// EnvPrefix marks environment variables that supply defaults
const EnvPrefix = "SCAFFOLD_DEFAULT_"

const defaultsKey = "defaults"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Config is the merged view of all layers
type Config struct {
	Defaults map[string]string `koanf:"defaults" toml:"defaults"`
}

// Lookup returns the global default for name
func (c *Config) Lookup(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.Defaults[name]
	return v, ok
}

// Keys returns the configured names sorted
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Defaults))
	for k := range c.Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store reads and writes config.toml
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location
func (s *Store) Path() string {
	return s.path
}

// Load merges embedded defaults, the config file and the environment
func (s *Store) Load() (*Config, error) {
	k, err := s.fileLayer()
	if err != nil {
		return nil, err
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(key string) string {
		return defaultsKey + "." + strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment defaults")
	}

	return decode(k)
}

// LoadFile merges embedded defaults and the config file only
func (s *Store) LoadFile() (*Config, error) {
	k, err := s.fileLayer()
	if err != nil {
		return nil, err
	}
	return decode(k)
}

func (s *Store) fileLayer() (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := k.Load(file.Provider(s.path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", s.path).
				WithDetail("path", s.path)
		}
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config file %s", s.path)
	}

	return k, nil
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result: &cfg,
			// Numbers and booleans in config.toml become strings
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.DecodeHookFuncKind(boolToString),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "config 'defaults' must be a table of name = value pairs")
	}
	if cfg.Defaults == nil {
		cfg.Defaults = make(map[string]string)
	}
	return &cfg, nil
}

// Set stores a default in the config file
func (s *Store) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.update(func(k *koanf.Koanf) error {
		return k.Load(confmap.Provider(map[string]interface{}{defaultsKey + "." + key: value}, "."), nil)
	})
}

// Get returns the default for key as seen by a create run (file and environment)
func (s *Store) Get(key string) (string, bool, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", false, err
	}
	v, ok := cfg.Lookup(key)
	return v, ok, nil
}

// Unset removes key from the config file, reporting whether it was set
func (s *Store) Unset(key string) (bool, error) {
	cfg, err := s.LoadFile()
	if err != nil {
		return false, err
	}
	if _, ok := cfg.Defaults[key]; !ok {
		return false, nil
	}
	return true, s.update(func(k *koanf.Koanf) error {
		k.Delete(defaultsKey + "." + key)
		return nil
	})
}

// Reset deletes the config file, reporting whether there was one
func (s *Store) Reset() (bool, error) {
	err := os.Remove(s.path)
	switch {
	case err == nil:
		logger := logging.GetLogger("config")
		logger.Info().Str("path", s.path).Msg("config reset")
		return true, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove config file '%s'", s.path)
	}
}

func (s *Store) update(mutate func(k *koanf.Koanf) error) error {
	k, err := s.fileLayer()
	if err != nil {
		return err
	}
	if err := mutate(k); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to update config")
	}
	cfg, err := decode(k)
	if err != nil {
		return err
	}
	return s.save(cfg)
}

func (s *Store) save(cfg *Config) error {
	data, err := toml2.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", filepath.Dir(s.path))
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write config file %s", s.path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", s.path).Int("keys", len(cfg.Defaults)).Msg("config saved")
	return nil
}

// WeaklyTypedInput alone would turn true into "1"
func boolToString(from, to reflect.Kind, data interface{}) (interface{}, error) {
	if from == reflect.Bool && to == reflect.String {
		return strconv.FormatBool(data.(bool)), nil
	}
	return data, nil
}

func validateKey(key string) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "config key cannot be empty")
	}
	for _, r := range key {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.Newf(errors.ErrInvalidInput, "config key %q must be a variable name (letters, digits, underscore)", key)
		}
	}
	return nil
}
