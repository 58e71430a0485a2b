package confloader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "MEMKV_"

const delim = "."

// Loader merges configuration sources in increasing priority: YAML file,
// environment, then overrides (command line flags).
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	envKeys   map[string]string // MEMKV_-less lowercase env name -> koanf key
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets dotted keys that take precedence over the file and
// the environment. Empty string values are skipped so unset flags do not
// clear configured values.
func WithOverrides(m map[string]any) Option {
	return func(l *Loader) {
		l.overrides = make(map[string]any, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			l.overrides[k] = v
		}
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New(delim),
		envPrefix: DefaultEnvPrefix,
		envKeys:   make(map[string]string),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads configuration from all sources and unmarshals into target,
// which must be a pointer to a struct with koanf tags. Fields absent from
// every source keep their current value, so callers pass a struct filled
// with defaults.
func (l *Loader) Load(target any) error {
	l.registerKeys(reflect.TypeOf(target), "")

	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return err
	}

	if len(l.overrides) > 0 {
		if err := l.LoadMap(l.overrides); err != nil {
			return err
		}
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}

	return nil
}

// LoadEnv loads configuration from environment variables.
//
// MEMKV_SERVER_REDIS_ADDR becomes server.redis.addr. Names that match a
// key of the target struct keep that key's underscores; any other name
// maps every underscore to a level separator.
func (l *Loader) LoadEnv() error {
	provider := env.Provider(l.envPrefix, delim, l.envKey)
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	return nil
}

func (l *Loader) envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
	if key, ok := l.envKeys[s]; ok {
		return key
	}
	return strings.ReplaceAll(s, "_", delim)
}

// registerKeys records the koanf keys of a struct type for env matching.
func (l *Loader) registerKeys(t reflect.Type, prefix string) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("koanf"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + delim + tag
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			l.registerKeys(ft, key)
			continue
		}
		l.envKeys[strings.ReplaceAll(key, delim, "_")] = key
	}
}

// LoadMap loads configuration from a map with dotted keys.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal decodes the merged configuration into target by koanf tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt returns an int value from the configuration.
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// GetBool returns a bool value from the configuration.
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}
