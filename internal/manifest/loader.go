package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Loader parses and validates manifest documents. The raw key/value
// tree comes from viper; process-environment overrides are applied
// through the EnvOverlay provider before validation.
type Loader struct {
	overlay   EnvOverlay
	nameCheck NameValidator
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithEnvOverlay replaces the provider used for process-environment
// overrides. Passing nil disables them.
func WithEnvOverlay(overlay EnvOverlay) LoaderOption {
	return func(l *Loader) {
		l.overlay = overlay
	}
}

// WithNameValidator supplies the script-name predicate consulted by
// Manifest.DeployConfig.
func WithNameValidator(check NameValidator) LoaderOption {
	return func(l *Loader) {
		l.nameCheck = check
	}
}

// NewLoader creates a manifest loader. By default process environment
// variables prefixed with EDGESHIP_ override scalar fields.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		overlay: ProcessEnv(EnvPrefix),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and resolves a manifest file from the given path.
func (l *Loader) Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return l.LoadFromBytes(data, filepath.Ext(path))
}

// LoadFromBytes parses a manifest document from raw bytes. The extension
// selects the document syntax (.toml, .json, .yaml, .yml).
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Manifest, error) {
	format := strings.TrimPrefix(strings.ToLower(ext), ".")
	switch format {
	case "toml", "json", "yaml", "yml":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return l.resolve(v)
}

// resolve decodes the generic tree into a Manifest, applies environment
// overrides, and validates the result.
func (l *Loader) resolve(v *viper.Viper) (*Manifest, error) {
	// kv-namespaces nested under [site] is a common placement mistake
	// that deserves better than a generic unknown-field error.
	if site := v.GetStringMap("site"); site != nil {
		if _, found := site["kv-namespaces"]; found {
			return nil, ErrMisplacedKvNamespaces
		}
	}

	var m Manifest
	err := v.Unmarshal(&m, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if l.overlay != nil {
		if err := l.overlay.Apply(&m); err != nil {
			return nil, err
		}
	}

	if m.Type == "" {
		m.Type = DefaultTargetType
	} else {
		normalized, err := ParseTargetType(m.Type.String())
		if err != nil {
			return nil, err
		}
		m.Type = normalized
	}

	if err := checkDuplicateNames(&m); err != nil {
		return nil, err
	}

	m.nameCheck = l.nameCheck
	return &m, nil
}
