// Package config loads the optional abi2ts.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"abi2ts/internal/emitter"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "abi2ts.yaml"

// Config mirrors the YAML file. Unset fields keep their defaults.
type Config struct {
	// Out is the directory generated files are written to.
	Out string `yaml:"out,omitempty"`

	// Extension of generated files, without the dot.
	Extension string `yaml:"extension,omitempty"`

	// Policy is "uniform" or "legacy".
	Policy string `yaml:"policy,omitempty"`

	// GetterPrefix keeps constant functions under the legacy policy.
	GetterPrefix *string `yaml:"getterPrefix,omitempty"`

	// Selectors adds a signature and selector comment to each method.
	Selectors bool `yaml:"selectors,omitempty"`

	// Verify parses every generated file before writing it.
	Verify bool `yaml:"verify,omitempty"`

	// Indent is the indentation unit of generated code.
	Indent string `yaml:"indent,omitempty"`

	Capability *Capability `yaml:"capability,omitempty"`
}

// Capability overrides the interface wrappers delegate to. Empty fields
// fall back to the policy default.
type Capability struct {
	Name    string `yaml:"name,omitempty"`
	Binding string `yaml:"binding,omitempty"`
	Import  string `yaml:"import,omitempty"`
	Field   string `yaml:"field,omitempty"`
}

// Error reports an unusable config file. Key names the offending setting
// when the file parsed but a value was rejected.
type Error struct {
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(key, format string, args ...any) error {
	return &Error{Key: key, Err: fmt.Errorf(format, args...)}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Out:       ".",
		Extension: "ts",
		Policy:    emitter.PolicyUniform.String(),
	}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(path, data)
}

// LoadOptional behaves like Load but returns Default when path does not
// exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
			return nil, cfgErr
		}
		return nil, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

var (
	identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	typeName   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

// Validate checks field values. Failures are *Error values carrying the
// key of the rejected setting.
func (c *Config) Validate() error {
	if _, err := emitter.ParsePolicy(c.Policy); err != nil {
		return invalid("policy", "policy: %w", err)
	}

	c.Extension = strings.TrimPrefix(c.Extension, ".")
	if c.Extension == "" {
		return invalid("extension", "extension must not be empty")
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return invalid("extension", "extension %q must not contain a path separator", c.Extension)
	}

	if strings.TrimSpace(c.Indent) != "" {
		return invalid("indent", "indent must only contain spaces or tabs")
	}

	if c.GetterPrefix != nil && *c.GetterPrefix != "" && !identifier.MatchString(*c.GetterPrefix) {
		return invalid("getterPrefix", "getterPrefix %q is not an identifier", *c.GetterPrefix)
	}

	if c.Capability != nil {
		if c.Capability.Name != "" && !typeName.MatchString(c.Capability.Name) {
			return invalid("capability.name", "capability.name %q is not a type name", c.Capability.Name)
		}
		if strings.Contains(c.Capability.Name, ".") && c.localCapability() {
			return invalid("capability.name", "capability.name %q must be a plain identifier when the capability is generated locally", c.Capability.Name)
		}
		if c.Capability.Field != "" && !identifier.MatchString(c.Capability.Field) {
			return invalid("capability.field", "capability.field %q is not an identifier", c.Capability.Field)
		}
		if c.Capability.Binding != "" && !identifier.MatchString(c.Capability.Binding) {
			return invalid("capability.binding", "capability.binding %q is not an identifier", c.Capability.Binding)
		}
	}
	return nil
}

// localCapability reports whether the capability interface is written next
// to the wrappers, in which case its name declares it.
func (c *Config) localCapability() bool {
	imp := ""
	if c.Capability != nil {
		imp = c.Capability.Import
	}
	if imp == "" {
		return c.Policy != emitter.PolicyLegacy.String()
	}
	return emitter.Capability{Import: imp}.Local()
}

// EmitterOptions converts the config to emitter options.
func (c *Config) EmitterOptions() (emitter.Options, error) {
	policy, err := emitter.ParsePolicy(c.Policy)
	if err != nil {
		return emitter.Options{}, err
	}

	opts := emitter.DefaultOptions()
	opts.Policy = policy
	opts.Selectors = c.Selectors
	if c.Indent != "" {
		opts.Indent = c.Indent
	}
	if c.GetterPrefix != nil {
		opts.GetterPrefix = *c.GetterPrefix
	}

	base := emitter.DefaultCapability
	if policy == emitter.PolicyLegacy {
		base = emitter.LegacyCapability
	}
	if c.Capability != nil {
		if c.Capability.Name != "" {
			base.Name = c.Capability.Name
			base.Binding = ""
		}
		if c.Capability.Binding != "" {
			base.Binding = c.Capability.Binding
		}
		if c.Capability.Import != "" {
			base.Import = c.Capability.Import
		}
		if c.Capability.Field != "" {
			base.Field = c.Capability.Field
		}
	}
	opts.Capability = base
	return opts, nil
}
