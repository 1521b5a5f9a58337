// Package config assembles the osmjson run configuration from the built-in
// defaults and an optional YAML file.
package config

import (
	"sort"
	"strings"

	"github.com/osmwrangle/osmjson/data"
	"github.com/osmwrangle/osmjson/qyaml"
	"github.com/osmwrangle/osmjson/resource"
	"github.com/osmwrangle/osmjson/shape"
	"github.com/osmwrangle/osmjson/streetname"
	"github.com/pkg/errors"
)

// An ErrorPolicy says what to do with an element that cannot be shaped.
type ErrorPolicy string

const (
	// Abort stops the run at the first bad element.
	Abort ErrorPolicy = "abort"
	// Skip logs the bad element and leaves it out of the output.
	Skip ErrorPolicy = "skip"
)

// ParseErrorPolicy validates a policy name.
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case Abort, Skip:
		return p, nil
	}
	return "", errors.Errorf("unknown on-error policy %q (want %q or %q)", name, Abort, Skip)
}

// StreetNames configures the street name normalizer.
type StreetNames struct {
	streetname.Tables
	streetname.Options
}

// Config is the complete conversion configuration.
type Config struct {
	// Sources lists where the configuration came from, defaults first.
	Sources []string

	Pretty            bool
	PostcodePrefix    string
	OnError           ErrorPolicy
	OverwriteReserved bool
	ProgressEvery     int
	StreetNames       StreetNames
}

var knownKeys = map[string]bool{
	"pretty":             true,
	"postcode-prefix":    true,
	"on-error":           true,
	"overwrite-reserved": true,
	"progress-every":     true,
	"street-names":       true,
}

var knownStreetNameKeys = map[string]bool{
	"word-boundaries": true,
	"unicode-nfc":     true,
	"cache-size":      true,
	"contractions":    true,
	"expansions":      true,
}

// Default returns the built-in configuration.
func Default() (Config, error) {
	c, err := Config{}.Overlay(data.Defaults(), data.DefaultConfigFile)
	if err != nil {
		return Config{}, errors.Wrap(err, "built-in config")
	}
	return c, nil
}

// Load returns the built-in configuration overlaid with the YAML file at
// path, resolved against the resource root. An empty path loads only the
// defaults.
func Load(path string) (Config, error) {
	c, err := Default()
	if err != nil || path == "" {
		return c, err
	}
	y, err := resource.ParseYAML(path)
	if err != nil {
		return Config{}, err
	}
	return c.Overlay(y, resource.Root.Path(path))
}

// Overlay returns a copy of c with every key set in y replaced. source names
// y in errors and in Sources.
func (c Config) Overlay(y qyaml.YAML, source string) (Config, error) {
	if y.YAML == nil {
		c.Sources = append(append([]string{}, c.Sources...), source)
		return c, nil
	}
	if !isMapping(y) {
		return Config{}, errors.Errorf("%s: expected a mapping at the top level", source)
	}
	if err := checkKeys(y, knownKeys, ""); err != nil {
		return Config{}, errors.Wrap(err, source)
	}

	var err error
	if c.Pretty, err = y.Bool("pretty", c.Pretty); err != nil {
		return Config{}, errors.Wrap(err, source)
	}
	if y.Has("postcode-prefix") {
		c.PostcodePrefix = y.String("postcode-prefix")
	}
	if y.Has("on-error") {
		policy, err := ParseErrorPolicy(y.String("on-error"))
		if err != nil {
			return Config{}, errors.Wrap(err, source)
		}
		c.OnError = policy
	}
	if c.OverwriteReserved, err = y.Bool("overwrite-reserved", c.OverwriteReserved); err != nil {
		return Config{}, errors.Wrap(err, source)
	}
	if c.ProgressEvery, err = y.Int("progress-every", c.ProgressEvery); err != nil {
		return Config{}, errors.Wrap(err, source)
	}

	if y.Has("street-names") {
		names := y.Sub("street-names")
		if err := checkKeys(names, knownStreetNameKeys, "street-names."); err != nil {
			return Config{}, errors.Wrap(err, source)
		}
		sn := &c.StreetNames
		if sn.WordBoundaries, err = names.Bool("word-boundaries", sn.WordBoundaries); err != nil {
			return Config{}, errors.Wrapf(err, "%s: street-names", source)
		}
		if sn.UnicodeNFC, err = names.Bool("unicode-nfc", sn.UnicodeNFC); err != nil {
			return Config{}, errors.Wrapf(err, "%s: street-names", source)
		}
		if sn.CacheSize, err = names.Int("cache-size", sn.CacheSize); err != nil {
			return Config{}, errors.Wrapf(err, "%s: street-names", source)
		}
		if names.Has("contractions") {
			if sn.Contractions, err = names.StringPairs("contractions"); err != nil {
				return Config{}, errors.Wrapf(err, "%s: street-names.contractions", source)
			}
		}
		if names.Has("expansions") {
			if sn.Expansions, err = names.StringPairs("expansions"); err != nil {
				return Config{}, errors.Wrapf(err, "%s: street-names.expansions", source)
			}
		}
	}

	c.Sources = append(append([]string{}, c.Sources...), source)
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, source)
	}
	return c, nil
}

func isMapping(y qyaml.YAML) bool {
	_, ok := y.YAML.(map[interface{}]interface{})
	return ok
}

func checkKeys(y qyaml.YAML, known map[string]bool, prefix string) error {
	m, ok := y.YAML.(map[interface{}]interface{})
	if !ok {
		if y.YAML == nil {
			return nil
		}
		return errors.Errorf("%s: expected a mapping", strings.TrimSuffix(prefix, "."))
	}
	var unknown []string
	for k := range m {
		key, _ := k.(string)
		if !known[key] {
			unknown = append(unknown, prefix+key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.Errorf("unknown config keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Validate checks settings that cannot be checked key by key.
func (c Config) Validate() error {
	if c.OnError != Abort && c.OnError != Skip {
		return errors.Errorf("on-error must be %q or %q, got %q", Abort, Skip, c.OnError)
	}
	if c.ProgressEvery < 0 {
		return errors.Errorf("progress-every must not be negative, got %d", c.ProgressEvery)
	}
	if c.StreetNames.CacheSize < 0 {
		return errors.Errorf("street-names.cache-size must not be negative, got %d", c.StreetNames.CacheSize)
	}
	return nil
}

// StreetNormalizer builds the street name normalizer c describes.
func (c Config) StreetNormalizer() (*streetname.Normalizer, error) {
	return streetname.New(c.StreetNames.Tables, c.StreetNames.Options)
}

// Shaper builds the element shaper c describes.
func (c Config) Shaper() (*shape.Shaper, error) {
	street, err := c.StreetNormalizer()
	if err != nil {
		return nil, err
	}
	return &shape.Shaper{
		Street:            street,
		PostcodePrefix:    c.PostcodePrefix,
		OverwriteReserved: c.OverwriteReserved,
	}, nil
}

// Overrides are settings given on the command line. Nil fields leave the
// configured value alone.
type Overrides struct {
	Pretty            *bool
	PostcodePrefix    *string
	OnError           *string
	OverwriteReserved *bool
	WordBoundaries    *bool
}

// Apply returns a copy of c with the non-nil overrides set.
func (c Config) Apply(o Overrides) (Config, error) {
	if o.Pretty != nil {
		c.Pretty = *o.Pretty
	}
	if o.PostcodePrefix != nil {
		c.PostcodePrefix = *o.PostcodePrefix
	}
	if o.OnError != nil {
		policy, err := ParseErrorPolicy(*o.OnError)
		if err != nil {
			return Config{}, errors.Wrap(err, "--on-error")
		}
		c.OnError = policy
	}
	if o.OverwriteReserved != nil {
		c.OverwriteReserved = *o.OverwriteReserved
	}
	if o.WordBoundaries != nil {
		c.StreetNames.WordBoundaries = *o.WordBoundaries
	}
	return c, c.Validate()
}
