// Package data holds the built-in osmjson configuration.
package data

import (
	_ "embed"

	"github.com/osmwrangle/osmjson/qyaml"
)

//go:embed osmjson.yml
var defaultConfig []byte

// DefaultConfigFile is the name the embedded defaults are reported under.
const DefaultConfigFile = "osmjson.yml (built-in)"

// Defaults parses the built-in configuration, panicking on error.
func Defaults() qyaml.YAML {
	y, err := qyaml.Parse(defaultConfig)
	if err != nil {
		panic(err)
	}
	return y
}

// DefaultsText returns the built-in configuration document, for use as a
// template for custom config files.
func DefaultsText() string {
	return string(defaultConfig)
}
