// Package qyaml wraps a generically decoded YAML document with typed key
// accessors.
package qyaml

import (
	"strconv"
	"strings"

	"github.com/osmwrangle/osmjson/conv"
	"github.com/osmwrangle/osmjson/text"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// YAML is a decoded YAML value, usually a mapping.
type YAML struct {
	YAML interface{}
}

// Parse decodes a YAML document.
func Parse(data []byte) (YAML, error) {
	var res interface{}
	err := yaml.Unmarshal(data, &res)
	return YAML{res}, err
}

// Key returns the raw value at key, or nil if y is not a mapping or the key
// is absent.
func (y YAML) Key(key string) interface{} {
	switch v := y.YAML.(type) {
	case map[interface{}]interface{}:
		return v[key]
	}
	return nil
}

// Has checks if y is a mapping that defines key.
func (y YAML) Has(key string) bool {
	if v, ok := y.YAML.(map[interface{}]interface{}); ok {
		_, exists := v[key]
		return exists
	}
	return false
}

// Sub returns the value at key wrapped as a YAML.
func (y YAML) Sub(key string) YAML {
	return YAML{y.Key(key)}
}

func (y YAML) String(key string) string {
	return text.Str(y.Key(key))
}

// Bool returns the boolean at key, or defval if the key is absent. A value
// that is neither a YAML boolean nor a yes/no word is an error.
func (y YAML) Bool(key string, defval bool) (bool, error) {
	if !y.Has(key) {
		return defval, nil
	}
	switch v := y.Key(key).(type) {
	case bool:
		return v, nil
	case string:
		if b, ok := text.ParseBool(v); ok {
			return b, nil
		}
	}
	return defval, errors.Errorf("%s: expected a boolean, got %#v", key, y.Key(key))
}

// Int returns the integer at key, or defval if the key is absent. A value
// that is not an integer is an error.
func (y YAML) Int(key string, defval int) (int, error) {
	if !y.Has(key) {
		return defval, nil
	}
	switch v := y.Key(key).(type) {
	case int:
		return v, nil
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, nil
		}
	}
	return defval, errors.Errorf("%s: expected an integer, got %#v", key, y.Key(key))
}

// StringPairs reads the list of [from, to] pairs at key.
func (y YAML) StringPairs(key string) ([][]string, error) {
	return conv.IStringPairs(y.Key(key))
}
