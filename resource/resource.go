// Package resource reads YAML resources from the osmjson root directory.
package resource

import (
	"github.com/osmwrangle/osmjson/qyaml"
	"github.com/osmwrangle/osmjson/root"
	"github.com/pkg/errors"
)

// Root is the directory relative resource paths resolve against: the value
// of $OSMJSON_ROOT, or the working directory.
var Root = root.New("", "OSMJSON_ROOT")

// ParseYAML reads and parses the YAML file at path under Root.
func ParseYAML(path string) (qyaml.YAML, error) {
	bytes, err := Root.Bytes(path)
	if err != nil {
		return qyaml.YAML{}, errors.Wrap(err, "read config")
	}
	y, err := qyaml.Parse(bytes)
	if err != nil {
		return qyaml.YAML{}, errors.Wrapf(err, "parse %s", Root.Path(path))
	}
	return y, nil
}
