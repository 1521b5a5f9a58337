// Package osmxml streams elements out of OpenStreetMap XML files.
package osmxml

import "fmt"

// Kinds of elements the shaper cares about. Other top-level elements
// (relation, bounds, changeset, ...) are still read and reported with their
// own Kind.
const (
	KindNode = "node"
	KindWay  = "way"
)

// A Tag is one <tag k="..." v="..."/> child.
type Tag struct {
	Key, Value string
}

// An Element is one top-level OSM element as it appears in the file: its
// attributes verbatim, its tags and its node references in document order.
type Element struct {
	Kind  string
	Attrs map[string]string
	Tags  []Tag
	Refs  []string

	// Offset is the byte offset of the element's start tag in the input.
	Offset int64
}

// Attr returns the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	value, ok := e.Attrs[name]
	return value, ok
}

// ID returns the id attribute, or "" if the element has none.
func (e *Element) ID() string {
	return e.Attrs["id"]
}

func (e *Element) String() string {
	if id, ok := e.Attrs["id"]; ok {
		return fmt.Sprintf("%s %s", e.Kind, id)
	}
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}
