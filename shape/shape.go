// Package shape turns OSM elements into the flat JSON documents written by
// osmjson.
//
// A node or way becomes a Record with its id, type, optional visibility and
// position, a "created" object holding its edit metadata, and its tags.
// addr:* tags are gathered under "address" (street names normalized,
// out-of-region postcodes dropped), tiger:* tags under "tiger", and every
// other tag becomes a top-level field. Tags whose keys contain punctuation
// or whitespace are dropped.
package shape

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/osmwrangle/osmjson/osmxml"
)

// Record fields set by the shaper itself.
const (
	FieldID       = "id"
	FieldType     = "type"
	FieldVisible  = "visible"
	FieldPos      = "pos"
	FieldCreated  = "created"
	FieldAddress  = "address"
	FieldTiger    = "tiger"
	FieldNodeRefs = "node_refs"
)

// CreatedAttrs are the element attributes copied into "created". All of
// them are required.
var CreatedAttrs = []string{"version", "changeset", "timestamp", "user", "uid"}

// ReservedFields may not be set by a tag unless OverwriteReserved is set.
var ReservedFields = map[string]bool{
	FieldID:       true,
	FieldType:     true,
	FieldVisible:  true,
	FieldPos:      true,
	FieldCreated:  true,
	FieldAddress:  true,
	FieldTiger:    true,
	FieldNodeRefs: true,
}

// ProblemChars disqualify a tag key.
const ProblemChars = "=+/&<>;'\"?%#$@,. \t\r\n"

const (
	addrPrefix  = "addr:"
	tigerPrefix = "tiger:"
)

// A Record is one shaped element, ready for JSON encoding. Values are
// strings, []float64 (pos), []string (node_refs) or map[string]string
// (created, address, tiger). Records are not modified after Shape returns
// them.
type Record map[string]interface{}

// ID returns the record's id.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Type returns the record's element kind.
func (r Record) Type() string {
	kind, _ := r[FieldType].(string)
	return kind
}

// A NameNormalizer canonicalizes addr:street values.
type NameNormalizer interface {
	Normalize(name string) string
}

// A Shaper converts elements to Records. The zero Shaper keeps street names
// as-is and every postcode.
type Shaper struct {
	Street NameNormalizer

	// PostcodePrefix, when set, drops addr:postcode values that do not
	// start with it.
	PostcodePrefix string

	// OverwriteReserved lets tags named like a reserved field replace it.
	// Otherwise such tags are dropped with a warning.
	OverwriteReserved bool
}

// Shape converts el into a Record. Elements other than nodes and ways
// yield a nil Record and no error.
func (s *Shaper) Shape(el *osmxml.Element) (Record, error) {
	if el.Kind != osmxml.KindNode && el.Kind != osmxml.KindWay {
		return nil, nil
	}

	id, ok := el.Attr("id")
	if !ok {
		return nil, &MissingAttributeError{Kind: el.Kind, Attribute: "id"}
	}
	rec := Record{
		FieldID:   id,
		FieldType: el.Kind,
	}
	if visible, ok := el.Attr("visible"); ok {
		rec[FieldVisible] = visible
	}

	pos, err := position(el)
	if err != nil {
		return nil, err
	}
	if pos != nil {
		rec[FieldPos] = pos
	}

	created := make(map[string]string, len(CreatedAttrs))
	for _, attr := range CreatedAttrs {
		value, ok := el.Attr(attr)
		if !ok {
			return nil, &MissingAttributeError{Kind: el.Kind, ElementID: id, Attribute: attr}
		}
		created[attr] = value
	}
	rec[FieldCreated] = created

	address := map[string]string{}
	tiger := map[string]string{}
	for _, tag := range el.Tags {
		key := tag.Key
		switch {
		case strings.ContainsAny(key, ProblemChars):
			continue
		case strings.HasPrefix(key, addrPrefix):
			s.addAddress(address, key[len(addrPrefix):], tag.Value)
		case strings.HasPrefix(key, tigerPrefix):
			tiger[key[len(tigerPrefix):]] = tag.Value
		case ReservedFields[key] && !s.OverwriteReserved:
			log.Printf("%s: dropping tag %q=%q, %q is a reserved field", el, key, tag.Value, key)
		default:
			rec[key] = tag.Value
		}
	}

	if len(address) > 0 {
		rec[FieldAddress] = address
	}
	if len(tiger) > 0 {
		rec[FieldTiger] = tiger
	}
	if len(el.Refs) > 0 {
		refs := make([]string, len(el.Refs))
		copy(refs, el.Refs)
		rec[FieldNodeRefs] = refs
	}
	return rec, nil
}

// addAddress files an addr:<field> tag under address. Nested fields such as
// addr:city:en are dropped.
func (s *Shaper) addAddress(address map[string]string, field, value string) {
	switch {
	case strings.Contains(field, ":"):
	case field == "street":
		address[field] = s.normalizeStreet(value)
	case field == "postcode":
		if strings.HasPrefix(value, s.PostcodePrefix) {
			address[field] = value
		}
	default:
		address[field] = value
	}
}

func (s *Shaper) normalizeStreet(name string) string {
	if s.Street == nil {
		return name
	}
	return s.Street.Normalize(name)
}

// position parses lat and lon when both are present; if either is missing
// the element has no position.
func position(el *osmxml.Element) ([]float64, error) {
	lat, hasLat := el.Attr("lat")
	lon, hasLon := el.Attr("lon")
	if !hasLat || !hasLon {
		return nil, nil
	}
	latf, err := coordinate(el, "lat", lat)
	if err != nil {
		return nil, err
	}
	lonf, err := coordinate(el, "lon", lon)
	if err != nil {
		return nil, err
	}
	return []float64{latf, lonf}, nil
}

func coordinate(el *osmxml.Element, attr, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &InvalidCoordinateError{
			Kind:      el.Kind,
			ElementID: el.ID(),
			Attribute: attr,
			Value:     value,
		}
	}
	return f, nil
}
