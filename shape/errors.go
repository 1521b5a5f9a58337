package shape

import "fmt"

// A MissingAttributeError reports a node or way without its id or one of
// the creation attributes every record must carry.
type MissingAttributeError struct {
	Kind      string
	ElementID string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	if e.ElementID == "" {
		return fmt.Sprintf("%s without %q attribute", e.Kind, e.Attribute)
	}
	return fmt.Sprintf("%s %s: missing creation attribute %q", e.Kind, e.ElementID, e.Attribute)
}

// An InvalidCoordinateError reports a lat or lon attribute that is not a
// finite number.
type InvalidCoordinateError struct {
	Kind      string
	ElementID string
	Attribute string
	Value     string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("%s %s: invalid %s coordinate %q", e.Kind, e.ElementID, e.Attribute, e.Value)
}
