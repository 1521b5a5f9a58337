package osmxml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrNoFile is returned when the input file does not exist.
var ErrNoFile = errors.New("osm file not found")

// elementKinds are the OSM objects delivered as Elements. Any other element
// found outside an element (osm, osmChange, create, action, new and so on) is
// a wrapper: the reader descends into it and drops its text.
var elementKinds = map[string]bool{
	"node":      true,
	"way":       true,
	"relation":  true,
	"changeset": true,
	"bounds":    true,
	"bound":     true,
}

const readBufferSize = 64 * 1024

// A SyntaxError reports XML that cannot be read as OSM data.
type SyntaxError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("malformed osm xml %s at byte %d: %s", path, e.Offset, e.Err)
}

// A Reader pulls one Element at a time from an OSM XML stream, so files of
// any size can be processed in constant memory.
type Reader struct {
	Path string
	File *os.File

	dec  *xml.Decoder
	done bool
}

// Open opens the OSM file at path for reading.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, translateErr(err)
	}
	r := NewReader(file)
	r.Path = path
	r.File = file
	return r, nil
}

// NewReader reads OSM XML from src. Closing the Reader does not close src.
// Documents declaring a non-UTF-8 encoding, such as ISO-8859-1, are decoded
// to UTF-8.
func NewReader(src io.Reader) *Reader {
	dec := xml.NewDecoder(bufio.NewReaderSize(src, readBufferSize))
	dec.CharsetReader = charsetReader
	return &Reader{dec: dec}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %q", label)
	}
	if enc == nil {
		return nil, errors.Errorf("unsupported encoding %q", label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func translateErr(e error) error {
	if os.IsNotExist(e) {
		return ErrNoFile
	}
	return e
}

func (r *Reader) Close() error {
	if r.File != nil {
		if err := r.File.Close(); err != nil {
			return err
		}
		r.File = nil
	}
	return nil
}

// ReadAll reads all remaining elements. Only suitable for small inputs.
func (r *Reader) ReadAll() ([]*Element, error) {
	res := []*Element{}
	for {
		el, err := r.Next()
		if err != nil {
			return nil, err
		}
		if el == nil {
			break
		}
		res = append(res, el)
	}
	return res, nil
}

// Next reads the next top-level element with its tag and nd children. When
// the input is exhausted, returns nil with no error.
func (r *Reader) Next() (*Element, error) {
	if r.done {
		return nil, nil
	}

	var cur *Element
	depth := 0
	for {
		offset := r.dec.InputOffset()
		tok, err := r.dec.Token()
		if err == io.EOF {
			r.done = true
			if cur != nil {
				return nil, r.syntaxErr(offset, errors.Errorf("unexpected EOF inside %s", cur))
			}
			return nil, nil
		}
		if err != nil {
			r.done = true
			return nil, r.syntaxErr(offset, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if cur == nil {
				if !elementKinds[name] {
					continue
				}
				cur = &Element{Kind: name, Attrs: attrMap(t.Attr), Offset: offset}
				depth = 1
				continue
			}
			depth++
			if depth != 2 {
				continue
			}
			switch name {
			case "tag":
				tag, err := parseTag(t.Attr)
				if err != nil {
					r.done = true
					return nil, r.syntaxErr(offset, errors.Errorf("%s: %s", cur, err))
				}
				cur.Tags = append(cur.Tags, tag)
			case "nd":
				ref, ok := attrValue(t.Attr, "ref")
				if !ok {
					r.done = true
					return nil, r.syntaxErr(offset, errors.Errorf("%s: <nd> without ref", cur))
				}
				cur.Refs = append(cur.Refs, ref)
			}
		case xml.EndElement:
			if cur == nil {
				continue
			}
			depth--
			if depth == 0 {
				return cur, nil
			}
		}
	}
}

func (r *Reader) syntaxErr(offset int64, err error) error {
	return &SyntaxError{Path: r.Path, Offset: offset, Err: err}
}

func attrMap(attrs []xml.Attr) map[string]string {
	res := make(map[string]string, len(attrs))
	for _, a := range attrs {
		res[a.Name.Local] = a.Value
	}
	return res
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseTag(attrs []xml.Attr) (Tag, error) {
	key, ok := attrValue(attrs, "k")
	if !ok {
		return Tag{}, errors.New("<tag> without k")
	}
	value, _ := attrValue(attrs, "v")
	return Tag{Key: key, Value: value}, nil
}
