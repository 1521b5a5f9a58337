// Package jsonl writes and reads streams of JSON documents, one document per
// record, each terminated by a newline.
package jsonl

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Indent is the per-level indentation of pretty output.
const Indent = "  "

// A Writer encodes values as newline-terminated JSON documents.
type Writer struct {
	Path  string
	Count int64

	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewWriter writes documents to w, compact one-per-line, or indented when
// pretty is set. HTML characters are written as-is.
func NewWriter(w io.Writer, pretty bool) *Writer {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", Indent)
	}
	return &Writer{buf: buf, enc: enc}
}

// Create truncates or creates the file at path and returns a Writer for it.
func Create(path string, pretty bool) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create output")
	}
	w := NewWriter(file, pretty)
	w.Path = path
	w.file = file
	return w, nil
}

// Write encodes v as one document.
func (w *Writer) Write(v interface{}) error {
	if err := w.enc.Encode(v); err != nil {
		return errors.Wrapf(err, "write record %d", w.Count+1)
	}
	w.Count++
	return nil
}

// Flush writes any buffered documents to the underlying writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Close flushes the Writer and closes its file, if it owns one.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
		w.file = nil
	}
	return err
}

// A Reader decodes consecutive JSON documents, compact or indented.
type Reader struct {
	Path  string
	Count int64

	file *os.File
	dec  *json.Decoder
}

// NewReader reads documents from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(r))}
}

// Open opens the document file at path.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open documents")
	}
	r := NewReader(file)
	r.Path = path
	r.file = file
	return r, nil
}

// Next decodes the next document into v. Returns io.EOF when no documents
// remain.
func (r *Reader) Next(v interface{}) error {
	if err := r.dec.Decode(v); err != nil {
		if err == io.EOF {
			return err
		}
		return errors.Wrapf(err, "%s: document %d", r.Path, r.Count+1)
	}
	r.Count++
	return nil
}

func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
