// Package loader copies osmjson output into a PostgreSQL document table.
package loader

import (
	"encoding/json"
	"io"
	"log"

	"github.com/lib/pq"
	"github.com/osmwrangle/osmjson/jsonl"
	"github.com/osmwrangle/osmjson/pg"
	"github.com/pkg/errors"
)

// LoadBufferSize is the number of documents copied per transaction.
const LoadBufferSize = 50000

// DefaultTable is the document table used when none is named.
const DefaultTable = "osm_elements"

// A Doc is one record as loaded: its id and type pulled out for indexing,
// and the record JSON verbatim.
type Doc struct {
	ID   string
	Type string
	JSON []byte
}

// ParseDoc extracts the id and type of one record.
func ParseDoc(raw []byte) (Doc, error) {
	var head struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Doc{}, errors.Wrap(err, "record")
	}
	if head.ID == "" || head.Type == "" {
		return Doc{}, errors.Errorf("record without id and type: %.80s", raw)
	}
	return Doc{ID: head.ID, Type: head.Type, JSON: raw}, nil
}

// A Loader copies documents into Table, one transaction per full buffer.
type Loader struct {
	DB       pg.DB
	Table    string
	RowCount int64

	buffer *DocBuffer
}

// New creates a loader writing to table, or DefaultTable if table is empty.
func New(db pg.DB, table string) *Loader {
	if table == "" {
		table = DefaultTable
	}
	return &Loader{
		DB:     db,
		Table:  table,
		buffer: NewBuffer(LoadBufferSize),
	}
}

// CopyStatement is the COPY statement the loader prepares.
func (l *Loader) CopyStatement() string {
	return pq.CopyIn(l.Table, "id", "type", "doc")
}

// LoadFile copies every document in the osmjson output file at path and
// commits them.
func (l *Loader) LoadFile(path string) error {
	reader, err := jsonl.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	log.Printf("Loading %s into %s", path, l.Table)
	for {
		var raw json.RawMessage
		err := reader.Next(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		doc, err := ParseDoc(raw)
		if err != nil {
			return errors.Wrapf(err, "%s: document %d", path, reader.Count)
		}
		if err := l.Add(doc); err != nil {
			return err
		}
	}
	return l.Flush()
}

// Add buffers doc, flushing the buffer first if it is full.
func (l *Loader) Add(doc Doc) error {
	if l.buffer.IsFull() {
		if err := l.Flush(); err != nil {
			return err
		}
	}
	l.buffer.Add(doc)
	return nil
}

// Flush copies all buffered documents in one transaction and clears the
// buffer.
func (l *Loader) Flush() error {
	docs := l.buffer.Docs
	if len(docs) == 0 {
		return nil
	}

	txn, err := l.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "Loader.Flush.Begin")
	}
	fail := func(err error) error {
		txn.Rollback()
		return err
	}
	st, err := txn.Prepare(l.CopyStatement())
	if err != nil {
		return fail(errors.Wrap(err, "Loader.Flush.Prepare"))
	}
	for _, d := range docs {
		if _, err := st.Exec(d.ID, d.Type, string(d.JSON)); err != nil {
			return fail(errors.Wrapf(err, "Loader.Flush.Exec(%s %s)", d.Type, d.ID))
		}
	}
	if _, err := st.Exec(); err != nil {
		return fail(errors.Wrap(err, "Loader.Flush.Exec"))
	}
	if err := st.Close(); err != nil {
		return fail(errors.Wrap(err, "Loader.Flush.Close"))
	}
	if err := txn.Commit(); err != nil {
		return errors.Wrap(err, "Loader.Flush.Commit")
	}

	l.RowCount += int64(len(docs))
	log.Printf("%s: Committed %d (total: %d)\n", l.Table, len(docs), l.RowCount)
	l.buffer.Clear()
	return nil
}
