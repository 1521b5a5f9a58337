package action

import (
	"log"

	"github.com/osmwrangle/osmjson/loader"
	"github.com/osmwrangle/osmjson/pg"
)

// Load copies the documents in files into table, creating the table if it
// does not exist. truncate empties the table first.
func Load(dbspec pg.ConnSpec, table string, truncate bool, files []string) error {
	db, err := dbspec.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	l := loader.New(db, table)
	if err := db.CreateDocTable(l.Table); err != nil {
		return err
	}
	if truncate {
		log.Printf("Truncating %s", l.Table)
		if err := db.TruncateTable(l.Table); err != nil {
			return err
		}
	}
	for _, file := range files {
		if err := l.LoadFile(file); err != nil {
			return err
		}
	}
	log.Printf("Loaded %d documents into %s on %s", l.RowCount, l.Table, dbspec)
	return nil
}
