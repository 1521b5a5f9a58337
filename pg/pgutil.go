package pg

import (
	"log"

	"github.com/lib/pq"
)

// RowExists checks if query returns any rows
func (p DB) RowExists(query string, binds ...interface{}) (bool, error) {
	rows, err := p.Query(query, binds...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	exists := rows.Next()
	return exists, rows.Err()
}

// TableExists checks if a table named table is visible on the search path.
func (p DB) TableExists(table string) (bool, error) {
	return p.RowExists(`select 1 from pg_class
                                where relkind = 'r' and relname = $1
                                  and pg_table_is_visible(oid)`,
		table)
}

// DocTableDDL returns the statements creating a document table: the
// element id and type as text columns, the record itself as jsonb.
func DocTableDDL(table string) []string {
	t := pq.QuoteIdentifier(table)
	return []string{
		"create table if not exists " + t + ` (
  id text not null,
  type text not null,
  doc jsonb not null
)`,
		"create index if not exists " + pq.QuoteIdentifier(table+"_type_id") +
			" on " + t + " (type, id)",
	}
}

// CreateDocTable creates the document table if it does not exist. Its
// index is created in either case.
func (p DB) CreateDocTable(table string) error {
	exists, err := p.TableExists(table)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("Using existing table %s", table)
	} else {
		log.Printf("Creating document table %s", table)
	}
	for _, ddl := range DocTableDDL(table) {
		if _, err := p.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// TruncateTable deletes every row of table.
func (p DB) TruncateTable(table string) error {
	_, err := p.Exec("truncate table " + pq.QuoteIdentifier(table))
	return err
}
