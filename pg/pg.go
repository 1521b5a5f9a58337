// Package pg connects to the PostgreSQL database osmjson documents are
// loaded into.
package pg

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/osmwrangle/osmjson/text"
	"github.com/pkg/errors"
)

type DB struct {
	*sql.DB
}

// A ConnSpec names a database and how to reach it. Empty fields are left
// to libpq's defaults, except SSLMode, which defaults to "disable".
type ConnSpec struct {
	User, Password string
	Database       string
	Host           string
	Port           int
	SSLMode        string
}

// SpecFromEnv reads a ConnSpec from OSMJSON_DBNAME, OSMJSON_DBUSER,
// OSMJSON_DBPASS, OSMJSON_DBHOST, OSMJSON_DBPORT and OSMJSON_DBSSLMODE.
func SpecFromEnv() ConnSpec {
	return ConnSpec{
		Database: os.Getenv("OSMJSON_DBNAME"),
		User:     os.Getenv("OSMJSON_DBUSER"),
		Password: os.Getenv("OSMJSON_DBPASS"),
		Host:     os.Getenv("OSMJSON_DBHOST"),
		Port:     text.ParseInt(os.Getenv("OSMJSON_DBPORT"), 0),
		SSLMode:  os.Getenv("OSMJSON_DBSSLMODE"),
	}
}

func (c ConnSpec) sslMode() string {
	return text.FirstNotEmpty(c.SSLMode, "disable")
}

// quoteValue quotes a connection string value if libpq would otherwise
// split or misread it.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.Replace(v, `\`, `\\`, -1)
	v = strings.Replace(v, `'`, `\'`, -1)
	return "'" + v + "'"
}

// ConnectionString renders c in libpq key=value form. The password is
// only sent along with a user.
func (c ConnSpec) ConnectionString() string {
	parts := []string{"sslmode=" + quoteValue(c.sslMode())}
	if c.Database != "" {
		parts = append(parts, "dbname="+quoteValue(c.Database))
	}
	if c.User != "" {
		parts = append(parts, "user="+quoteValue(c.User))
		if c.Password != "" {
			parts = append(parts, "password="+quoteValue(c.Password))
		}
	}
	if c.Host != "" {
		parts = append(parts, "host="+quoteValue(c.Host))
	}
	if c.Port > 0 {
		parts = append(parts, "port="+strconv.Itoa(c.Port))
	}
	return strings.Join(parts, " ")
}

// String describes c for logs and errors, without the password.
func (c ConnSpec) String() string {
	host := text.FirstNotEmpty(c.Host, "localhost")
	if c.Port > 0 {
		host += ":" + strconv.Itoa(c.Port)
	}
	if c.User != "" {
		host = c.User + "@" + host
	}
	return fmt.Sprintf("postgres://%s/%s", host, c.Database)
}

// Open opens a connection pool for c and checks that the server answers.
func (c ConnSpec) Open() (DB, error) {
	dbh, err := sql.Open("postgres", c.ConnectionString())
	if err != nil {
		return DB{}, errors.Wrap(err, "connect "+c.String())
	}
	if err := dbh.Ping(); err != nil {
		dbh.Close()
		return DB{}, errors.Wrap(err, "connect "+c.String())
	}
	return DB{dbh}, nil
}
