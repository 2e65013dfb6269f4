package dbindex

import (
	"github.com/jmoiron/sqlx"

	// the relational sources are normally backed by mysql
	_ "github.com/go-sql-driver/mysql"
)

// SQLConnectionSettings - relational database connection configuration
type SQLConnectionSettings struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Connect - opens and pings a relational database connection
func Connect(settings *SQLConnectionSettings) (*sqlx.DB, error) {

	db, err := sqlx.Connect(settings.Driver, settings.DSN)
	if err != nil {
		return nil, err
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}

	if settings.MaxIdleConns > 0 {
		db.SetMaxIdleConns(settings.MaxIdleConns)
	}

	return db, nil
}
