package db

import (
	"chat-relay/config"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Connect opens the credential database described by c and verifies it is
// reachable before handing it back.
func Connect(c *config.DBConfig) (*bun.DB, error) {
	pgconn := pgdriver.NewConnector(
		pgdriver.WithNetwork("tcp"),
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", c.Host, c.Port)),
		pgdriver.WithUser(c.User),
		pgdriver.WithPassword(c.Password),
		pgdriver.WithDatabase(c.Name),
		pgdriver.WithInsecure(c.SSLMode == "disable"),
		pgdriver.WithTimeout(5*time.Second),
		pgdriver.WithDialTimeout(5*time.Second),
		pgdriver.WithReadTimeout(5*time.Second),
		pgdriver.WithWriteTimeout(5*time.Second),
	)

	sqldb := sql.OpenDB(pgconn)
	db := bun.NewDB(sqldb, pgdialect.New())
	db.SetConnMaxIdleTime(15 * time.Second)
	db.SetConnMaxLifetime(1 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "could not ping db")
	}

	return db, nil
}
