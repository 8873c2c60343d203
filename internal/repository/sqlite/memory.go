package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// OpenMemory opens a named, migrated in-memory database. Connections are capped
// at one so every query sees the same database.
func OpenMemory(ctx context.Context, name string) (*sqlx.DB, error) {
	db, err := Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
