package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements run on tx. Services own the
// transaction (BeginTx/Commit on *sql.DB); repositories call this from
// WithTx so gorm and raw SQL share one unit of work.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// A non-nil Context forces gorm to clone the statement, so swapping the
	// pool below never touches the shared handle.
	scoped := db.Session(&gorm.Session{
		NewDB:                  true,
		Context:                context.Background(),
		SkipDefaultTransaction: true,
	})
	scoped.Statement.ConnPool = tx
	return scoped
}
