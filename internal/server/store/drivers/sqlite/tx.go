package sqlite

import (
	"database/sql"

	"github.com/galhub/galhub/internal/server/store"
)

// storeTx exposes the repositories bound to an open transaction. Lifecycle
// (commit/rollback) is owned by Store.WithTx.
type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) Users() store.Users     { return &usersRepo{db: t.tx} }
func (t *storeTx) Games() store.Games     { return &gamesRepo{db: t.tx} }
func (t *storeTx) Tags() store.Tags       { return &tagsRepo{db: t.tx} }
func (t *storeTx) Reviews() store.Reviews { return &reviewsRepo{db: t.tx} }
