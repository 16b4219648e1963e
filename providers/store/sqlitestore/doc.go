// Package sqlitestore implements [store.Store] on top of SQLite using the
// pure-Go modernc.org/sqlite driver, so saves survive restarts without cgo.
//
// Quick start:
//
//	st, err := sqlitestore.Open(ctx, "tangshi.db")
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
// [Open] creates the table on first use. Callers that manage their own
// *sql.DB can use [New] and call [SQLiteStore.EnsureSchema] themselves.
package sqlitestore
