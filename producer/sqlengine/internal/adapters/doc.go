// Package adapters provide database session adapter implementations for the SQL store.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgx.Conn, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, so the store works with any supported session type.
//
// The adapters translate each library's transaction, row and "no rows" semantics into the
// unified DBTx, DBRow and ErrNoRows vocabulary.
package adapters
