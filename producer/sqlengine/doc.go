// Package sqlengine implements producer.Store on top of a single SQL database session.
//
// Two backends are supported through a Dialect:
//
//   - PostgreSQL (tables "users" and "user_activities"), statements built with goqu
//   - Oracle (tables "USERS" and "USER_ACTIVITIES"), hand-written statements using
//     RETURNING ... INTO output parameters
//
// The session itself is accessed through one of three adapters, selected by the constructor:
//
//	store, err := sqlengine.NewStoreFromPGXConn(conn)                             // PostgreSQL via pgx
//	store, err := sqlengine.NewStoreFromSQLDB(db, sqlengine.WithDialect(sqlengine.Oracle())) // database/sql
//	store, err := sqlengine.NewStoreFromSQLX(db)                                  // sqlx
//
// Uniqueness violations are reported as producer.ErrConstraintViolation regardless of the driver,
// and an empty users table as producer.ErrNoUsers.
//
// Open and Connect build a Store straight from a config.Config, Connect retrying while the
// database is still starting up.
package sqlengine
