// Package helper starts a throwaway PostgreSQL for integration tests and creates the producer's
// tables in it. The session adapter under test is chosen with the ADAPTER_TYPE environment
// variable (pgx, sql.db or sqlx.db, default pgx).
//
// Everything except this file is built with the integration tag only:
//
//	ADAPTER_TYPE=sqlx.db go test -tags integration ./...
package helper
