// Package config builds the producer's runtime configuration from the environment.
//
// The configuration is read once at startup (optionally seeded from a .env file) and passed
// explicitly to the connector, the logger and the scheduler loop. It selects one of two
// database backends, PostgreSQL or Oracle, and the session adapter used to talk to it:
// pgx.Conn, sql.DB or sqlx.DB.
package config
