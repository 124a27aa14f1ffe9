package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	go_ora "github.com/sijms/go-ora/v2"
)

// DSN returns the PostgreSQL connection URL, usable by pgx and lib/pq alike.
func (p Postgres) DSN(connectTimeout time.Duration) string {
	query := url.Values{}
	query.Set("sslmode", "disable")

	if seconds := int(connectTimeout.Seconds()); seconds > 0 {
		query.Set("connect_timeout", strconv.Itoa(seconds))
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Describe returns the target without credentials, for log lines.
func (p Postgres) Describe() string {
	return fmt.Sprintf("%s:%d/%s", p.Host, p.Port, p.Database)
}

// URL returns the go-ora connection URL.
func (o Oracle) URL(connectTimeout time.Duration) string {
	options := map[string]string{}

	if seconds := int(connectTimeout.Seconds()); seconds > 0 {
		options["CONNECTION TIMEOUT"] = strconv.Itoa(seconds)
	}

	return go_ora.BuildUrl(o.Host, o.Port, o.Service, o.User, o.Password, options)
}

// Describe returns the target without the password, for log lines.
func (o Oracle) Describe() string {
	return fmt.Sprintf("%s@%s:%d/%s", o.User, o.Host, o.Port, o.Service)
}

// Target describes the configured database without credentials.
func (c Config) Target() string {
	if c.Backend == BackendOracle {
		return c.Oracle.Describe()
	}

	return c.Postgres.Describe()
}
