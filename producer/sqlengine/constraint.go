package sqlengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sijms/go-ora/v2/network"
)

const (
	pgUniqueViolation     = "23505" // unique_violation
	oracleUniqueViolation = 1       // ORA-00001: unique constraint violated
)

// isUniqueViolation reports whether err was raised by a uniqueness constraint, for any of the
// supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode == oracleUniqueViolation
	}

	return false
}
