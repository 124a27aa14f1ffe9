package sqlengine

import (
	"github.com/AntonStoeckl/cdc-load-producer/producer/sqlengine/internal/adapters"
)

// NewStoreFromAdapter exposes store construction on an arbitrary session adapter to tests.
func NewStoreFromAdapter(db adapters.DBAdapter, options ...Option) (*Store, error) {
	return newStore(db, options...)
}

var IsUniqueViolation = isUniqueViolation
