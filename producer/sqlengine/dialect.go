package sqlengine

import (
	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

// IDBinding tells the store how a generated id comes back from an INSERT.
type IDBinding int

const (
	// IDNone means the statement does not return an id.
	IDNone IDBinding = iota

	// IDFromRow means the statement returns the id as a result row (RETURNING id).
	IDFromRow

	// IDFromOutParam means the id is bound to a trailing output parameter (RETURNING id INTO :n).
	IDFromOutParam
)

// Statement is a ready-to-execute SQL statement with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
	ID   IDBinding
}

// Dialect renders the four statements the producer needs for one database product.
type Dialect interface {
	Name() string
	// ReturnsIDViaOutParam reports whether inserts bind the generated id to an output parameter.
	ReturnsIDViaOutParam() bool
	InsertUser(user producer.UserRecord) (Statement, error)
	SelectRandomUser() (Statement, error)
	UpdateUserStatus(userID int64, status producer.UserStatus) (Statement, error)
	InsertActivity(activity producer.ActivityRecord) (Statement, error)
}
