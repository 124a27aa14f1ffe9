package sqlengine

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration

	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

const (
	dialectPostgres        = "postgres"
	pgTableUsers           = "users"
	pgTableActivities      = "user_activities"
	pgColID                = "id"
	pgColUsername          = "username"
	pgColEmail             = "email"
	pgColFullName          = "full_name"
	pgColStatus            = "status"
	pgColUpdatedAt         = "updated_at"
	pgColUserID            = "user_id"
	pgColActivityType      = "activity_type"
	pgColDescription       = "description"
	pgColIPAddress         = "ip_address"
	pgColUserAgent         = "user_agent"
	pgExprRandom           = "RANDOM()"
	pgExprCurrentTimestamp = "CURRENT_TIMESTAMP"
)

type postgresDialect struct {
	builder goqu.DialectWrapper
}

// Postgres returns the PostgreSQL dialect. Statements use $n placeholders.
func Postgres() Dialect {
	return postgresDialect{builder: goqu.Dialect(dialectPostgres)}
}

func (d postgresDialect) Name() string {
	return dialectPostgres
}

func (d postgresDialect) ReturnsIDViaOutParam() bool {
	return false
}

func (d postgresDialect) InsertUser(user producer.UserRecord) (Statement, error) {
	sqlQuery, args, err := d.builder.
		Insert(pgTableUsers).
		Prepared(true).
		Rows(goqu.Record{
			pgColUsername: user.Username,
			pgColEmail:    user.Email,
			pgColFullName: user.FullName,
			pgColStatus:   string(user.Status),
		}).
		Returning(pgColID).
		ToSQL()
	if err != nil {
		return Statement{}, err
	}

	return Statement{SQL: sqlQuery, Args: args, ID: IDFromRow}, nil
}

func (d postgresDialect) SelectRandomUser() (Statement, error) {
	sqlQuery, args, err := d.builder.
		From(pgTableUsers).
		Prepared(true).
		Select(pgColID, pgColUsername).
		Order(goqu.L(pgExprRandom).Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return Statement{}, err
	}

	return Statement{SQL: sqlQuery, Args: args}, nil
}

func (d postgresDialect) UpdateUserStatus(userID int64, status producer.UserStatus) (Statement, error) {
	sqlQuery, args, err := d.builder.
		Update(pgTableUsers).
		Prepared(true).
		Set(goqu.Record{
			pgColStatus:    string(status),
			pgColUpdatedAt: goqu.L(pgExprCurrentTimestamp),
		}).
		Where(goqu.C(pgColID).Eq(userID)).
		ToSQL()
	if err != nil {
		return Statement{}, err
	}

	return Statement{SQL: sqlQuery, Args: args}, nil
}

func (d postgresDialect) InsertActivity(activity producer.ActivityRecord) (Statement, error) {
	sqlQuery, args, err := d.builder.
		Insert(pgTableActivities).
		Prepared(true).
		Rows(goqu.Record{
			pgColUserID:       activity.UserID,
			pgColActivityType: string(activity.Type),
			pgColDescription:  activity.Description,
			pgColIPAddress:    activity.IPAddress,
			pgColUserAgent:    activity.UserAgent,
		}).
		Returning(pgColID).
		ToSQL()
	if err != nil {
		return Statement{}, err
	}

	return Statement{SQL: sqlQuery, Args: args, ID: IDFromRow}, nil
}
