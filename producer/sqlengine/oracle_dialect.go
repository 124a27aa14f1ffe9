package sqlengine

import (
	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

// goqu has no Oracle dialect, so the Oracle statements are fixed strings with :n placeholders.
const (
	dialectOracle = "oracle"

	oraInsertUser = `INSERT INTO USERS (USERNAME, EMAIL, FULL_NAME, STATUS) ` +
		`VALUES (:1, :2, :3, :4) RETURNING ID INTO :5`

	oraSelectRandomUser = `SELECT ID, USERNAME FROM USERS ` +
		`ORDER BY DBMS_RANDOM.VALUE FETCH FIRST 1 ROWS ONLY`

	oraUpdateUserStatus = `UPDATE USERS SET STATUS = :1, UPDATED_AT = CURRENT_TIMESTAMP WHERE ID = :2`

	oraInsertActivity = `INSERT INTO USER_ACTIVITIES (USER_ID, ACTIVITY_TYPE, DESCRIPTION, IP_ADDRESS, USER_AGENT) ` +
		`VALUES (:1, :2, :3, :4, :5) RETURNING ID INTO :6`
)

type oracleDialect struct{}

// Oracle returns the Oracle dialect. Inserts return the generated id through an output
// parameter, which needs a database/sql based adapter.
func Oracle() Dialect {
	return oracleDialect{}
}

func (oracleDialect) Name() string {
	return dialectOracle
}

func (oracleDialect) ReturnsIDViaOutParam() bool {
	return true
}

func (oracleDialect) InsertUser(user producer.UserRecord) (Statement, error) {
	return Statement{
		SQL:  oraInsertUser,
		Args: []any{user.Username, user.Email, user.FullName, string(user.Status)},
		ID:   IDFromOutParam,
	}, nil
}

func (oracleDialect) SelectRandomUser() (Statement, error) {
	return Statement{SQL: oraSelectRandomUser}, nil
}

func (oracleDialect) UpdateUserStatus(userID int64, status producer.UserStatus) (Statement, error) {
	return Statement{
		SQL:  oraUpdateUserStatus,
		Args: []any{string(status), userID},
	}, nil
}

func (oracleDialect) InsertActivity(activity producer.ActivityRecord) (Statement, error) {
	return Statement{
		SQL: oraInsertActivity,
		Args: []any{
			activity.UserID,
			string(activity.Type),
			activity.Description,
			activity.IPAddress,
			activity.UserAgent,
		},
		ID: IDFromOutParam,
	}, nil
}
