package store

import sq "github.com/Masterminds/squirrel"

// psql builds PostgreSQL-flavoured statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `id, create_date, last_seen_date, login_count, username, person`

const (
	createUser = `INSERT INTO "user" (username, person)
    VALUES ($1, $2)
    RETURNING ` + userColumns + `;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM "user"
    WHERE username = $1;`

	touchUser = `UPDATE "user"
    SET last_seen_date = $1
    WHERE id = $2
    RETURNING ` + userColumns + `;`

	markUserLoggedIn = `UPDATE "user"
    SET last_seen_date = $1, login_count = login_count + 1
    WHERE id = $2
    RETURNING ` + userColumns + `;`

	countUsers = `SELECT COUNT(*) FROM "user";`
)

const sessionColumns = `id, user_id, token, create_date, last_seen_date, requests_count, COALESCE(host(last_address), '')`

const (
	createSession = `INSERT INTO user_session (user_id, token, create_date, last_seen_date, requests_count, last_address)
    VALUES ($1, $2, $3, $3, 0, NULLIF($4, '')::inet)
    RETURNING ` + sessionColumns + `;`

	touchSession = `UPDATE user_session
    SET last_seen_date = $1, last_address = NULLIF($2, '')::inet, requests_count = requests_count + 1
    WHERE token = $3
    RETURNING ` + sessionColumns + `;`

	deleteSession = `DELETE FROM user_session WHERE id = $1;`
)

const (
	findPasswordByUserID = `SELECT id, user_id, last_updated_date, password_hash
    FROM user_password
    WHERE user_id = $1;`

	upsertPassword = `INSERT INTO user_password (user_id, last_updated_date, password_hash)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id) DO UPDATE
    SET last_updated_date = EXCLUDED.last_updated_date, password_hash = EXCLUDED.password_hash
    RETURNING id, user_id, last_updated_date, password_hash;`
)

// listUsersQuery pages over users ordered by id. The window count carries
// the total row count on every returned row.
func listUsersQuery(limit, offset uint64) (string, []any, error) {
	inner := psql.Select(userColumns).From(`"user"`)

	return psql.Select("t.*", "COUNT(*) OVER () AS total_count").
		FromSelect(inner, "t").
		OrderBy("t.id").
		Limit(limit).
		Offset(offset).
		ToSql()
}
