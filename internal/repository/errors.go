package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATEs that mean the transaction lost a race and the caller
// may retry: serialization_failure, deadlock_detected, lock_not_available.
var contentionCodes = map[string]bool{
	"40001": true,
	"40P01": true,
	"55P03": true,
}

// IsLockContention reports whether err is transient row-lock contention
// rather than a real failure.
func IsLockContention(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return contentionCodes[pgErr.Code]
	}
	return false
}
