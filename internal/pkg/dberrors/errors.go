package dberrors

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// IsConnectionError reports whether err means the database could not be reached,
// as opposed to a rejected statement. Class 08 is connection_exception, 57P0x are
// admin/crash shutdowns.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}

	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}
