package service

import "strings"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// failure (SQLSTATE 23505). Matched by message to avoid tying the service
// layer to a concrete driver error type.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
