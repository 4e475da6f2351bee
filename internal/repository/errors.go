package repository

import "strings"

// IsUniqueViolation reports whether err is a uniqueness-constraint failure
// from any of the supported drivers. Races on unique columns (email, team
// name) resolve to this error rather than undefined behavior, and handlers
// surface it as a conflict.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") || // postgres
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
