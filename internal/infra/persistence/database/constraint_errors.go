package database

import (
	"strings"

	"tasklist/internal/errors"

	"gorm.io/gorm"
)

// Driver messages for unique violations, used when the dialect does not translate errors.
var uniqueViolationMarkers = []string{
	"unique constraint failed", // sqlite
	"duplicate entry",          // mysql 1062
	"duplicate key value",      // postgres 23505
	"sqlstate 23505",
}

var foreignKeyViolationMarkers = []string{
	"foreign key constraint failed",   // sqlite
	"a foreign key constraint fails",  // mysql 1452
	"violates foreign key constraint", // postgres 23503
}

func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return containsAny(err.Error(), uniqueViolationMarkers)
}

func isForeignKeyConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return containsAny(err.Error(), foreignKeyViolationMarkers)
}

func containsAny(msg string, markers []string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
