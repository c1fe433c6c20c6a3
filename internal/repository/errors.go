// Package repository contains the data access layer. This file defines
// error values and helpers shared across repositories. Sentinel values let
// handlers distinguish failure scenarios: ErrForbidden maps to HTTP 403,
// ErrConflict to HTTP 409, and the per-entity not-found sentinels to 404.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent records, such as deleting a flight that still has tickets.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation
// (error 1062). Uniqueness constraints are the final arbiter for
// case-insensitive airport names, route pairs and ticket seats, so writes
// translate this error into the matching sentinel instead of retrying.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(strings.ToLower(err.Error()), "error 1062")
}
