// Package sqlxrepos implements the school repositories over Postgres with
// sqlx. Identifiers follow the opaque policy only: UUIDs assigned at insert
// time, no read-before-write and no collision window.
package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core/school"
)

const fkViolationCode = "23503"

// checkID rejects identifier strings that cannot be UUIDs before they reach
// the engine.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return school.ErrMalformedID
	}
	return nil
}

// trapNoRowsErr maps psql "no rows" to the entity's not-found error.
func trapNoRowsErr(err, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// trapFKViolation maps a foreign-key restriction to the entity's
// delete-blocker error. The schema's ON DELETE RESTRICT constraints back the
// service-level dependency checks, closing their check-then-delete window.
func trapFKViolation(err, blocked error, msg string) error {
	var pqErr *pq.Error
	if errors.As(errors.Cause(err), &pqErr) && pqErr.Code == fkViolationCode {
		return blocked
	}
	return errors.Wrap(err, msg)
}
