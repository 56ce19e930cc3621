package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// overlapConstraint is the exclusion constraint that keeps reservations of a
// court from overlapping on the same date.
const overlapConstraint = "no_overlap_reservation"

var (
	ErrScheduleConflict = errors.New("schedule conflict")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidItem      = errors.New("invalid reservation format")
)

// ClassifyError marks overlap violations with ErrScheduleConflict and returns
// every other error unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if constraintName(err) == overlapConstraint {
		return fmt.Errorf("%w: %w", ErrScheduleConflict, err)
	}
	return err
}

func constraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// ErrorMessage is the text a caller sees for a batch failure. Server errors
// keep only the message Postgres sent, whichever driver reported it.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrScheduleConflict):
		return ErrScheduleConflict.Error()
	case errors.Is(err, ErrInvalidItem):
		return ErrInvalidItem.Error()
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Message != "" {
		return pqErr.Message
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Message != "" {
		return pgErr.Message
	}
	return err.Error()
}
