package person

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	personerrors "go-sirh/internal/person/errors"
)

// mapPersistenceError translates driver-level unique violations into the
// package's conflict sentinels so callers never see raw pg errors.
func mapPersistenceError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_person_national_id":
			return personerrors.ErrNationalIDAlreadyExists
		case "uq_person_employee_number":
			return personerrors.ErrEmployeeNumberAlreadyExists
		}
	}

	// gorm may surface the violation as a plain string when the driver
	// error is wrapped.
	msg := err.Error()
	if strings.Contains(msg, "uq_person_national_id") {
		return personerrors.ErrNationalIDAlreadyExists
	}
	if strings.Contains(msg, "uq_person_employee_number") {
		return personerrors.ErrEmployeeNumberAlreadyExists
	}

	return err
}
