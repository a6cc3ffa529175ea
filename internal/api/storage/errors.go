package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/lib/pq"
)

// PostgreSQL error codes the API reacts to
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeNotNullViolation    pq.ErrorCode = "23502"
	codeCheckViolation      pq.ErrorCode = "23514"
	codeStringTooLong       pq.ErrorCode = "22001"
)

// translate turns driver errors into domain errors. Errors it does not
// recognize are wrapped with op and left for the service to report.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return &domain.Error{
			Kind:    domain.KindDuplicate,
			Message: "record already exists",
			Details: map[string]any{"constraint": pqErr.Constraint},
			Err:     pqErr,
		}
	case codeForeignKeyViolation:
		return &domain.Error{
			Kind:    domain.KindValidation,
			Message: "invalid reference",
			Details: map[string]any{"constraint": pqErr.Constraint},
			Err:     pqErr,
		}
	case codeNotNullViolation, codeCheckViolation, codeStringTooLong:
		de := &domain.Error{
			Kind:    domain.KindValidation,
			Message: "invalid field value",
			Err:     pqErr,
		}
		if pqErr.Column != "" {
			de.With("field", pqErr.Column)
		}
		if pqErr.Constraint != "" {
			de.With("constraint", pqErr.Constraint)
		}
		return de
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}
