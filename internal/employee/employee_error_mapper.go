package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrms/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if mapped := uniqueViolation(pgErr.ConstraintName); mapped != nil {
			return mapped
		}
	}

	// sqlite and wrapped driver errors only carry the text
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint failed") {
		if mapped := uniqueViolation(msg); mapped != nil {
			return mapped
		}
	}

	return err
}

func uniqueViolation(s string) error {
	switch {
	case strings.Contains(s, "employee_code"):
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	case strings.Contains(s, "identity_id"):
		return employeeerrors.ErrIdentityAlreadyLinked
	case strings.Contains(s, "email"):
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	return nil
}
