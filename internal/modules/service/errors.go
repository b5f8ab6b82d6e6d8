package service

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/unidash/unidash/internal/infra/db"
	"gorm.io/gorm"
)

// Service layer errors. Callers wrap them with context and test with
// errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = db.ErrStoreUnavailable
	// ErrUpstream marks a failed call to the AI provider.
	ErrUpstream = errors.New("ai provider error")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(what string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
}

// translateErr maps store errors onto the service taxonomy. Errors that are
// already classified pass through unchanged.
func translateErr(err error, what string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrUpstream):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFoundErr(what, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return validationErr("%s %v already exists", what, id)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return validationErr("%s %v references a missing row", what, id)
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
