package util

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicate = errors.New("record already exists")

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// TranslateUniqueViolation turns a unique constraint failure into ErrDuplicate.
func TranslateUniqueViolation(err error) error {
	if IsUniqueViolation(err) {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
