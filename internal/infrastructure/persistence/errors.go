package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shopfront/backend/internal/domain/shared"
)

// translateError maps gorm errors to domain errors. TranslateError is
// enabled on the connection, so unique violations arrive as
// gorm.ErrDuplicatedKey on both postgres and sqlite.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrConflict
	default:
		return err
	}
}
