package repository

import (
	"errors"

	"github.com/yz4230/asgard-console/internal/entity"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey
)

// translate maps gorm errors onto the entity sentinels callers check against.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return errors.Join(entity.ErrNotFound, err)
	case errors.Is(err, ErrDuplicate):
		return errors.Join(entity.ErrConflict, err)
	}
	return err
}
