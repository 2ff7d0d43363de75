package service

import (
	"errors"

	"github.com/shenikar/disaster_response_system/internal/models"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, models.ErrConflict)
}
