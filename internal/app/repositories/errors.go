package repositories

import (
	"fmt"

	"github.com/yigit/trainerapi/internal/pkg/apperrors"
	"github.com/yigit/trainerapi/internal/pkg/logger"
)

// storageError logs err and wraps it as ErrStorage so callers can tell a
// driver failure from a domain error without seeing the cause.
func storageError(op string, err error) error {
	logger.Error().Err(err).Str("op", op).Msg("Storage operation failed")
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, op, err)
}
