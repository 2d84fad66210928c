// Package services holds the use cases behind the HTTP handlers. Every public
// method runs in exactly one unit of work obtained from repositories.Store.
//
// Services defined in this package:
// - PokemonService: pokemon CRUD, each pokemon bound to an existing trainer
// - TrainerService: trainer CRUD with owned pokemon counts
// - SchoolService: students, courses and enrollments
package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

// requestLogger returns the logger carried by ctx when the request logging
// middleware installed one, else fallback.
func requestLogger(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != zerolog.DefaultContextLogger && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &fallback
}

// logFailure starts an Error event for storage and unexpected failures and a
// Warn event for failures the caller caused.
func logFailure(l *zerolog.Logger, err error) *zerolog.Event {
	if errors.Is(err, apperrors.ErrStorage) || !isClientError(err) {
		return l.Error().Err(err)
	}
	return l.Warn().Err(err)
}

func isClientError(err error) bool {
	return apperrors.Is(err, apperrors.ErrNotFound,
		apperrors.ErrReferenceNotFound,
		apperrors.ErrInvalidEnumValue,
		apperrors.ErrIDMismatch,
		apperrors.ErrConflict,
		apperrors.ErrValidationFailed,
	)
}
