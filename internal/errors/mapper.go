// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/utils/pagination"
	"github.com/oggyb/gym-buddy/internal/validation"
)

// Map converts domain/repo/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var decodeErr *availability.DecodeError
	var validationErr *validation.Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFacilityNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrThreadNotFound),
		errors.Is(err, domain.ErrMessageNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrSelfDecision),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidReaction),
		errors.Is(err, pagination.ErrInvalidToken),
		errors.As(err, &decodeErr),
		errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrNotParticipant):
		return status.Error(codes.PermissionDenied, err.Error())

	case errors.Is(err, domain.ErrMatchInactive):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
