package handlers

import (
	"context"
	"errors"

	apierrors "github.com/bookwise/recommender/internal/errors"
	"github.com/bookwise/recommender/internal/repository"
)

// toAPIError maps domain errors onto their HTTP rendering. Store and timeout
// failures keep the cause in Details so it is logged but never sent.
func toAPIError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, repository.ErrBookNotFound):
		return apierrors.NotFound("Book")
	case errors.Is(err, context.DeadlineExceeded):
		return apierrors.Timeout("request").WithDetails(err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		return apierrors.ServiceUnavailable("book store").WithDetails(err.Error())
	default:
		return apierrors.InternalError("").WithDetails(err.Error())
	}
}
