package utils

import (
	"github.com/google/uuid"
	"github.com/piresc/kirimin/internal/pkg/apperror"
)

// ResourceID checks an id taken from a path or message. A malformed id can
// never name a stored record, so it is reported as not found.
func ResourceID(entity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound(entity, id)
	}
	return nil
}

// CallerID checks the identity carried by the caller's token
func CallerID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.Validation("caller id %q is not a valid id", id)
	}
	return nil
}
