package utils

import (
	"fmt"
	"time"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Today is the server-local calendar date in models.DateLayout.
func Today(now time.Time) string {
	return now.Format(models.DateLayout)
}

// MonthPrefix validates a YYYY-MM filter.
func MonthPrefix(month string) (string, error) {
	if month == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", fmt.Errorf("%w: month must be YYYY-MM", apperr.ErrInvalidInput)
	}
	return month, nil
}

// ToObjectID parses a hex id, wrapping failures as apperr.ErrInvalidID.
func ToObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", apperr.ErrInvalidID, id)
	}
	return objID, nil
}

// ToObjectIDs parses every id in ids.
func ToObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := ToObjectID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, objID)
	}
	return out, nil
}
