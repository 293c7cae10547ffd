package candidates

import (
	"testing"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckStageChange(t *testing.T) {
	tests := []struct {
		from, to string
		wantErr  bool
	}{
		{models.StageApplied, models.StageScreening, false},
		{models.StageApplied, models.StageOffered, false},
		{models.StageInterview, models.StageRejected, false},
		{models.StageInterview, models.StageScreening, true},
		{models.StageHired, models.StageRejected, true},
		{models.StageRejected, models.StageApplied, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			err := CheckStageChange(tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
