package assessments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pulsepad-backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func scored(employee primitive.ObjectID, score float64) models.DailyAssessment {
	return models.DailyAssessment{EmployeeID: employee, Status: models.AssessmentValidated, FinalScore: &score}
}

func TestAverageScoreIgnoresUnscored(t *testing.T) {
	emp := primitive.NewObjectID()
	list := []models.DailyAssessment{
		scored(emp, 0.5),
		scored(emp, 1.0),
		{EmployeeID: emp, Status: models.AssessmentSubmitted},
		{EmployeeID: emp, Status: models.AssessmentValidated}, // no score recorded
	}

	avg, count, ok := AverageScore(list)

	require.True(t, ok)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 0.75, avg, 1e-9)
}

func TestAverageScoreNothingScored(t *testing.T) {
	_, _, ok := AverageScore([]models.DailyAssessment{{Status: models.AssessmentAssigned}})
	assert.False(t, ok)
}

func TestRankPerformanceSortsDescendingStable(t *testing.T) {
	a, b, c, d := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	list := []models.DailyAssessment{
		scored(a, 0.5),
		scored(b, 0.9),
		scored(c, 0.5),
		scored(b, 0.7),
		{EmployeeID: d, Status: models.AssessmentSubmitted},
	}

	rows := RankPerformance(list)

	require.Len(t, rows, 3)
	assert.Equal(t, b.Hex(), rows[0].EmployeeID)
	assert.InDelta(t, 80.0, rows[0].Percentage, 1e-9)
	// a and c tie; a was seen first
	assert.Equal(t, a.Hex(), rows[1].EmployeeID)
	assert.Equal(t, c.Hex(), rows[2].EmployeeID)
}

type memoryCache struct {
	gen  int64
	rows map[string][]models.EmployeePerformance
}

func newMemoryCache() *memoryCache {
	return &memoryCache{rows: map[string][]models.EmployeePerformance{}}
}

func (c *memoryCache) key(gen int64, month string) string {
	return fmt.Sprintf("%d:%s", gen, month)
}

func (c *memoryCache) Get(_ context.Context, month string) ([]models.EmployeePerformance, int64, bool) {
	rows, ok := c.rows[c.key(c.gen, month)]
	return rows, c.gen, ok
}

func (c *memoryCache) Set(_ context.Context, month string, gen int64, rows []models.EmployeePerformance) {
	if gen != c.gen {
		return
	}
	c.rows[c.key(gen, month)] = rows
}

func (c *memoryCache) Invalidate(context.Context) { c.gen++ }

func TestLeaderboardDoesNotCacheRowsReadBeforeInvalidate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cache := newMemoryCache()
	svc := NewService(store, WithCache(cache), WithClock(func() time.Time { return fixedNow }))

	emp := primitive.NewObjectID()
	a := scored(emp, 0.5)
	a.Date = "2026-10-16"
	store.assessments = append(store.assessments, a)

	// A validation lands after the leaderboard read but before it is cached.
	store.afterList = func() {
		store.afterList = nil
		score := 1.0
		store.assessments[0].FinalScore = &score
		cache.Invalidate(ctx)
	}

	first, err := svc.Leaderboard(ctx, "2026-10")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.InDelta(t, 0.5, first[0].Average, 1e-9)

	second, err := svc.Leaderboard(ctx, "2026-10")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.InDelta(t, 1.0, second[0].Average, 1e-9)

	_, err = svc.Leaderboard(ctx, "2026-10")
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}
