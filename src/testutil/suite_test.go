package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSuiteRecordsResults(t *testing.T) {
	s := NewSuite(t, "suite")

	s.Run("first", func(t *testing.T) {})
	s.Run("second", func(t *testing.T) { time.Sleep(time.Millisecond) })

	results := s.Results()
	assert.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "second", results[1].Name)
	assert.GreaterOrEqual(t, results[1].Duration, time.Millisecond)
	assert.Contains(t, s.Summary(), "2/2 passed")
}

func TestAssertFaster(t *testing.T) {
	AssertFaster(t, "fast", time.Millisecond, time.Second)
	assert.False(t, t.Failed())
}
