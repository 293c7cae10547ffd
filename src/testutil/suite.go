// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// Result is one timed subtest.
type Result struct {
	Name     string
	Duration time.Duration
	Passed   bool
}

// Suite times subtests and logs a summary when the parent test ends.
type Suite struct {
	name    string
	t       *testing.T
	results []Result
}

// NewSuite registers the summary with t.Cleanup.
func NewSuite(t *testing.T, name string) *Suite {
	s := &Suite{name: name, t: t}
	t.Cleanup(func() { t.Log(s.Summary()) })
	return s
}

// Run runs fn as a subtest and records how long it took.
func (s *Suite) Run(name string, fn func(t *testing.T)) bool {
	start := time.Now()
	ok := s.t.Run(name, fn)
	s.results = append(s.results, Result{Name: name, Duration: time.Since(start), Passed: ok})
	return ok
}

func (s *Suite) Results() []Result { return s.results }

func (s *Suite) Summary() string {
	var b strings.Builder
	passed := 0
	var total time.Duration
	for _, r := range s.results {
		total += r.Duration
		if r.Passed {
			passed++
		}
	}
	fmt.Fprintf(&b, "📊 %s: %d/%d passed in %v\n", s.name, passed, len(s.results), total)
	for _, r := range s.results {
		status := "✅"
		if !r.Passed {
			status = "❌"
		}
		fmt.Fprintf(&b, "   %s %s: %v\n", status, r.Name, r.Duration)
	}
	return b.String()
}

// AssertFaster fails t when d exceeds limit.
func AssertFaster(t *testing.T, name string, d, limit time.Duration) {
	t.Helper()
	if d > limit {
		t.Errorf("❌ %s took %v, expected less than %v", name, d, limit)
	}
}
