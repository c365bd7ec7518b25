package stats

import (
	"time"
)

// Defines the calls we make to the stdlib time package. Allows for overriding in tests.
type StatsTime interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type defaultStatsTime struct{}

func (defaultStatsTime) Now() time.Time                  { return time.Now() }
func (defaultStatsTime) Since(t time.Time) time.Duration { return time.Since(t) }

// Returns a StatsTime instance backed by the stdlib 'time' package
func DefaultStatsTime() StatsTime { return defaultStatsTime{} }

// Test utility: time that only moves when told to.
type testStatsTime struct {
	now time.Time
}

func NewTestTime(now time.Time) *testStatsTime { return &testStatsTime{now} }

func (t *testStatsTime) Now() time.Time                  { return t.now }
func (t *testStatsTime) Since(s time.Time) time.Duration { return t.now.Sub(s) }
func (t *testStatsTime) Advance(d time.Duration)         { t.now = t.now.Add(d) }
