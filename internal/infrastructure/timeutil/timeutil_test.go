package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_TracksSystemTime(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestFrozenClock_StaysPinned(t *testing.T) {
	at := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	clock := NewFrozenClock(at)

	assert.Equal(t, at, clock.Now())
	assert.Equal(t, at, clock.Now(), "repeated reads must not drift")
}

func TestFrozenClock_SetAndAdvance(t *testing.T) {
	clock := NewFrozenClock(time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC))

	clock.Advance(90 * time.Minute)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), clock.Now())

	pinned := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(pinned)
	assert.Equal(t, pinned, clock.Now())
}

func TestNowUTC(t *testing.T) {
	now := NowUTC()
	assert.Equal(t, time.UTC, now.Location())
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2026, 9, 15, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-15", FormatDate(at))
}

func TestFormatClock(t *testing.T) {
	at := time.Date(2026, 9, 15, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, "08:05", FormatClock(at))
}
