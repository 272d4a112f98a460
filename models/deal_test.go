package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeeklyDealCurrentlyActive(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	window := WeeklyDeal{
		Active:   true,
		StartsAt: now.Add(-24 * time.Hour),
		EndsAt:   now.Add(24 * time.Hour),
	}

	assert.True(t, window.CurrentlyActive(now))
	assert.True(t, window.CurrentlyActive(window.StartsAt), "Window bounds are inclusive")
	assert.True(t, window.CurrentlyActive(window.EndsAt))
	assert.False(t, window.CurrentlyActive(window.StartsAt.Add(-time.Second)))
	assert.False(t, window.CurrentlyActive(window.EndsAt.Add(time.Second)))

	switchedOff := window
	switchedOff.Active = false
	assert.False(t, switchedOff.CurrentlyActive(now))
}
