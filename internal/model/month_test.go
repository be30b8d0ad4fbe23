package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", Month{Year: 2025, Month: time.March}.Key())
	assert.Equal(t, "2025-11", Month{Year: 2025, Month: time.November}.Key())
}

func TestMonthOf(t *testing.T) {
	at := time.Date(2025, time.July, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Month{Year: 2025, Month: time.July}, MonthOf(at))
}

func TestAddMonths_YearBoundaries(t *testing.T) {
	nov := Month{Year: 2024, Month: time.November}
	assert.Equal(t, Month{Year: 2025, Month: time.February}, nov.AddMonths(3))
	assert.Equal(t, Month{Year: 2024, Month: time.August}, nov.AddMonths(-3))
	assert.Equal(t, nov, nov.AddMonths(0))
}

func TestBefore(t *testing.T) {
	jan := Month{Year: 2025, Month: time.January}
	dec := Month{Year: 2024, Month: time.December}
	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.False(t, jan.Before(jan))
}

func TestMonthsBetween(t *testing.T) {
	jan := Month{Year: 2025, Month: time.January}
	assert.Equal(t, 0, jan.MonthsBetween(jan))
	assert.Equal(t, 11, jan.MonthsBetween(Month{Year: 2025, Month: time.December}))
	assert.Equal(t, -1, jan.MonthsBetween(Month{Year: 2024, Month: time.December}))
	assert.Equal(t, 12, jan.MonthsBetween(Month{Year: 2026, Month: time.January}))
}
