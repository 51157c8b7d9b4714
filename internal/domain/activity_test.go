package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestActivityStatus(t *testing.T) {
	cases := []struct {
		progress float64
		want     ActivityStatus
	}{
		{0, StatusNotStarted},
		{-5, StatusNotStarted},
		{0.5, StatusInProgress},
		{50, StatusInProgress},
		{99.9, StatusInProgress},
		{100, StatusCompleted},
		{120, StatusCompleted},
	}
	for _, tc := range cases {
		a := &Activity{ProgressPct: tc.progress}
		assert.Equal(t, tc.want, a.Status(), "progress=%v", tc.progress)
	}
}

func TestIsCritical(t *testing.T) {
	assert.True(t, (&Activity{TotalFloatDays: 0}).IsCritical())
	assert.True(t, (&Activity{TotalFloatDays: -2}).IsCritical())
	assert.False(t, (&Activity{TotalFloatDays: 0.5}).IsCritical())
}

func TestHasDates(t *testing.T) {
	end := testStart.AddDate(0, 0, 10)

	a := &Activity{EarlyStart: &testStart, EarlyEnd: &end}
	assert.True(t, a.HasDates())

	assert.False(t, (&Activity{EarlyStart: &testStart}).HasDates())
	assert.False(t, (&Activity{EarlyEnd: &end}).HasDates())
	assert.False(t, (&Activity{}).HasDates())
}

func TestSortStart_NilSortsFirst(t *testing.T) {
	with := &Activity{EarlyStart: &testStart}
	without := &Activity{}

	require.True(t, without.SortStart().Before(with.SortStart()))
	assert.True(t, without.SortStart().IsZero())
}
