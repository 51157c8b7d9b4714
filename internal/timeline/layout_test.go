package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p6tools/p6view/internal/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testWindow() Window {
	// 100-day window for easy percentage math.
	return Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewWindow_PadsThirtyDays(t *testing.T) {
	acts := []*domain.Activity{
		{TaskID: "A", EarlyStart: date(2024, 3, 1), EarlyEnd: date(2024, 3, 20)},
		{TaskID: "B", EarlyStart: date(2024, 2, 1), EarlyEnd: date(2024, 2, 10)},
	}

	w, ok := NewWindow(acts)

	require.True(t, ok)
	assert.Equal(t, *date(2024, 1, 2), w.Start)
	assert.Equal(t, *date(2024, 4, 19), w.End)
}

func TestNewWindow_IgnoresPartialDates(t *testing.T) {
	acts := []*domain.Activity{
		{TaskID: "A", EarlyStart: date(2024, 1, 1)}, // no end
		{TaskID: "B", EarlyStart: date(2024, 6, 1), EarlyEnd: date(2024, 6, 5)},
	}

	w, ok := NewWindow(acts)

	require.True(t, ok)
	assert.Equal(t, *date(2024, 5, 2), w.Start, "dateless activity must not widen the window")
}

func TestNewWindow_NoDates(t *testing.T) {
	_, ok := NewWindow([]*domain.Activity{{TaskID: "A"}})
	assert.False(t, ok)

	_, ok = NewWindow(nil)
	assert.False(t, ok)
}

func TestSpan_Basic(t *testing.T) {
	w := testWindow()

	left, width, ok := w.Span(date(2024, 1, 11), date(2024, 1, 31))

	require.True(t, ok)
	assert.InDelta(t, 10.0, left, 1e-9)
	assert.InDelta(t, 20.0, width, 1e-9)
}

func TestSpan_MissingDatesRenderNothing(t *testing.T) {
	w := testWindow()

	_, _, ok := w.Span(nil, date(2024, 2, 1))
	assert.False(t, ok)

	_, _, ok = w.Span(date(2024, 2, 1), nil)
	assert.False(t, ok)

	_, _, ok = w.Span(nil, nil)
	assert.False(t, ok)
}

func TestSpan_MilestoneClampsToMinimumWidth(t *testing.T) {
	w := testWindow()

	// Identical start and end: the bar gets exactly the minimum width,
	// never zero.
	_, width, ok := w.Span(date(2024, 2, 1), date(2024, 2, 1))

	require.True(t, ok)
	assert.Equal(t, MinBarWidthPct, width)
}

func TestSpan_ClipsToWindow(t *testing.T) {
	w := testWindow()

	left, width, ok := w.Span(date(2023, 11, 1), date(2024, 6, 1))

	require.True(t, ok)
	assert.Zero(t, left)
	assert.InDelta(t, 100.0, width, 1e-9)
}

func TestSpan_EndBeforeStart(t *testing.T) {
	w := testWindow()

	_, width, ok := w.Span(date(2024, 2, 10), date(2024, 2, 1))

	require.True(t, ok)
	assert.Equal(t, MinBarWidthPct, width, "inverted dates degrade to a milestone")
}

func TestTodayPct(t *testing.T) {
	w := testWindow()

	// Day 50 of the 100-day window.
	pct, ok := w.TodayPct(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.InDelta(t, 50.0, pct, 1e-9)

	_, ok = w.TodayPct(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "marker only renders inside the window")

	_, ok = w.TodayPct(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}
