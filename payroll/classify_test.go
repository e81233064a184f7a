package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNightHour(t *testing.T) {
	night := []int{22, 23, 0, 1, 2, 3, 4, 5}
	day := []int{6, 7, 12, 18, 21}
	for _, h := range night {
		assert.True(t, IsNightHour(h), "hour %d", h)
	}
	for _, h := range day {
		assert.False(t, IsNightHour(h), "hour %d", h)
	}
}

func TestClassify_SundayInJanuary2025(t *testing.T) {
	c := NewClassifier(jan2025(t), nil)

	h := c.Classify(HourUnit{Day: 5, Hour: 23})
	assert.True(t, h.InMonth)
	assert.True(t, h.Holiday, "2025-01-05 is a Sunday")
	assert.True(t, h.Night)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), h.Date)
	assert.Equal(t, WeekKey("2025-01/B1"), h.Week)

	h = c.Classify(HourUnit{Day: 6, Hour: 10})
	assert.False(t, h.Holiday)
	assert.False(t, h.Night)
	assert.Equal(t, WeekKey("2025-01/B1"), h.Week)

	h = c.Classify(HourUnit{Day: 8, Hour: 10})
	assert.Equal(t, WeekKey("2025-01/B2"), h.Week)
}

func TestClassify_SpillOverDayHasNoCalendarDate(t *testing.T) {
	// May 2025 ends on a Saturday; day 32 would be Sunday 2025-06-01
	may, err := NewMonth(2025, time.May)
	require.NoError(t, err)
	c := NewClassifier(may, ISOWeeks{})

	h := c.Classify(HourUnit{Day: 32, Hour: 3})
	assert.False(t, h.InMonth)
	assert.False(t, h.Holiday)
	assert.True(t, h.Night, "night does not need a calendar date")
	assert.True(t, h.Date.IsZero())
	assert.Empty(t, h.Week)
}

func TestClassifyTimeline_KeepsChronologicalOrder(t *testing.T) {
	m := jan2025(t)
	tl, err := NewTimeline(m, []Shift{
		{StartDay: 2, StartHour: 10, EndDay: 2, EndHour: 12},
		{StartDay: 1, StartHour: 23, EndDay: 2, EndHour: 1},
	})
	require.NoError(t, err)

	hours := NewClassifier(m, nil).ClassifyTimeline(tl)
	require.Len(t, hours, 4)
	assert.Equal(t, HourUnit{Day: 1, Hour: 23}, hours[0].HourUnit)
	assert.Equal(t, HourUnit{Day: 2, Hour: 0}, hours[1].HourUnit)
	assert.Equal(t, HourUnit{Day: 2, Hour: 10}, hours[2].HourUnit)
	assert.Equal(t, HourUnit{Day: 2, Hour: 11}, hours[3].HourUnit)
}
