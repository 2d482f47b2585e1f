package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessDay(t *testing.T) {
	// 2026-03-02 is a Monday
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	holidays := []CalendarHoliday{
		{CalendarID: "cal_1", Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Description: "Carnival"},
	}

	assert.True(t, IsBusinessDay(monday, holidays))
	assert.False(t, IsBusinessDay(saturday, holidays))
	assert.False(t, IsBusinessDay(sunday, holidays))
	assert.False(t, IsBusinessDay(time.Date(2026, 3, 3, 12, 30, 0, 0, time.UTC), holidays))
}

func TestNewCalendarHoliday(t *testing.T) {
	h, err := NewCalendarHoliday("cal_1", time.Date(2026, 12, 25, 15, 4, 5, 0, time.UTC), "Christmas")
	assert.NoError(t, err)
	assert.Equal(t, "cal_1", h.CalendarID)

	_, err = NewCalendarHoliday("", time.Now(), "")
	assert.Error(t, err)

	_, err = NewCalendarHoliday("cal_1", time.Time{}, "")
	assert.Error(t, err)
}
