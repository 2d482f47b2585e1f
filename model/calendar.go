/*
Copyright 2026 CoreLedger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import (
	"errors"
	"strings"
	"time"
)

// Calendar is a business-day calendar for a market.
type Calendar struct {
	ID         int64      `json:"-"`
	CalendarID string     `json:"calendar_id"`
	Name       string     `json:"name"`
	Market     string     `json:"market"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	DeletedAt  *time.Time `json:"-"`
}

// CalendarHoliday is a single non-business date in a calendar.
type CalendarHoliday struct {
	ID          int64     `json:"-"`
	CalendarID  string    `json:"calendar_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// NewCalendar validates and builds a calendar.
func NewCalendar(name, market string) (*Calendar, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("calendar name cannot be empty")
	}
	return &Calendar{
		Name:      strings.TrimSpace(name),
		Market:    strings.ToUpper(strings.TrimSpace(market)),
		CreatedAt: time.Now(),
	}, nil
}

// NewCalendarHoliday validates and builds a holiday entry.
func NewCalendarHoliday(calendarID string, date time.Time, description string) (*CalendarHoliday, error) {
	if calendarID == "" {
		return nil, errors.New("holiday requires a calendar")
	}
	if date.IsZero() {
		return nil, errors.New("holiday requires a date")
	}
	return &CalendarHoliday{
		CalendarID:  calendarID,
		Date:        date.Truncate(24 * time.Hour),
		Description: description,
	}, nil
}

// IsBusinessDay answers weekday-and-not-holiday for the given date.
// holidays must belong to a single calendar.
func IsBusinessDay(date time.Time, holidays []CalendarHoliday) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	y, m, d := date.Date()
	for _, h := range holidays {
		hy, hm, hd := h.Date.Date()
		if y == hy && m == hm && d == hd {
			return false
		}
	}
	return true
}
