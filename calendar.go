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

package coreledger

import (
	"time"

	"github.com/coreledger-io/coreledger/model"
)

func (c *CoreLedger) CreateCalendar(cal model.Calendar) (model.Calendar, error) {
	return c.datasource.CreateCalendar(cal)
}

func (c *CoreLedger) GetCalendar(id string) (*model.Calendar, error) {
	return c.datasource.GetCalendarByID(id)
}

func (c *CoreLedger) GetAllCalendars(limit, offset int) ([]model.Calendar, error) {
	return c.datasource.GetAllCalendars(limit, offset)
}

func (c *CoreLedger) UpdateCalendar(cal *model.Calendar) error {
	return c.datasource.UpdateCalendar(cal)
}

func (c *CoreLedger) DeleteCalendar(id string) error {
	return c.datasource.DeleteCalendar(id)
}

// AddCalendarHoliday registers a non-business date after checking the
// calendar exists.
func (c *CoreLedger) AddCalendarHoliday(holiday model.CalendarHoliday) (model.CalendarHoliday, error) {
	if _, err := c.datasource.GetCalendarByID(holiday.CalendarID); err != nil {
		return model.CalendarHoliday{}, err
	}
	return c.datasource.AddCalendarHoliday(holiday)
}

func (c *CoreLedger) GetCalendarHolidays(calendarID string, year int) ([]model.CalendarHoliday, error) {
	return c.datasource.GetCalendarHolidays(calendarID, year)
}

// IsBusinessDay answers whether date is a weekday that is not a holiday
// in the given calendar.
func (c *CoreLedger) IsBusinessDay(calendarID string, date time.Time) (bool, error) {
	if _, err := c.datasource.GetCalendarByID(calendarID); err != nil {
		return false, err
	}
	holidays, err := c.datasource.GetCalendarHolidays(calendarID, date.Year())
	if err != nil {
		return false, err
	}
	return model.IsBusinessDay(date, holidays), nil
}
