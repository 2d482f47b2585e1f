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

package database

import (
	"database/sql"
	"time"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func (d Datasource) CreateCalendar(cal model.Calendar) (model.Calendar, error) {
	cal.CalendarID = model.GenerateUUIDWithSuffix("cal")
	cal.CreatedAt = time.Now()

	_, err := d.Conn.Exec(`
		INSERT INTO calendars (calendar_id, name, market, created_at)
		VALUES ($1, $2, $3, $4)
	`, cal.CalendarID, cal.Name, cal.Market, cal.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return model.Calendar{}, apierror.NewAPIError(apierror.ErrConflict, "Calendar with this ID already exists", err)
		}
		return model.Calendar{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create calendar", err)
	}

	return cal, nil
}

func (d Datasource) GetCalendarByID(id string) (*model.Calendar, error) {
	cal := model.Calendar{}

	row := d.Conn.QueryRow(`
		SELECT calendar_id, name, COALESCE(market, ''), created_at, updated_at
		FROM calendars
		WHERE calendar_id = $1 AND deleted_at IS NULL
	`, id)

	err := row.Scan(&cal.CalendarID, &cal.Name, &cal.Market, &cal.CreatedAt, &cal.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Calendar not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve calendar", err)
	}

	return &cal, nil
}

func (d Datasource) GetAllCalendars(limit, offset int) ([]model.Calendar, error) {
	rows, err := d.Conn.Query(`
		SELECT calendar_id, name, COALESCE(market, ''), created_at, updated_at
		FROM calendars
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve calendars", err)
	}
	defer rows.Close()

	calendars := []model.Calendar{}
	for rows.Next() {
		cal := model.Calendar{}
		err = rows.Scan(&cal.CalendarID, &cal.Name, &cal.Market, &cal.CreatedAt, &cal.UpdatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan calendar data", err)
		}
		calendars = append(calendars, cal)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over calendars", err)
	}

	return calendars, nil
}

func (d Datasource) UpdateCalendar(cal *model.Calendar) error {
	result, err := d.Conn.Exec(`
		UPDATE calendars
		SET name = $2, market = $3, updated_at = NOW()
		WHERE calendar_id = $1 AND deleted_at IS NULL
	`, cal.CalendarID, cal.Name, cal.Market)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update calendar", err)
	}
	return requireAffected(result, "Calendar not found")
}

func (d Datasource) DeleteCalendar(id string) error {
	result, err := d.Conn.Exec(`
		UPDATE calendars SET deleted_at = NOW() WHERE calendar_id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete calendar", err)
	}
	return requireAffected(result, "Calendar not found")
}

func (d Datasource) AddCalendarHoliday(holiday model.CalendarHoliday) (model.CalendarHoliday, error) {
	err := d.Conn.QueryRow(`
		INSERT INTO calendar_holidays (calendar_id, date, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, holiday.CalendarID, holiday.Date, holiday.Description).Scan(&holiday.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return model.CalendarHoliday{}, apierror.NewAPIError(apierror.ErrConflict, "Holiday already exists for this date", err)
		}
		return model.CalendarHoliday{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to add calendar holiday", err)
	}

	return holiday, nil
}

func (d Datasource) GetCalendarHolidays(calendarID string, year int) ([]model.CalendarHoliday, error) {
	rows, err := d.Conn.Query(`
		SELECT id, calendar_id, date, COALESCE(description, '')
		FROM calendar_holidays
		WHERE calendar_id = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date
	`, calendarID, year)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve calendar holidays", err)
	}
	defer rows.Close()

	holidays := []model.CalendarHoliday{}
	for rows.Next() {
		holiday := model.CalendarHoliday{}
		err = rows.Scan(&holiday.ID, &holiday.CalendarID, &holiday.Date, &holiday.Description)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan calendar holiday data", err)
		}
		holidays = append(holidays, holiday)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over calendar holidays", err)
	}

	return holidays, nil
}
