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

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	model2 "github.com/coreledger-io/coreledger/api/model"
)

func (a Api) CreateCalendar(c *gin.Context) {
	var newCalendar model2.CreateCalendar
	if err := c.ShouldBindJSON(&newCalendar); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := newCalendar.ValidateCreateCalendar(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	cal, err := newCalendar.ToCalendar()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ledger.CreateCalendar(*cal)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetCalendar(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	cal, err := a.ledger.GetCalendar(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (a Api) GetAllCalendars(c *gin.Context) {
	limit, offset := paging(c)

	calendars, err := a.ledger.GetAllCalendars(limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendars)
}

func (a Api) UpdateCalendar(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	var body model2.CreateCalendar
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := body.ValidateCreateCalendar(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	cal, err := body.ToCalendar()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	cal.CalendarID = id

	if err := a.ledger.UpdateCalendar(cal); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (a Api) DeleteCalendar(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	if err := a.ledger.DeleteCalendar(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (a Api) AddCalendarHoliday(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	var body model2.AddHoliday
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := body.ValidateAddHoliday(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	holiday, err := body.ToHoliday(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ledger.AddCalendarHoliday(*holiday)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetCalendarHolidays lists the holidays for ?year= (current year when
// absent).
func (a Api) GetCalendarHolidays(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be numeric"})
			return
		}
		year = parsed
	}

	holidays, err := a.ledger.GetCalendarHolidays(id, year)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, holidays)
}

// CheckBusinessDay answers whether ?date= is a business day under this
// calendar: a weekday that is not a registered holiday.
func (a Api) CheckBusinessDay(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	businessDay, err := a.ledger.IsBusinessDay(id, date)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"calendar_id":  id,
		"date":         raw,
		"business_day": businessDay,
	})
}
