package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamrofarm/kukhura/internal/nepcal"
)

// CalendarHandler serves Bikram Sambat calendar lookups for date pickers.
// It is stateless; everything comes from the calendar tables.
type CalendarHandler struct{}

// NewCalendarHandler constructs the HTTP handler adapter.
func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{}
}

// Today returns the current date in BS.
func (h *CalendarHandler) Today(c *gin.Context) {
	today := nepcal.Today()
	if today == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "current date outside supported calendar range"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"today": today})
}

// MonthGrid returns what a date picker needs to lay out one BS month: the
// number of days and the weekday (0 = Sunday) the month starts on.
func (h *CalendarHandler) MonthGrid(c *gin.Context) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must be numeric"})
		return
	}
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	// Past this point the only failure left is a year outside the tables.
	days, err := nepcal.DaysInMonth(year, month)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	startWeekday, err := nepcal.WeekdayOf(year, month, 1)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"monthName":    nepcal.MonthName(month - 1),
		"days":         days,
		"startWeekday": startWeekday,
	})
}
