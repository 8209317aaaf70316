package services

import "time"

// A nutritional day runs 05:00–04:59:59, so a midnight snack counts toward
// the previous day's totals.
const nutritionDayStart = 5 // hour, local time

const dayFormat = "2006-01-02"

// ResolveDay maps a wall-clock timestamp to the nutritional day it belongs
// to. Timestamps before 05:00 resolve to the previous calendar date.
func ResolveDay(t time.Time) string {
	if t.Hour() < nutritionDayStart {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(dayFormat)
}

// DayRange returns the half-open window [date 05:00, date+1 05:00) for a
// YYYY-MM-DD date string. Meal comparisons use start <= t < end, so exactly
// 05:00:00 belongs to the new day.
func DayRange(date string) (start, end time.Time, err error) {
	d, perr := time.ParseInLocation(dayFormat, date, time.Local)
	if perr != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	start = time.Date(d.Year(), d.Month(), d.Day(), nutritionDayStart, 0, 0, 0, time.Local)
	end = start.AddDate(0, 0, 1)
	return start, end, nil
}
