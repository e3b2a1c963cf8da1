package ui

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// WeatherIcon maps a backend condition label to an icon.
func WeatherIcon(condition string) string {
	switch condition {
	case "mainly sun":
		return "☀️"
	case "mainly rain":
		return "🌧️"
	default:
		return "☁️"
	}
}

// FormatDate labels a YYYY-MM-DD forecast date relative to now: "Today",
// "Tomorrow", otherwise "Mon 2 Jan". Unparseable input is returned as-is.
func FormatDate(date string, now time.Time) string {
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return date
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.Format("Mon 2 Jan")
	}
}

// Temp formats a Celsius temperature with at most one decimal.
func Temp(c float64) string {
	return strconv.FormatFloat(math.Round(c*10)/10, 'f', -1, 64) + "°C"
}

// Grams formats a nutrient amount.
func Grams(g float64) string {
	return fmt.Sprintf("%sg", strconv.FormatFloat(g, 'f', -1, 64))
}
