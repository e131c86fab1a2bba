package dates

import "time"

// ISO is the calendar-date layout used everywhere a log date is stored
// or exchanged: YYYY-MM-DD, no time component.
const ISO = "2006-01-02"

// FormatISO renders t as a YYYY-MM-DD calendar date in t's location.
func FormatISO(t time.Time) string {
	return t.Format(ISO)
}

// ParseISO parses a YYYY-MM-DD date string.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}

// ValidISO reports whether s is a well-formed YYYY-MM-DD date.
func ValidISO(s string) bool {
	_, err := ParseISO(s)
	return err == nil
}

// DaysBetween returns the whole calendar days from b to a (a - b).
// Each argument is reduced to its own calendar date first, so neither
// time-of-day nor a zone mismatch between the two can skew the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(au.Sub(bu).Hours() / 24)
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysInMonth returns every day of the given month in order.
func DaysInMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, 0).Add(-time.Hour).Day()
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// AddMonths shifts t by the given number of months (negative to go back).
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// MonthName returns the English name of the month ("January" ...).
func MonthName(month time.Month) string {
	return month.String()
}
