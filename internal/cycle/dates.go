package cycle

import "time"

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay maps value to UTC midnight of the calendar date it shows in its
// own location. All engine arithmetic runs on these values.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from "from" to "to".
// The result is negative when "to" is the earlier date.
func DaysBetween(from time.Time, to time.Time) int {
	return int(CalendarDay(to).Sub(CalendarDay(from)).Hours() / 24)
}

func SameDay(a time.Time, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}

func DayKey(value time.Time) string {
	return CalendarDay(value).Format(dayLayout)
}

func addDays(value time.Time, days int) time.Time {
	return CalendarDay(value).AddDate(0, 0, days)
}
