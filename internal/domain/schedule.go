package domain

import "time"

// WeekRange returns the Monday and Sunday of the week containing date.
// Weeks are Monday-anchored: for a Sunday the window starts six days back,
// otherwise it starts (weekday-1) days back.
func WeekRange(date time.Time) (monday, sunday time.Time) {
	day := truncateToDay(date)

	offset := 1 - int(day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}

	monday = day.AddDate(0, 0, offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// SameDay reports whether two timestamps fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
