// Package season maps calendar dates onto NFL season weeks.
package season

import "time"

// WeekWindow is the inclusive date range a regular-season week spans,
// Wednesday through the following Tuesday except for the opener.
type WeekWindow struct {
	Week  int
	Start time.Time
	End   time.Time
}

// Calendar resolves dates to regular-season weeks for one season.
type Calendar struct {
	season  int
	windows []WeekWindow
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Calendar2025 is the 2025 regular-season calendar.
func Calendar2025() *Calendar {
	return &Calendar{
		season: 2025,
		windows: []WeekWindow{
			{1, day(2025, time.September, 5), day(2025, time.September, 9)},
			{2, day(2025, time.September, 10), day(2025, time.September, 16)},
			{3, day(2025, time.September, 17), day(2025, time.September, 23)},
			{4, day(2025, time.September, 24), day(2025, time.September, 30)},
			{5, day(2025, time.October, 1), day(2025, time.October, 7)},
			{6, day(2025, time.October, 8), day(2025, time.October, 14)},
			{7, day(2025, time.October, 15), day(2025, time.October, 21)},
			{8, day(2025, time.October, 22), day(2025, time.October, 28)},
			{9, day(2025, time.October, 29), day(2025, time.November, 4)},
			{10, day(2025, time.November, 5), day(2025, time.November, 11)},
			{11, day(2025, time.November, 12), day(2025, time.November, 18)},
			{12, day(2025, time.November, 19), day(2025, time.November, 25)},
			{13, day(2025, time.November, 26), day(2025, time.December, 2)},
			{14, day(2025, time.December, 3), day(2025, time.December, 9)},
			{15, day(2025, time.December, 10), day(2025, time.December, 16)},
			{16, day(2025, time.December, 17), day(2025, time.December, 23)},
			{17, day(2025, time.December, 24), day(2025, time.December, 30)},
			{18, day(2025, time.December, 31), day(2026, time.January, 5)},
		},
	}
}

// ForSeason returns the calendar for a season, or nil when no calendar
// is defined for it.
func ForSeason(season int) *Calendar {
	if season == 2025 {
		return Calendar2025()
	}
	return nil
}

// Season returns the season year this calendar covers
func (c *Calendar) Season() int {
	return c.season
}

// FinalWeek returns the last regular-season week number
func (c *Calendar) FinalWeek() int {
	return c.windows[len(c.windows)-1].Week
}

// CurrentWeek maps a timestamp to its regular-season week. Dates after the
// final window clamp to the final week; dates before the opener report week 1.
func (c *Calendar) CurrentWeek(now time.Time) int {
	today := day(now.Year(), now.Month(), now.Day())

	for _, w := range c.windows {
		if !today.Before(w.Start) && !today.After(w.End) {
			return w.Week
		}
	}

	last := c.windows[len(c.windows)-1]
	if today.After(last.End) {
		return last.Week
	}

	return c.windows[0].Week
}

// WeekFor is CurrentWeek plus an in-range report: ok is false when the date
// falls outside every window.
func (c *Calendar) WeekFor(now time.Time) (int, bool) {
	today := day(now.Year(), now.Month(), now.Day())

	for _, w := range c.windows {
		if !today.Before(w.Start) && !today.After(w.End) {
			return w.Week, true
		}
	}

	return c.CurrentWeek(now), false
}
