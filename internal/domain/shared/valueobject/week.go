package valueobject

import (
	"fmt"
	"time"
)

// WeekPeriod identifies one ISO-8601 week: Monday-start weeks, week 1 is the
// week containing the year's first Thursday (equivalently, January 4).
type WeekPeriod struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekOf returns the ISO week period owning the given date. The date is
// normalized to a UTC calendar date first; time-of-day and zone never shift
// the week.
func WeekOf(date time.Time) WeekPeriod {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	year, week := d.ISOWeek()
	return WeekPeriod{Year: year, Week: week}
}

// CurrentWeek returns the ISO week period containing today.
func CurrentWeek() WeekPeriod {
	return WeekOf(time.Now().UTC())
}

// NewWeekPeriod validates and constructs a WeekPeriod. Week 53 only exists in
// long ISO years.
func NewWeekPeriod(year, week int) (WeekPeriod, error) {
	if year < 1 || year > 9999 {
		return WeekPeriod{}, fmt.Errorf("invalid ISO year %d", year)
	}
	if week < 1 || week > 53 {
		return WeekPeriod{}, fmt.Errorf("invalid ISO week %d", week)
	}
	p := WeekPeriod{Year: year, Week: week}
	if week == 53 {
		start, _ := p.DateRange()
		if y, w := start.ISOWeek(); y != year || w != week {
			return WeekPeriod{}, fmt.Errorf("ISO year %d has no week 53", year)
		}
	}
	return p, nil
}

// DateRange returns the Monday and Sunday calendar dates bounding the week,
// both at midnight UTC. The range is the exact inverse of WeekOf: for any
// date d, WeekOf(d).DateRange() contains d.
func (p WeekPeriod) DateRange() (start, end time.Time) {
	// January 4 always falls in week 1 of its ISO year.
	jan4 := time.Date(p.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	start = week1Monday.AddDate(0, 0, (p.Week-1)*7)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// Contains reports whether the given calendar date falls inside the week.
func (p WeekPeriod) Contains(date time.Time) bool {
	return WeekOf(date) == p
}

// String formats the period as e.g. "2024-W48".
func (p WeekPeriod) String() string {
	return fmt.Sprintf("%04d-W%02d", p.Year, p.Week)
}
