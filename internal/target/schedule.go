// Package target builds daily target calendars: a date range expands into
// one entry per day, stored rows overlay their values, and totals roll up
// across the range.
package target

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/fundroom/crm-api/internal/model"
)

const dateLayout = "2006-01-02"

// Day is one calendar entry in a target range. Days without a stored row
// carry zero targets.
type Day struct {
	Date               string  `json:"date"`
	Day                string  `json:"day"`
	C1Target           int     `json:"c1Target"`
	C2Target           int     `json:"c2Target"`
	C3Target           int     `json:"c3Target"`
	C4Target           int     `json:"c4Target"`
	SubscriptionTarget int     `json:"subscriptionTarget"`
	Token              *string `json:"token"`
}

// Totals aggregates targets across a range.
type Totals struct {
	C1Target           int `json:"c1Target"`
	C2Target           int `json:"c2Target"`
	C3Target           int `json:"c3Target"`
	C4Target           int `json:"c4Target"`
	SubscriptionTarget int `json:"subscriptionTarget"`
}

// ResolveRange picks the date range for a target request: an explicit
// month ("2006-01") wins, then an explicit start/end pair, then the
// current month of now.
func ResolveRange(month, startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	if month != "" {
		first, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, eris.Wrapf(err, "target: parse month %q", month)
		}
		last := first.AddDate(0, 1, -1)
		return first, last, nil
	}

	if startDate != "" && endDate != "" {
		from, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, eris.Wrapf(err, "target: parse start date %q", startDate)
		}
		to, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, eris.Wrapf(err, "target: parse end date %q", endDate)
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, eris.New("target: end date before start date")
		}
		return from, to, nil
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// Calendar expands a date range into one zeroed Day per date, inclusive.
func Calendar(from, to time.Time) []Day {
	var days []Day
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date: d.Format(dateLayout),
			Day:  d.Weekday().String(),
		})
	}
	return days
}

// Merge overlays stored targets onto a calendar, matching by date.
func Merge(days []Day, stored []model.DailyTarget) []Day {
	byDate := make(map[string]model.DailyTarget, len(stored))
	for _, t := range stored {
		byDate[t.TargetDate] = t
	}

	merged := make([]Day, len(days))
	for i, d := range days {
		if t, ok := byDate[d.Date]; ok {
			d.C1Target = t.C1Target
			d.C2Target = t.C2Target
			d.C3Target = t.C3Target
			d.C4Target = t.C4Target
			d.SubscriptionTarget = t.SubscriptionTarget
			d.Token = t.Token
		}
		merged[i] = d
	}
	return merged
}

// Sum totals all targets across the merged range.
func Sum(days []Day) Totals {
	var t Totals
	for _, d := range days {
		t.C1Target += d.C1Target
		t.C2Target += d.C2Target
		t.C3Target += d.C3Target
		t.C4Target += d.C4Target
		t.SubscriptionTarget += d.SubscriptionTarget
	}
	return t
}
