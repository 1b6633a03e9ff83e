// Package reports computes derived statistics over a snapshot of
// visitor records. Every function is pure: no I/O, no shared state,
// safe to call concurrently. Calendar-day math uses the location of the
// reference time the caller passes in.
package reports

import (
	"math"
	"sort"
	"time"

	"github.com/lobbykit/frontdesk/internal/domain"
)

// DateRange covers [From's day start, To's day end] in From's location.
type DateRange struct {
	From time.Time
	To   time.Time
}

// LastDays returns a range ending on the day of now and starting days-1
// days earlier, the default window of the reports screen.
func LastDays(now time.Time, days int) DateRange {
	return DateRange{From: now.AddDate(0, 0, -(days - 1)), To: now}
}

func (r DateRange) Contains(t time.Time) bool {
	loc := r.From.Location()
	from := startOfDay(r.From)
	end := startOfDay(r.To).AddDate(0, 0, 1)
	t = t.In(loc)
	return !t.Before(from) && t.Before(end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// CurrentlyCheckedIn filters to open visits, preserving input order.
func CurrentlyCheckedIn(records []domain.Visitor) []domain.Visitor {
	var out []domain.Visitor
	for _, v := range records {
		if v.Status == domain.VisitorCheckedIn {
			out = append(out, v)
		}
	}
	return out
}

// CheckedOut filters to completed visits, preserving input order.
func CheckedOut(records []domain.Visitor) []domain.Visitor {
	var out []domain.Visitor
	for _, v := range records {
		if v.Status == domain.VisitorCheckedOut {
			out = append(out, v)
		}
	}
	return out
}

// TodaysRecords filters to visits whose check-in falls on the same
// calendar day as today, in today's location. This is a calendar-day
// comparison, not a rolling 24h window.
func TodaysRecords(records []domain.Visitor, today time.Time) []domain.Visitor {
	key := dateKey(today, today.Location())
	var out []domain.Visitor
	for _, v := range records {
		if dateKey(v.CheckInTime, today.Location()) == key {
			out = append(out, v)
		}
	}
	return out
}

// InRange filters to visits whose check-in falls inside the range.
func InRange(records []domain.Visitor, rng DateRange) []domain.Visitor {
	var out []domain.Visitor
	for _, v := range records {
		if rng.Contains(v.CheckInTime) {
			out = append(out, v)
		}
	}
	return out
}

type DailyStat struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	CheckedIn  int    `json:"checkedIn"`
	CheckedOut int    `json:"checkedOut"`
}

// DailyStats groups range-filtered records by the calendar date of their
// check-in and counts them by current status. The series is sparse
// (dates with no visits are omitted) and sorted ascending by date.
func DailyStats(records []domain.Visitor, rng DateRange) []DailyStat {
	loc := rng.From.Location()
	byDate := make(map[string]*DailyStat)
	for _, v := range InRange(records, rng) {
		key := dateKey(v.CheckInTime, loc)
		stat, ok := byDate[key]
		if !ok {
			stat = &DailyStat{Date: key}
			byDate[key] = stat
		}
		stat.Total++
		if v.Status == domain.VisitorCheckedIn {
			stat.CheckedIn++
		} else {
			stat.CheckedOut++
		}
	}

	out := make([]DailyStat, 0, len(byDate))
	for _, stat := range byDate {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// TopCompanies ranks non-empty companies in the range by visit count,
// descending, truncated to limit. Equal counts keep first-appearance
// order from the input snapshot.
func TopCompanies(records []domain.Visitor, rng DateRange, limit int) []CompanyCount {
	counts := make(map[string]int)
	var order []string
	for _, v := range InRange(records, rng) {
		if v.Company == "" {
			continue
		}
		if _, seen := counts[v.Company]; !seen {
			order = append(order, v.Company)
		}
		counts[v.Company]++
	}

	out := make([]CompanyCount, 0, len(order))
	for _, company := range order {
		out = append(out, CompanyCount{Company: company, Count: counts[company]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AverageVisitDurationMinutes is the mean completed-visit length in the
// range, rounded to the nearest minute. Open visits are skipped; with no
// completed visits the result is 0.
func AverageVisitDurationMinutes(records []domain.Visitor, rng DateRange) int {
	var total time.Duration
	var n int
	for _, v := range InRange(records, rng) {
		if v.CheckOutTime == nil {
			continue
		}
		total += v.CheckOutTime.Sub(v.CheckInTime)
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(total.Minutes() / float64(n)))
}

// DurationMinutes is the elapsed visit length: check-in to check-out for
// completed visits, check-in to now for open ones. A clock anomaly that
// would yield negative time clamps to 0.
func DurationMinutes(v domain.Visitor, now time.Time) int {
	end := now
	if v.CheckOutTime != nil {
		end = *v.CheckOutTime
	}
	d := end.Sub(v.CheckInTime)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
