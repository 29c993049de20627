package enum

import "time"

// ReportRange selects which slice of the ledger a report covers
type ReportRange string

const (
	ReportRangeToday ReportRange = "today"
	ReportRangeWeek  ReportRange = "week"
	ReportRangeMonth ReportRange = "month"
	ReportRangeAll   ReportRange = "all"
)

func (r ReportRange) String() string {
	return string(r)
}

func (r ReportRange) IsValid() bool {
	switch r {
	case ReportRangeToday, ReportRangeWeek, ReportRangeMonth, ReportRangeAll:
		return true
	}
	return false
}

// Start returns the first instant covered by the range, in the location of now.
// Weeks start on Monday. ReportRangeAll returns the zero time.
func (r ReportRange) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch r {
	case ReportRangeToday:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case ReportRangeWeek:
		offset := (int(now.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case ReportRangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
	return time.Time{}
}
