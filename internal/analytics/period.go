package analytics

import (
	"time"

	"github.com/vhoanghac/sellerdash/internal/entity"
)

// Period tokens accepted by the dashboard and report endpoints. Anything
// else, including an empty token, resolves to 30 days.
const (
	Period7Days  = "7days"
	Period30Days = "30days"
	Period90Days = "90days"
	PeriodYear   = "year"
	PeriodCustom = "custom"
)

func periodDays(token string) int {
	switch token {
	case Period7Days:
		return 7
	case Period90Days:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// ResolvePeriod turns a period token or an explicit date pair into a
// canonical window plus the immediately preceding comparison window of the
// same length. Explicit dates are used verbatim; when end precedes start the
// two are swapped, never rejected. Window bounds are expanded to full days:
// 00:00:00 on the first date, 23:59:59 on the last.
func ResolvePeriod(token string, explicitStart, explicitEnd *time.Time, now time.Time, loc *time.Location) entity.Window {
	if loc == nil {
		loc = time.UTC
	}

	var start, end time.Time
	resolved := token
	if explicitStart != nil && explicitEnd != nil {
		start, end = *explicitStart, *explicitEnd
		if end.Before(start) {
			start, end = end, start
		}
		resolved = PeriodCustom
	} else {
		days := periodDays(token)
		end = now.In(loc)
		start = end.AddDate(0, 0, -(days - 1))
		switch token {
		case Period7Days, Period90Days, PeriodYear:
		default:
			resolved = Period30Days
		}
	}

	from := dayStart(start, loc)
	to := dayEnd(end, loc)
	days := daysBetween(from, to)

	prevTo := dayEnd(from.AddDate(0, 0, -1), loc)
	prevFrom := dayStart(prevTo.AddDate(0, 0, -(days-1)), loc)

	return entity.Window{
		From:     from,
		To:       to,
		PrevFrom: prevFrom,
		PrevTo:   prevTo,
		Token:    resolved,
		Days:     days,
	}
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func dayEnd(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}

// daysBetween counts calendar days in [from, to], both inclusive.
func daysBetween(from, to time.Time) int {
	days := 0
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		days++
	}
	return days
}
