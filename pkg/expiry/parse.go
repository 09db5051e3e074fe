package expiry

import (
	"errors"
	"strconv"
	"time"
)

// Pattern indices, matching the order of datePatterns.
const (
	patDayMonthYear = iota
	patYearMonthDay
	patDayMonthNameYear
	patMonthYear
)

var errBadDate = errors.New("no valid calendar date")

var monthAbbrev = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// parseCandidate turns regex submatches into a calendar date. Ambiguous
// two-digit pairs resolve day-first; the month-first reading is tried only
// when day-first is not a valid date. MM/YYYY resolves to the first of the
// month. Dates are naive (UTC midnight), no timezone reconciliation.
func parseCandidate(pattern int, m []string) (time.Time, error) {
	switch pattern {
	case patDayMonthYear:
		d := atoi(m[1])
		mo := atoi(m[2])
		y := atoi(m[3])
		return resolveDayFirst(y, d, mo)
	case patYearMonthDay:
		y := atoi(m[1])
		mo := atoi(m[2])
		d := atoi(m[3])
		if t, ok := makeDate(y, mo, d); ok {
			return t, nil
		}
		// tolerate transposed month/day the way a day-first parser would
		if t, ok := makeDate(y, d, mo); ok {
			return t, nil
		}
		return time.Time{}, errBadDate
	case patDayMonthNameYear:
		d := atoi(m[1])
		mo, ok := monthAbbrev[m[2]]
		if !ok {
			return time.Time{}, errBadDate
		}
		y := atoi(m[3])
		if t, ok := makeDate(y, int(mo), d); ok {
			return t, nil
		}
		return time.Time{}, errBadDate
	case patMonthYear:
		mo := atoi(m[1])
		y := atoi(m[2])
		if t, ok := makeDate(y, mo, 1); ok {
			return t, nil
		}
		return time.Time{}, errBadDate
	}
	return time.Time{}, errBadDate
}

func resolveDayFirst(y, d, mo int) (time.Time, error) {
	if t, ok := makeDate(y, mo, d); ok {
		return t, nil
	}
	if t, ok := makeDate(y, d, mo); ok {
		return t, nil
	}
	return time.Time{}, errBadDate
}

// makeDate validates the components strictly: time.Date normalizes overflow
// (Feb 30 becomes Mar 2), so the result must round-trip.
func makeDate(y, mo, d int) (time.Time, bool) {
	if y < 1 || mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
