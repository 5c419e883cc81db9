package resume

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthPattern matches full and abbreviated month names with an optional period.
const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b\.?`

var (
	monthRe   = regexp.MustCompile(`(?i)\b(` + monthPattern + `)`)
	yearRe    = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	presentRe = regexp.MustCompile(`(?i)^\s*(present|current)\s*$`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// MonthYear is a calendar month.
type MonthYear struct {
	Year  int
	Month time.Month
}

// Index returns the zero-based month index.
func (m MonthYear) Index() int {
	return int(m.Month) - 1
}

// monthsUntil returns the whole months from m to end, never negative.
func (m MonthYear) monthsUntil(end MonthYear) int {
	months := (end.Year-m.Year)*12 + int(end.Month) - int(m.Month)
	if months < 0 {
		return 0
	}
	return months
}

// ParseDate reads a month/year fragment such as "June 2020" or "Sept. 2019".
// The first 4-digit year wins; the month defaults to January.
func ParseDate(fragment string) (MonthYear, bool) {
	ym := yearRe.FindStringSubmatch(fragment)
	if ym == nil {
		return MonthYear{}, false
	}

	year, err := strconv.Atoi(ym[1])
	if err != nil {
		return MonthYear{}, false
	}

	result := MonthYear{Year: year, Month: time.January}
	if mm := monthRe.FindStringSubmatch(fragment); mm != nil {
		key := strings.ToLower(mm[1])[:3]
		if month, ok := monthsByPrefix[key]; ok {
			result.Month = month
		}
	}

	return result, true
}

// IsPresent reports whether the fragment is the open-ended "Present"/"Current" sentinel.
func IsPresent(fragment string) bool {
	return presentRe.MatchString(fragment)
}

func monthYearOf(t time.Time) MonthYear {
	return MonthYear{Year: t.Year(), Month: t.Month()}
}
