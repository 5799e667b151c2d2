package gpsdozor

import "time"

const (
	dateLayout  = "2006-01-02"
	suffixStart = "T00:00"
	suffixEnd   = "T23:59"
)

// accepted layouts for FormatDateString, tried in order.
var dateStringLayouts = []string{
	dateLayout,
	"2006-01-02T15:04",
	time.RFC3339,
}

// FormatDate renders t as YYYY-MM-DDTHH:MM for the from/to query parameters,
// with the time pinned to 00:00 or, when endOfDay is set, 23:59. The calendar
// date is read from t in its own location.
func FormatDate(t time.Time, endOfDay bool) string {
	return t.Format(dateLayout) + timeSuffix(endOfDay)
}

// FormatDateString is FormatDate for a YYYY-MM-DD string. Input that cannot be
// parsed is not rejected: it formats as the zero time, 0001-01-01.
func FormatDateString(s string, endOfDay bool) string {
	return FormatDate(parseDate(s), endOfDay)
}

func parseDate(s string) time.Time {
	for _, layout := range dateStringLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func timeSuffix(end bool) string {
	if end {
		return suffixEnd
	}
	return suffixStart
}
