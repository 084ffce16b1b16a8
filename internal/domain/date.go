package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used by forms and stored records.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateBound is an optional calendar limit. The zero value is unbounded.
type DateBound struct {
	date    time.Time
	bounded bool
}

func BoundAt(t time.Time) DateBound {
	return DateBound{date: DateOf(t), bounded: true}
}

func Unbounded() DateBound {
	return DateBound{}
}

func (b DateBound) Date() (time.Time, bool) {
	return b.date, b.bounded
}

func (b DateBound) IsUnbounded() bool {
	return !b.bounded
}

func (b DateBound) String() string {
	if !b.bounded {
		return ""
	}
	return FormatDate(b.date)
}

func (b DateBound) MarshalJSON() ([]byte, error) {
	if !b.bounded {
		return []byte("null"), nil
	}
	return json.Marshal(FormatDate(b.date))
}
