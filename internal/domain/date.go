package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Date is a calendar day on the proleptic Gregorian calendar.
// Years are astronomical: year 0 exists and -300 is 301 BC.
type Date struct {
	t time.Time
}

// dateRE accepts signed, variable width years with optional month and day.
var dateRE = regexp.MustCompile(`^([+-]?)(\d{1,6})(?:-(\d{1,2})(?:-(\d{1,2}))?)?$`)

// NewDate builds a Date from its parts. Out of range months and days are
// normalized the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromTime truncates t to its UTC calendar day.
func DateFromTime(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY", "YYYY-MM", "YYYY-MM-DD" (each optionally signed)
// or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, errors.New("empty date")
	}

	if strings.Contains(s, "T") {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Date{}, errors.Wrapf(err, "invalid date %q", s)
		}
		return DateFromTime(t), nil
	}

	m := dateRE.FindStringSubmatch(s)
	if m == nil {
		return Date{}, errors.Newf("invalid date %q", s)
	}

	year, _ := strconv.Atoi(m[2])
	if m[1] == "-" {
		year = -year
	}
	month, day := 1, 1
	if m[3] != "" {
		month, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		day, _ = strconv.Atoi(m[4])
	}
	if month < 1 || month > 12 {
		return Date{}, errors.Newf("invalid date %q: month %d out of range", s, month)
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return Date{}, errors.Newf("invalid date %q: day %d out of range", s, day)
	}

	return NewDate(year, time.Month(month), day), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// Unix returns seconds since the Unix epoch; negative for earlier dates.
func (d Date) Unix() int64 { return d.t.Unix() }

// AddYears shifts the year and keeps month and day.
func (d Date) AddYears(n int) Date {
	return Date{t: d.t.AddDate(n, 0, 0)}
}

// String renders the canonical signed form, e.g. "-300-01-01".
func (d Date) String() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.Wrap(err, "date must be a string")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// EarliestOf returns the earliest of the given dates.
func EarliestOf(first Date, rest ...Date) Date {
	min := first
	for _, d := range rest {
		if d.Before(min) {
			min = d
		}
	}
	return min
}

// LatestOf returns the latest of the given dates.
func LatestOf(first Date, rest ...Date) Date {
	max := first
	for _, d := range rest {
		if d.After(max) {
			max = d
		}
	}
	return max
}
