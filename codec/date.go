package codec

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/reoring/castage"
	"github.com/reoring/castage/result"
)

// maxMillis is the largest distance from the epoch a timestamp may have.
const maxMillis = 8.64e15

// Date (named JsDate in errors) accepts a time.Time, a date string (ISO-8601 or one of a few common
// human layouts) or a number of milliseconds since the Unix epoch.
var Date = castage.FromGuardAndTransform(
	func(v any) (any, bool) {
		switch v.(type) {
		case time.Time, string:
			return v, true
		}
		return v, isNumeric(v)
	},
	func(v any, path castage.Path) castage.Outcome[time.Time] {
		var (
			t  time.Time
			ok bool
		)
		switch x := v.(type) {
		case time.Time:
			t, ok = x, true
		case string:
			t, ok = parseDateString(x)
		default:
			t, ok = fromMillis(numeric(v))
		}
		return dateOutcome(t, ok, "JsDate", v, path)
	},
	"JsDate", castage.ErrInvalidValueType, nil,
)

// IsoDate accepts ISO-8601 strings: a year, optionally followed by month,
// day, a 'T' or space separated time with optional fraction and a zone. A
// missing zone means UTC.
var IsoDate = castage.FromGuardAndTransform(
	castage.AsString,
	func(s string, path castage.Path) castage.Outcome[time.Time] {
		t, ok := parseISO(s)
		return dateOutcome(t, ok, "IsoDate", s, path)
	},
	"IsoDate", castage.ErrInvalidValueType, nil,
)

// UnixTimestamp accepts seconds since the Unix epoch. Its name is
// UnixDateTimeStamp.
var UnixTimestamp = castage.FromGuardAndTransform(
	castage.Predicate(isNumeric),
	func(v any, path castage.Path) castage.Outcome[time.Time] {
		t, ok := fromMillis(numeric(v) * 1000)
		return dateOutcome(t, ok, "UnixDateTimeStamp", v, path)
	},
	"UnixDateTimeStamp", castage.ErrInvalidValueType, nil,
)

// JsTimestamp accepts milliseconds since the Unix epoch. Its name is
// JsDateTimeStamp.
var JsTimestamp = castage.FromGuardAndTransform(
	castage.Predicate(isNumeric),
	func(v any, path castage.Path) castage.Outcome[time.Time] {
		t, ok := fromMillis(numeric(v))
		return dateOutcome(t, ok, "JsDateTimeStamp", v, path)
	},
	"JsDateTimeStamp", castage.ErrInvalidValueType, nil,
)

func dateOutcome(t time.Time, ok bool, name string, received any, path castage.Path) castage.Outcome[time.Time] {
	if !ok {
		return result.Err[time.Time](castage.NewError(castage.ErrInvalidValue, path, castage.Received(name, received)))
	}
	return result.Ok[time.Time, *castage.CastingError](t)
}

// isNumeric lets NaN and infinities through the shape check so they are
// reported as invalid dates rather than as non-numbers.
func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32:
		return true
	}
	return castage.IsNumber(v)
}

// numeric returns v as a float64; v has passed isNumeric.
func numeric(v any) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	}
	f, _ := castage.AsNumber(v)
	return f
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxMillis {
		return time.Time{}, false
	}
	whole := math.Trunc(ms)
	frac := time.Duration((ms - whole) * float64(time.Millisecond))
	return time.UnixMilli(int64(whole)).UTC().Add(frac), true
}

var isoPattern = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2}))?)?(?:[T\s](\d{2})(?::(\d{2})(?::(\d{2})(\.\d+)?)?)?)?(Z|[-+]\d+(?::\d+)?)?$`)

func parseISO(s string) (time.Time, bool) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	num := func(s string, def int) int {
		if s == "" {
			return def
		}
		n, _ := strconv.Atoi(s)
		return n
	}
	year, month, day := num(m[1], 0), num(m[2], 1), num(m[3], 1)
	hour, minute, sec := num(m[4], 0), num(m[5], 0), num(m[6], 0)
	if month < 1 || month > 12 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}
	var nsec int
	if frac := m[7]; frac != "" {
		digits := (frac[1:] + "000000000")[:9]
		nsec = num(digits, 0)
	}
	loc, ok := parseZone(m[8])
	if !ok {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	// time.Date normalises overflow such as Feb 30; reject it instead.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func parseZone(z string) (*time.Location, bool) {
	if z == "" || z == "Z" {
		return time.UTC, true
	}
	sign := 1
	if z[0] == '-' {
		sign = -1
	}
	body := z[1:]
	var hh, mm string
	switch {
	case len(body) > 3 && body[2] == ':':
		hh, mm = body[:2], body[3:]
	case len(body) == 4:
		hh, mm = body[:2], body[2:]
	case len(body) <= 2:
		hh = body
	default:
		return nil, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h > 23 {
		return nil, false
	}
	var mins int
	if mm != "" {
		if mins, err = strconv.Atoi(mm); err != nil || mins > 59 {
			return nil, false
		}
	}
	return time.FixedZone(z, sign*(h*3600+mins*60)), true
}

// extra layouts accepted by Date after ISO-8601.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"01/02/2006, 3:04:05 PM",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

func parseDateString(s string) (time.Time, bool) {
	if t, ok := parseISO(s); ok {
		return t, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
