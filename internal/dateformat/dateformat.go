// Package dateformat converts between spreadsheet date serials and
// calendar time, and provides the quick date-format detection shared by the
// styles table and the engine façade.
//
// A serial counts days since the epoch of the workbook's date system, with
// the fraction holding the time of day:
//
//	1900 system: serial 1 = 1900-01-01.  Lotus 1-2-3 treated 1900 as a leap
//	             year and spreadsheets keep the bug, so serials >= 61 are one
//	             day ahead of the calendar.  Serial 60, the phantom
//	             1900-02-29, converts to 1900-03-01 like serial 61.
//	1904 system: serial 0 = 1904-01-01, no phantom day.
package dateformat

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// MaxSerial1900 is the last whole serial of the 1900 system (9999-12-31).
	MaxSerial1900 = 2_958_465

	// MaxSerial1904 is the same calendar day in the 1904 system; the two
	// epochs are 1462 days apart.
	MaxSerial1904 = MaxSerial1900 - 1462

	// MaxFractionDigits is the finest sub-second precision a format can show.
	MaxFractionDigits = 3

	// roundEpsilon absorbs binary drift in the fractional day before
	// rounding, the way excelize and pyxlsb do.
	roundEpsilon = 1e-9

	// maxElapsedDays bounds elapsed-time serials so unit arithmetic stays
	// inside int64.
	maxElapsedDays = 1e9
)

var (
	epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	firstDay  = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	leapFix   = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
)

// ── serial decomposition ────────────────────────────────────────────────────

// Clock is a non-negative serial split into whole days and a time of day
// rounded to Digits fractional-second digits.
type Clock struct {
	Days    int64 // whole days since the epoch
	Seconds int64 // whole seconds within the day, 0..86399
	Frac    int64 // sub-second remainder in units of 10^-Digits
	Digits  int
}

// TotalSeconds returns the whole seconds since the epoch.
func (c Clock) TotalSeconds() int64 { return c.Days*86400 + c.Seconds }

// Split rounds serial to the nearest 10^-digits second and decomposes it.
// Rounding up to midnight rolls over into the next day.  digits is clamped
// to 0..MaxFractionDigits.
func Split(serial float64, digits int) (Clock, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return Clock{}, fmt.Errorf("dateformat: invalid serial %v", serial)
	}
	if serial < 0 {
		return Clock{}, fmt.Errorf("dateformat: negative serial %v not supported", serial)
	}
	if serial > maxElapsedDays {
		return Clock{}, fmt.Errorf("dateformat: serial %v out of range", serial)
	}
	digits = min(max(digits, 0), MaxFractionDigits)
	scale := int64(math.Pow10(digits))
	perDay := 86400 * scale
	units := int64(math.Floor((serial+roundEpsilon)*float64(perDay) + 0.5))
	inDay := units % perDay
	return Clock{
		Days:    units / perDay,
		Seconds: inDay / scale,
		Frac:    inDay % scale,
		Digits:  digits,
	}, nil
}

// DayToDate returns midnight of the whole serial day.  In the 1900 system
// day 0 maps to 1900-01-01 and days >= 61 are shifted back one day to undo
// the phantom 1900-02-29.
func DayToDate(day int64, date1904 bool) (time.Time, error) {
	if day < 0 {
		return time.Time{}, fmt.Errorf("dateformat: negative serial day %d not supported", day)
	}
	if date1904 {
		if day > MaxSerial1904 {
			return time.Time{}, fmt.Errorf("dateformat: serial day %d exceeds maximum supported value %d", day, MaxSerial1904)
		}
		return epoch1904.AddDate(0, 0, int(day)), nil
	}
	if day > MaxSerial1900 {
		return time.Time{}, fmt.Errorf("dateformat: serial day %d exceeds maximum supported value %d", day, MaxSerial1900)
	}
	switch {
	case day == 0:
		return firstDay, nil
	case day >= 61:
		return epoch1900.AddDate(0, 0, int(day)), nil
	}
	return epoch1900.AddDate(0, 0, int(day)+1), nil
}

// SerialToTime converts a serial to UTC calendar time, rounded to the
// nearest second.
func SerialToTime(serial float64, date1904 bool) (time.Time, error) {
	c, err := Split(serial, 0)
	if err != nil {
		return time.Time{}, err
	}
	day, err := DayToDate(c.Days, date1904)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(c.Seconds) * time.Second), nil
}

// TimeToSerial converts the wall-clock reading of t (its own location is
// kept, not converted to UTC) into a serial.  Dates before the epoch of the
// chosen system are rejected.
func TimeToSerial(t time.Time, date1904 bool) (float64, error) {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	base := epoch1900
	if date1904 {
		base = epoch1904
	} else if wall.Before(firstDay) {
		return 0, fmt.Errorf("dateformat: %s is before 1900-01-01", wall.Format(time.DateOnly))
	}
	if wall.Before(base) {
		return 0, fmt.Errorf("dateformat: %s is before 1904-01-01", wall.Format(time.DateOnly))
	}
	secs := wall.Unix() - base.Unix()
	serial := float64(secs)/86400 + float64(wall.Nanosecond())/(86400*1e9)
	if !date1904 && wall.Before(leapFix) {
		serial--
	}
	return serial, nil
}

// ── format detection ────────────────────────────────────────────────────────

// IsBuiltInDateID reports whether id is a built-in numFmtId that renders a
// date, time or elapsed duration.
//
// The recognised IDs follow ECMA-376 §18.8.30:
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
func IsBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// ScanFormatStr reports whether the unquoted, unbracketed part of a format
// string holds a date or time letter (d m y h s, or e when it does not
// follow a digit placeholder and so cannot be an exponent).  Elapsed
// brackets such as [h] also count.
//
// It is a cheap pre-check; the numfmt classifier is authoritative.
func ScanFormatStr(formatStr string) bool {
	var (
		inQuote   bool
		inBracket bool
		bracket   []rune
		escaped   bool
		prev      rune
	)
	for _, ch := range stripGeneral(formatStr) {
		switch {
		case escaped:
			escaped = false
			continue
		case inQuote:
			inQuote = ch != '"'
			continue
		case inBracket:
			if ch != ']' {
				bracket = append(bracket, ch)
				continue
			}
			inBracket = false
			if isElapsed(bracket) {
				return true
			}
			continue
		case ch == '\\' || ch == '_' || ch == '*':
			escaped = true
			continue
		case ch == '"':
			inQuote = true
			continue
		case ch == '[':
			inBracket = true
			bracket = bracket[:0]
			continue
		}
		switch ch {
		case 'd', 'D', 'm', 'M', 'y', 'Y', 'h', 'H', 's', 'S':
			return true
		case 'e', 'E':
			if prev != '0' && prev != '#' && prev != '?' && prev != '.' {
				return true
			}
		}
		prev = ch
	}
	return false
}

// stripGeneral removes every "General" keyword, whose 'e' would otherwise
// read as a year.
func stripGeneral(s string) string {
	rs := []rune(s)
	out := rs[:0:0]
	for i := 0; i < len(rs); i++ {
		if i+7 <= len(rs) && strings.EqualFold(string(rs[i:i+7]), "general") {
			i += 6
			continue
		}
		out = append(out, rs[i])
	}
	return string(out)
}

func isElapsed(content []rune) bool {
	if len(content) == 0 {
		return false
	}
	first := content[0] | 0x20
	if first != 'h' && first != 'm' && first != 's' {
		return false
	}
	for _, r := range content {
		if r|0x20 != first {
			return false
		}
	}
	return true
}
