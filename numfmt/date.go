package numfmt

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-cellformat/internal/dateformat"
)

var errNegativeDate = errors.New("negative serial has no calendar date")

// subSecond finds a ".000" run right after a seconds field.  It returns the
// number of digits shown (at most dateformat.MaxFractionDigits), the index
// of the seconds token and the indexes of the consumed '.' and digit run.
func subSecond(toks []Token) (digits, second, point, run int) {
	for i := 0; i+2 < len(toks); i++ {
		t := toks[i]
		if (t.Type != TokenDateField && t.Type != TokenElapsed) || t.Field != FieldSecond {
			continue
		}
		if toks[i+1].Type != TokenDecimalPoint || toks[i+2].Type != TokenDigits {
			continue
		}
		if strings.Trim(toks[i+2].Text, "0") != "" {
			continue
		}
		return min(len(toks[i+2].Text), dateformat.MaxFractionDigits), i, i + 1, i + 2
	}
	return 0, -1, -1, -1
}

func usesCalendar(toks []Token) bool {
	for _, t := range toks {
		if t.Type == TokenDateField {
			switch t.Field {
			case FieldYear, FieldMonth, FieldDay:
				return true
			}
		}
	}
	return false
}

// renderDate formats a serial with a Date or Elapsed section.  Date
// sections need a non-negative serial inside the calendar range; elapsed
// sections accept any sign and prefix '-' for negative durations.
func renderDate(p *Part, serial float64, date1904 bool) (string, error) {
	neg := serial < 0
	calendar := usesCalendar(p.Tokens)
	if neg && (p.Kind == KindDate || calendar) {
		return "", errNegativeDate
	}

	digits, second, point, run := subSecond(p.Tokens)
	c, err := dateformat.Split(math.Abs(serial), digits)
	if err != nil {
		return "", err
	}
	var day time.Time
	if calendar {
		if day, err = dateformat.DayToDate(c.Days, date1904); err != nil {
			return "", err
		}
	}

	hour := int(c.Seconds / 3600)
	minute := int(c.Seconds / 60 % 60)
	sec := int(c.Seconds % 60)
	total := c.TotalSeconds()

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, t := range p.Tokens {
		if i == point || i == run {
			continue
		}
		switch t.Type {
		case TokenDateField:
			switch t.Field {
			case FieldYear:
				if t.Count <= 2 {
					writePadded(&sb, int64(day.Year()%100), 2)
				} else {
					writePadded(&sb, int64(day.Year()), 4)
				}
			case FieldMonth:
				writeMonth(&sb, day.Month(), t.Count)
			case FieldDay:
				switch {
				case t.Count <= 2:
					writePadded(&sb, int64(day.Day()), t.Count)
				case t.Count == 3:
					sb.WriteString(day.Weekday().String()[:3])
				default:
					sb.WriteString(day.Weekday().String())
				}
			case FieldHour:
				h := hour
				if p.hasAmPm {
					h %= 12
					if h == 0 {
						h = 12
					}
				}
				writePadded(&sb, int64(h), min(t.Count, 2))
			case FieldMinute:
				writePadded(&sb, int64(minute), min(t.Count, 2))
			case FieldSecond:
				writePadded(&sb, int64(sec), min(t.Count, 2))
			}
		case TokenElapsed:
			switch t.Field {
			case FieldHour:
				writePadded(&sb, total/3600, t.Count)
			case FieldMinute:
				writePadded(&sb, total/60, t.Count)
			case FieldSecond:
				writePadded(&sb, total, t.Count)
			}
		case TokenAmPm:
			sb.WriteString(amPm(t.Text, hour >= 12))
		case TokenDecimalPoint:
			sb.WriteByte('.')
		case TokenDigits, TokenExponent:
			sb.WriteString(t.Text)
		case TokenComma:
			sb.WriteByte(',')
		case TokenPercent:
			sb.WriteByte('%')
		case TokenFraction:
			sb.WriteByte('/')
		default:
			writeLiteral(&sb, t)
		}
		if i == second && digits > 0 {
			sb.WriteByte('.')
			writePadded(&sb, c.Frac, digits)
		}
	}
	return sb.String(), nil
}

func writeMonth(sb *strings.Builder, m time.Month, count int) {
	switch {
	case count <= 2:
		writePadded(sb, int64(m), count)
	case count == 3:
		sb.WriteString(m.String()[:3])
	case count == 4:
		sb.WriteString(m.String())
	default:
		sb.WriteString(m.String()[:1])
	}
}

// writePadded writes n with at least width digits.
func writePadded(sb *strings.Builder, n int64, width int) {
	s := strconv.FormatInt(n, 10)
	for i := len(s); i < width; i++ {
		sb.WriteByte('0')
	}
	sb.WriteString(s)
}

// amPm picks the morning or afternoon half of an "AM/PM" style marker.
// Latin markers are always shown upper-case.
func amPm(marker string, pm bool) string {
	am, after, ok := strings.Cut(marker, "/")
	if !ok {
		return marker
	}
	if pm {
		am = after
	}
	return strings.ToUpper(am)
}
