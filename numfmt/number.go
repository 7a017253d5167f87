package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type region int

const (
	regionInt region = iota
	regionFrac
	regionExp
)

// numberLayout is the placeholder geometry of a Number section, computed
// once at parse time.
type numberLayout struct {
	region []region // per token
	start  []int    // per Digits token: index of its first placeholder in its region

	intPH, fracPH, expPH []byte

	grouping     bool
	scaleCommas  int
	literalComma []bool // per token
	percent      int
	exponent     bool
}

func newNumberLayout(toks []Token) *numberLayout {
	l := &numberLayout{
		region:       make([]region, len(toks)),
		start:        make([]int, len(toks)),
		literalComma: make([]bool, len(toks)),
	}
	reg := regionInt
	lastMantissa := -1
	for i, t := range toks {
		switch t.Type {
		case TokenDecimalPoint:
			if reg == regionInt {
				reg = regionFrac
			}
		case TokenExponent:
			reg = regionExp
			l.exponent = true
		case TokenPercent:
			l.percent++
		case TokenDigits:
			switch reg {
			case regionInt:
				l.start[i] = len(l.intPH)
				l.intPH = append(l.intPH, t.Text...)
			case regionFrac:
				l.start[i] = len(l.fracPH)
				l.fracPH = append(l.fracPH, t.Text...)
			case regionExp:
				l.start[i] = len(l.expPH)
				l.expPH = append(l.expPH, t.Text...)
			}
			if reg != regionExp {
				lastMantissa = i
			}
		}
		l.region[i] = reg
	}

	// A comma between integer placeholders turns on grouping; commas right
	// after the last mantissa placeholder scale by 1000 each; any other
	// comma is printed.
	for i, t := range toks {
		if t.Type != TokenComma {
			continue
		}
		switch {
		case l.region[i] == regionInt && hasIntDigits(toks, l, 0, i) && hasIntDigits(toks, l, i+1, len(toks)):
			l.grouping = true
		case lastMantissa >= 0 && i > lastMantissa && onlyCommas(toks[lastMantissa+1:i]):
			l.scaleCommas++
		default:
			l.literalComma[i] = true
		}
	}
	return l
}

func hasIntDigits(toks []Token, l *numberLayout, from, to int) bool {
	for j := from; j < to; j++ {
		if toks[j].Type == TokenDigits && l.region[j] == regionInt {
			return true
		}
	}
	return false
}

func onlyCommas(toks []Token) bool {
	for _, t := range toks {
		if t.Type != TokenComma {
			return false
		}
	}
	return true
}

// renderNumber formats abs (>= 0) with a Number section.  The second result
// reports whether the rounded value is non-zero.
func renderNumber(p *Part, abs float64) (string, bool) {
	l := p.num
	v := decimal.NewFromFloat(abs)
	if l.percent > 0 {
		v = v.Shift(int32(2 * l.percent))
	}
	if l.scaleCommas > 0 {
		v = v.Shift(int32(-3 * l.scaleCommas))
	}
	if l.exponent {
		return renderScientific(p, v)
	}

	v = v.Round(int32(len(l.fracPH)))
	intDigits, fracDigits := splitFixed(v, len(l.fracPH))
	var sb strings.Builder
	l.walk(&sb, p.Tokens, intDigits, fracDigits, "")
	return sb.String(), !v.IsZero()
}

// renderScientific formats v in E notation.  With a plain mantissa
// ("0.00E+00") the exponent puts exactly len(intPH) digits before the
// point; when the integer part holds '#' or '?' ("##0.0E+0") the exponent is
// a multiple of len(intPH), giving engineering notation.
func renderScientific(p *Part, v decimal.Decimal) (string, bool) {
	l := p.num
	nInt := max(len(l.intPH), 1)
	nFrac := len(l.fracPH)
	step := 1
	if len(l.intPH) > 1 && strings.ContainsAny(string(l.intPH), "#?") {
		step = len(l.intPH)
	}

	exp := 0
	if !v.IsZero() {
		f, _ := v.Float64()
		mag := int(math.Floor(math.Log10(f)))
		if step > 1 {
			exp = floorDiv(mag, step) * step
		} else {
			exp = mag - (nInt - 1)
		}
	}
	mant := v.Shift(int32(-exp)).Round(int32(nFrac))
	limit := nInt
	if step > 1 {
		limit = step
	}
	if mant.GreaterThanOrEqual(decimal.New(1, int32(limit))) {
		exp += step
		mant = v.Shift(int32(-exp)).Round(int32(nFrac))
	}
	if mant.IsZero() {
		exp = 0
	}

	intDigits, fracDigits := splitFixed(mant, nFrac)
	sign := ""
	switch {
	case exp < 0:
		sign = "-"
	case strings.HasSuffix(expText(p), "+"):
		sign = "+"
	}
	var sb strings.Builder
	l.walk(&sb, p.Tokens, intDigits, fracDigits, sign+"\x00"+strconv.Itoa(absInt(exp)))
	return sb.String(), !mant.IsZero()
}

func expText(p *Part) string {
	for _, t := range p.Tokens {
		if t.Type == TokenExponent {
			return t.Text
		}
	}
	return ""
}

// walk writes the section, feeding digits into placeholders.  exp is
// "sign\x00digits" for scientific sections and "" otherwise.
func (l *numberLayout) walk(sb *strings.Builder, toks []Token, intDigits, fracDigits, exp string) {
	expSign, expDigits, _ := strings.Cut(exp, "\x00")
	fracOut := fractionalDigits(l.fracPH, fracDigits)

	// Without integer placeholders the integer digits go in front of the
	// first numeric marker.
	pendingInt := len(l.intPH) == 0 && intDigits != ""
	flushInt := func() {
		if pendingInt {
			writeGrouped(sb, intDigits, l.grouping)
			pendingInt = false
		}
	}

	for i, t := range toks {
		switch t.Type {
		case TokenDigits:
			switch l.region[i] {
			case regionInt:
				for k := range len(t.Text) {
					fillInteger(sb, l.intPH, l.start[i]+k, intDigits, l.grouping)
				}
			case regionFrac:
				flushInt()
				for k := range len(t.Text) {
					sb.WriteString(fracOut[l.start[i]+k])
				}
			case regionExp:
				for k := range len(t.Text) {
					fillInteger(sb, l.expPH, l.start[i]+k, expDigits, false)
				}
			}
		case TokenDecimalPoint:
			flushInt()
			if l.region[i] == regionFrac {
				sb.WriteByte('.')
			}
		case TokenExponent:
			flushInt()
			sb.WriteByte(t.Text[0])
			sb.WriteString(expSign)
		case TokenPercent:
			flushInt()
			sb.WriteByte('%')
		case TokenComma:
			if l.literalComma[i] {
				sb.WriteByte(',')
			}
		case TokenFraction:
			sb.WriteByte('/')
		default:
			writeLiteral(sb, t)
		}
	}
	flushInt()
}

// fillInteger writes the digits that fall on integer placeholder idx of ph.
// Digits are right-aligned against the placeholders; digits beyond the
// leftmost placeholder are all written there.  Unfilled positions print '0'
// for '0', a space for '?' and nothing for '#'.
func fillInteger(sb *strings.Builder, ph []byte, idx int, digits string, grouping bool) {
	pos := len(ph) - 1 - idx
	top := pos
	if idx == 0 && len(digits)-1 > top {
		top = len(digits) - 1
	}
	for q := top; q >= pos; q-- {
		wrote := true
		switch {
		case q < len(digits):
			sb.WriteByte(digits[len(digits)-1-q])
		case ph[idx] == '0':
			sb.WriteByte('0')
		case ph[idx] == '?':
			sb.WriteByte(' ')
			wrote = false
		default:
			wrote = false
		}
		if grouping && wrote && q > 0 && q%3 == 0 {
			sb.WriteByte(',')
		}
	}
}

// fractionalDigits maps rounded fraction digits onto placeholders.
// Trailing zeros are dropped under '#' and blanked under '?'.
func fractionalDigits(ph []byte, digits string) []string {
	out := make([]string, len(ph))
	trailing := true
	for i := len(ph) - 1; i >= 0; i-- {
		d := digits[i]
		if trailing && d == '0' {
			switch ph[i] {
			case '#':
				continue
			case '?':
				out[i] = " "
				continue
			}
		}
		trailing = false
		out[i] = string(d)
	}
	return out
}

func writeGrouped(sb *strings.Builder, digits string, grouping bool) {
	for i := range len(digits) {
		sb.WriteByte(digits[i])
		if q := len(digits) - 1 - i; grouping && q > 0 && q%3 == 0 {
			sb.WriteByte(',')
		}
	}
}

// splitFixed renders v with exactly places fraction digits and returns the
// integer digits ("" for zero) and the fraction digits.
func splitFixed(v decimal.Decimal, places int) (string, string) {
	s := v.Abs().StringFixed(int32(places))
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.TrimLeft(intPart, "0") == "" {
		intPart = ""
	}
	return intPart, fracPart
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
