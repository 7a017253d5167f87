package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// maxDenominatorDigits caps the search space of "?????/?????".
const maxDenominatorDigits = 5

// fractionLayout locates the parts of a Fraction section: optional whole
// number placeholders, the numerator, the '/' and the denominator (either
// placeholders or a fixed literal such as "16").
type fractionLayout struct {
	slash    int // token index of '/'
	num      int // token index of the numerator placeholders
	den      int // token index of the denominator, -1 when missing
	intPH    []byte
	intStart []int // per token: index of its first whole-number placeholder
	numPH    []byte
	denPH    []byte
	fixedDen int    // > 0 for a literal denominator
	denRest  string // literal text following a fixed denominator
}

func newFractionLayout(toks []Token) *fractionLayout {
	l := &fractionLayout{slash: -1, num: -1, den: -1, intStart: make([]int, len(toks))}
	for i, t := range toks {
		if t.Type == TokenFraction {
			l.slash = i
			break
		}
	}
	if l.slash < 0 {
		return l
	}
	for i := l.slash - 1; i >= 0; i-- {
		if toks[i].Type == TokenDigits {
			l.num = i
			l.numPH = []byte(toks[i].Text)
			break
		}
	}
	for i := 0; i < l.num; i++ {
		if toks[i].Type == TokenDigits {
			l.intStart[i] = len(l.intPH)
			l.intPH = append(l.intPH, toks[i].Text...)
		}
	}
	if l.slash+1 < len(toks) {
		next := toks[l.slash+1]
		switch next.Type {
		case TokenDigits:
			l.den = l.slash + 1
			l.denPH = []byte(next.Text)
		case TokenLiteral:
			digits := len(next.Text) - len(strings.TrimLeft(next.Text, "0123456789"))
			if n, err := strconv.Atoi(next.Text[:digits]); err == nil && n > 0 {
				l.den = l.slash + 1
				l.fixedDen = n
				l.denRest = next.Text[digits:]
			}
		}
	}
	return l
}

// renderFraction formats abs (>= 0) as a mixed or improper fraction.
func renderFraction(p *Part, abs float64) (string, bool) {
	l := p.frac
	if l.num < 0 || l.den < 0 {
		return renderGeneral(abs), abs != 0
	}

	mixed := len(l.intPH) > 0
	whole, rest := 0.0, abs
	if mixed {
		whole = math.Floor(abs)
		rest = abs - whole
	}
	var num, den int64
	if l.fixedDen > 0 {
		den = int64(l.fixedDen)
		num = int64(math.Round(rest * float64(den)))
	} else {
		num, den = approximate(rest, maxDenominator(len(l.denPH)))
	}
	if mixed && num == den {
		whole++
		num = 0
	}

	wholeDigits := ""
	switch {
	case whole > 0:
		wholeDigits = strconv.FormatFloat(whole, 'f', 0, 64)
	case num == 0:
		wholeDigits = "0"
	}
	blankFraction := mixed && num == 0

	var sb strings.Builder
	for i, t := range p.Tokens {
		switch {
		case t.Type == TokenDigits && i < l.num:
			for k := range len(t.Text) {
				fillInteger(&sb, l.intPH, l.intStart[i]+k, wholeDigits, false)
			}
		case i == l.num:
			if blankFraction {
				sb.WriteString(strings.Repeat(" ", len(t.Text)))
				continue
			}
			for k := range len(t.Text) {
				fillInteger(&sb, l.numPH, k, strconv.FormatInt(num, 10), false)
			}
		case i == l.slash:
			if blankFraction {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteByte('/')
		case i == l.den:
			writeDenominator(&sb, l, den, blankFraction)
		case t.Type == TokenDigits:
			sb.WriteString(t.Text)
		case t.Type == TokenComma:
			sb.WriteByte(',')
		case t.Type == TokenPercent:
			sb.WriteByte('%')
		default:
			writeLiteral(&sb, t)
		}
	}
	return sb.String(), whole != 0 || num != 0
}

// writeDenominator left-aligns the denominator against its placeholders.
// Unused '0' placeholders pad with zeros in front of the digits so the
// value reads the same; unused '?' placeholders pad with spaces after them.
func writeDenominator(sb *strings.Builder, l *fractionLayout, den int64, blank bool) {
	if l.fixedDen > 0 {
		digits := strconv.Itoa(l.fixedDen)
		if blank {
			digits = strings.Repeat(" ", len(digits))
		}
		sb.WriteString(digits)
		sb.WriteString(l.denRest)
		return
	}
	digits := strconv.FormatInt(den, 10)
	if blank {
		digits = strings.Repeat(" ", len(digits))
	}
	var lead, trail int
	for i := len(digits); i < len(l.denPH); i++ {
		switch l.denPH[i] {
		case '0':
			lead++
		case '?':
			trail++
		}
	}
	pad := "0"
	if blank {
		pad = " "
	}
	sb.WriteString(strings.Repeat(pad, lead))
	sb.WriteString(digits)
	sb.WriteString(strings.Repeat(" ", trail))
}

func maxDenominator(digits int) int64 {
	digits = min(max(digits, 1), maxDenominatorDigits)
	return int64(math.Pow10(digits)) - 1
}

// approximate returns the fraction p/q closest to x with q <= maxDen.  Ties
// go to the smallest denominator.
func approximate(x float64, maxDen int64) (int64, int64) {
	bestNum, bestDen := int64(math.Round(x)), int64(1)
	bestErr := math.Abs(x - float64(bestNum))
	for q := int64(2); q <= maxDen && bestErr > 0; q++ {
		p := math.Round(x * float64(q))
		if e := math.Abs(x - p/float64(q)); e+1e-12 < bestErr {
			bestNum, bestDen, bestErr = int64(p), q, e
		}
	}
	return bestNum, bestDen
}
