// Package numfmt interprets spreadsheet number-format strings.
//
// A format string such as "#,##0.00;[Red](#,##0.00)" is parsed once with
// [Parse] into an immutable [Format], which can then render any number of
// cell values:
//
//	f, err := numfmt.Parse(`0.00;[Red]-0.00`)
//	if err != nil { ... }
//	res := f.Apply(numfmt.Number(-5), numfmt.Options{})
//	// res.Text == "-5.00", res.Color == numfmt.Red, res.Applies == true
//
// Parsing never panics.  Malformed formats are reported as [*FormatError];
// tokens that are understood but not rendered are listed on the owning
// [Part].  Rendering never fails: values that cannot be shown by the chosen
// section fall back to the General rendering.
package numfmt

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/width"

	"github.com/TsubasaBE/go-cellformat/internal/dateformat"
)

// Options control rendering.  The zero value renders in the 1900 date
// system and discards diagnostics.
type Options struct {
	// Date1904 selects the 1904 date system for serial conversion.
	Date1904 bool

	// Logger receives fallback diagnostics.  nil discards them.
	Logger logrus.FieldLogger
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discard
}

// Result is the outcome of applying a format to a value.
//
// Applies is false only when the format has conditions and none of its
// sections accepts the number; Text then holds the General rendering and
// Color is ColorNone.
type Result struct {
	Text    string
	Color   Color
	Applies bool
}

// Apply renders v with f.
func (f *Format) Apply(v Value, opts Options) Result {
	log := opts.logger()
	switch v.Type() {
	case TypeNumber:
		x, _ := v.Float()
		return f.applyNumber(x, opts)
	case TypeDateTime:
		t, _ := v.Time()
		serial, err := dateformat.TimeToSerial(t, opts.Date1904)
		if err != nil {
			log.WithError(err).WithField("format", f.Raw).Debug("numfmt: date outside the serial range, rendering unformatted")
			return Result{Text: v.String(), Applies: true}
		}
		return f.applyNumber(serial, opts)
	}

	s := v.String()
	p := f.TextPart()
	if p == nil {
		return Result{Text: s, Applies: true}
	}
	if p.Kind != KindText && p.Kind != KindGeneral {
		log.WithError(&KindMismatchError{Section: p.Index, Kind: p.Kind, Value: v.Type()}).
			WithField("format", f.Raw).
			Debug("numfmt: rendering value as General")
		return Result{Text: s, Color: p.Color, Applies: true}
	}
	return Result{Text: renderText(p, s), Color: p.Color, Applies: true}
}

func (f *Format) applyNumber(x float64, opts Options) Result {
	p, byCondition, ok := f.Select(x)
	if !ok {
		return Result{Text: renderGeneral(x)}
	}
	minus := !byCondition && !f.negativeSlot(p)
	return Result{Text: p.render(x, minus, opts), Color: p.Color, Applies: true}
}

// negativeSlot reports whether p is the section reserved for negative
// numbers, which shows them without a minus of its own.
func (f *Format) negativeSlot(p *Part) bool {
	if p.Index != 1 {
		return false
	}
	return len(f.numeric()) >= 3 || !f.conditional()
}

// render formats the number x with p.  Numeric kinds work on |x|; with
// minus set a negative x that renders non-zero gets a leading '-' unless
// the section has a sign literal of its own.
func (p *Part) render(x float64, minus bool, opts Options) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return renderGeneral(x)
	}
	var (
		s       string
		nonZero bool
	)
	switch p.Kind {
	case KindDate, KindElapsed:
		out, err := renderDate(p, x, opts.Date1904)
		if err != nil {
			opts.logger().WithError(&KindMismatchError{Section: p.Index, Kind: p.Kind, Value: TypeNumber, Reason: err.Error()}).
				Debug("numfmt: rendering value as General")
			return renderGeneral(x)
		}
		return out
	case KindText:
		return renderText(p, renderGeneral(x))
	case KindNumber:
		s, nonZero = renderNumber(p, math.Abs(x))
	case KindFraction:
		s, nonZero = renderFraction(p, math.Abs(x))
	default:
		s, nonZero = renderGeneralPart(p, math.Abs(x))
	}
	if x < 0 && nonZero && minus && !p.signed {
		s = "-" + s
	}
	return s
}

// ── General ─────────────────────────────────────────────────────────────────

// renderGeneral renders a number with no format: whole numbers below 1e15
// without a decimal point, everything else in the shortest form that reads
// back to the same float.
func renderGeneral(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'G', -1, 64)
}

// renderGeneralPart renders a General section; literals around the General
// keyword are kept.  A section made of directives alone behaves as if it
// held just the keyword.
func renderGeneralPart(p *Part, abs float64) (string, bool) {
	if p.bare {
		return writeDirectives(p) + renderGeneral(abs), abs != 0
	}
	var sb strings.Builder
	wrote := false
	for _, t := range p.Tokens {
		if t.Type == TokenGeneral {
			sb.WriteString(renderGeneral(abs))
			wrote = true
			continue
		}
		writeLiteral(&sb, t)
	}
	return sb.String(), wrote && abs != 0
}

// writeDirectives returns the output of a directive-only section, which is
// the raw text of any switch it holds.
func writeDirectives(p *Part) string {
	var sb strings.Builder
	for _, t := range p.Tokens {
		writeLiteral(&sb, t)
	}
	return sb.String()
}

// ── Text ────────────────────────────────────────────────────────────────────

// renderText substitutes s for every '@' (and General keyword) and keeps
// the literals.  Numeric markers in a text section print as written.
func renderText(p *Part, s string) string {
	if p.bare {
		return writeDirectives(p) + s
	}
	var sb strings.Builder
	for _, t := range p.Tokens {
		switch t.Type {
		case TokenText, TokenGeneral:
			sb.WriteString(s)
		case TokenDigits, TokenDecimalPoint, TokenComma, TokenPercent,
			TokenExponent, TokenFraction, TokenDateField, TokenAmPm, TokenElapsed:
			sb.WriteString(t.Text)
		default:
			writeLiteral(&sb, t)
		}
	}
	return sb.String()
}

// writeLiteral writes the fixed output of t.  Tokens with no fixed output
// (placeholders, directives, fill) write nothing.
func writeLiteral(sb *strings.Builder, t Token) {
	switch t.Type {
	case TokenLiteral, TokenQuoted, TokenEscape, TokenSwitch:
		sb.WriteString(t.Text)
	case TokenLocale:
		sb.WriteString(t.Locale.Currency)
	case TokenSkip:
		writeSkip(sb, t.Text)
	}
}

// writeSkip writes the blank space an _x layout code reserves: one column,
// or two for an East Asian wide character.
func writeSkip(sb *strings.Builder, s string) {
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			sb.WriteString("  ")
		default:
			sb.WriteByte(' ')
		}
	}
}
