package numfmt

import (
	"strconv"
	"strings"
)

// Kind is the rendering strategy of a [Part].
type Kind int

const (
	KindGeneral Kind = iota
	KindNumber
	KindDate
	KindElapsed
	KindFraction
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindElapsed:
		return "elapsed"
	case KindFraction:
		return "fraction"
	case KindText:
		return "text"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// maxSections is the number of ';'-separated sections a format may hold.
const maxSections = 4

// Format is a parsed format string.  It is immutable and safe to share
// between goroutines.
type Format struct {
	Raw   string
	Parts []*Part
}

// Part is one section of a [Format].
type Part struct {
	Index     int
	Raw       string
	Tokens    []Token
	Kind      Kind
	Color     Color
	Condition *Condition
	Locale    *Locale

	// Unsupported lists tokens that parse but are not interpreted.  They
	// render as their raw text.
	Unsupported []*UnsupportedTokenError

	hasAmPm bool
	signed  bool // a '-' or '(' literal precedes the number
	bare    bool // holds directives only
	num     *numberLayout
	frac    *fractionLayout
}

// ── parsing ─────────────────────────────────────────────────────────────────

// Parse splits format on unquoted ';', tokenizes every section and
// classifies it.  An empty (or all-blank) format is General.
func Parse(format string) (*Format, error) {
	src := format
	if strings.TrimSpace(src) == "" {
		src = "General"
	}
	sections := splitSections(src)
	if len(sections) > maxSections {
		return nil, &FormatError{Format: format, Pos: sections[maxSections].offset - 1, Msg: "more than 4 sections"}
	}

	f := &Format{Raw: format, Parts: make([]*Part, 0, len(sections))}
	for i, sec := range sections {
		toks, err := Tokenize(sec.text)
		if err != nil {
			return nil, rebase(err, format, sec.offset)
		}
		p, err := newPart(i, sec.text, toks)
		if err != nil {
			return nil, rebase(err, format, sec.offset)
		}
		f.Parts = append(f.Parts, p)
	}
	return f, nil
}

// MustParse is like [Parse] but panics on a malformed format.  It is meant
// for package-level tables of known-good formats.
func MustParse(format string) *Format {
	f, err := Parse(format)
	if err != nil {
		panic(err)
	}
	return f
}

type rawSection struct {
	text   string
	offset int // rune offset of text within the full format
}

// splitSections splits on ';' outside quotes, brackets and escapes.
// Unterminated quotes or brackets swallow the rest of the string and are
// reported later by the tokenizer.
func splitSections(format string) []rawSection {
	var (
		out       []rawSection
		rs        = []rune(format)
		start     int
		inQuote   bool
		inBracket bool
	)
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; {
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == '\\' || r == '_' || r == '*':
			i++
		case r == ';':
			out = append(out, rawSection{text: string(rs[start:i]), offset: start})
			start = i + 1
		}
	}
	return append(out, rawSection{text: string(rs[start:]), offset: start})
}

// rebase moves a section-relative FormatError onto the full format string.
func rebase(err error, format string, offset int) error {
	fe, ok := err.(*FormatError)
	if !ok {
		return err
	}
	return &FormatError{Format: format, Pos: fe.Pos + offset, Msg: fe.Msg}
}

func newPart(index int, raw string, toks []Token) (*Part, error) {
	p := &Part{Index: index, Raw: raw, Tokens: toks, bare: raw != ""}
	decimals := 0
	secondDecimal := -1
	seenNumber := false
	for _, t := range toks {
		switch t.Type {
		case TokenColor:
			p.Color = t.Color
		case TokenCondition:
			p.Condition = t.Condition
		case TokenLocale:
			p.Locale = t.Locale
			if t.Locale.Currency != "" {
				p.bare = false
			}
		case TokenSwitch:
			p.Unsupported = append(p.Unsupported, &UnsupportedTokenError{
				Section: index,
				Token:   t.Text,
				Reason:  "formatting switch is not applied, written as is",
			})
		default:
			p.bare = false
		}
		switch t.Type {
		case TokenAmPm:
			p.hasAmPm = true
		case TokenDecimalPoint:
			decimals++
			if decimals == 2 {
				secondDecimal = t.Pos
			}
		}
		switch {
		case t.Type == TokenDigits || t.Type == TokenGeneral:
			seenNumber = true
		case !seenNumber && t.marksSign():
			p.signed = true
		}
	}

	p.Kind = classify(p)
	switch p.Kind {
	case KindNumber:
		if decimals > 1 {
			return nil, &FormatError{Format: raw, Pos: secondDecimal, Msg: "more than one decimal point"}
		}
		p.num = newNumberLayout(toks)
	case KindFraction:
		p.frac = newFractionLayout(toks)
	}
	return p, nil
}

// ── classification ──────────────────────────────────────────────────────────

// classify picks the rendering strategy of a section.  Elapsed markers win
// over date fields, which win over fractions, General, numbers and text.
func classify(p *Part) Kind {
	var elapsed, date, fraction, decimal, general, digits, numeric, text bool
	for _, t := range p.Tokens {
		switch t.Type {
		case TokenElapsed:
			elapsed = true
		case TokenDateField, TokenAmPm:
			date = true
		case TokenFraction:
			fraction = true
		case TokenDecimalPoint:
			decimal = true
			numeric = true
		case TokenGeneral:
			general = true
		case TokenDigits:
			digits = true
			numeric = true
		case TokenPercent, TokenExponent:
			numeric = true
		case TokenText:
			text = true
		}
	}
	switch {
	case elapsed:
		return KindElapsed
	case date:
		return KindDate
	case fraction && digits && !decimal:
		return KindFraction
	case general && !digits:
		return KindGeneral
	case numeric:
		return KindNumber
	case text || p.Index == maxSections-1:
		return KindText
	}
	return KindGeneral
}

// ── section selection ───────────────────────────────────────────────────────

// numeric returns the sections that may format numbers: the first three.
func (f *Format) numeric() []*Part {
	if len(f.Parts) > maxSections-1 {
		return f.Parts[:maxSections-1]
	}
	return f.Parts
}

func (f *Format) conditional() bool {
	for _, p := range f.numeric() {
		if p.Condition != nil {
			return true
		}
	}
	return false
}

// Select picks the section that formats the number v.
//
// Without conditions the sections split by sign:
//
//	1 section  → all values
//	2 sections → [0]=positive+zero  [1]=negative
//	3+ sections → [0]=positive  [1]=negative  [2]=zero
//
// When any numeric section carries a condition, sections are tried in order.
// A conditioned section is taken when its condition holds; an unconditioned
// one falls back to the implied sign condition of its slot.  byCondition
// reports that an explicit condition chose the section; ok is false when no
// section matches.
func (f *Format) Select(v float64) (p *Part, byCondition, ok bool) {
	parts := f.numeric()
	if !f.conditional() {
		switch {
		case len(parts) == 1, v > 0:
			return parts[0], false, true
		case v < 0:
			return parts[1], false, true
		case len(parts) >= 3:
			return parts[2], false, true
		}
		return parts[0], false, true
	}
	for i, p := range parts {
		if p.Condition != nil {
			if p.Condition.Holds(v) {
				return p, true, true
			}
			continue
		}
		if impliedHolds(i, len(parts), v) {
			return p, false, true
		}
	}
	return nil, false, false
}

func impliedHolds(slot, n int, v float64) bool {
	switch {
	case n == 1:
		return true
	case n == 2 && slot == 0:
		return v >= 0
	case n == 2:
		return true
	}
	switch slot {
	case 0:
		return v > 0
	case 1:
		return v < 0
	}
	return true
}

// TextPart returns the section that formats text, or nil when text values
// pass through unformatted.  A fourth section always formats text; otherwise
// the first section built around '@' does.
func (f *Format) TextPart() *Part {
	if len(f.Parts) == maxSections {
		return f.Parts[maxSections-1]
	}
	for _, p := range f.Parts {
		if p.Kind == KindText {
			return p
		}
	}
	return nil
}
