package numfmt

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/nfp"
)

// Tokenize splits a single format section (no unquoted ';') into tokens.
//
// Quoted text, backslash escapes and bracket groups are recognised first;
// everything else is classified one rune at a time.  Runs of date letters
// are folded into one token carrying the repeat count, and after lexing every
// m/mm run is resolved to minutes or months by looking at its neighbours.
//
// Tokenize never panics.  Unterminated quotes and brackets are reported as a
// [*FormatError] wrapping [ErrMalformedFormat].
func Tokenize(section string) ([]Token, error) {
	lx := &lexer{src: []rune(section), raw: section}
	if err := lx.run(); err != nil {
		return nil, err
	}
	resolveMinutes(lx.toks)
	return lx.toks, nil
}

type lexer struct {
	src  []rune
	raw  string
	pos  int
	toks []Token

	// seenDigits is set once a digit placeholder has been emitted; only
	// then does E+ / E- introduce an exponent.
	seenDigits bool
}

func (lx *lexer) fail(pos int, msg string) error {
	return &FormatError{Format: lx.raw, Pos: pos, Msg: msg}
}

// emit appends t, merging adjacent unquoted literals.
func (lx *lexer) emit(t Token) {
	if t.Type == TokenLiteral && len(lx.toks) > 0 {
		last := &lx.toks[len(lx.toks)-1]
		if last.Type == TokenLiteral && last.Pos+len([]rune(last.Text)) == t.Pos {
			last.Text += t.Text
			return
		}
	}
	lx.toks = append(lx.toks, t)
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.src) {
		start := lx.pos
		r := lx.src[start]
		switch {
		case r == '"':
			end := lx.indexFrom(start+1, '"')
			if end < 0 {
				return lx.fail(start, "unterminated quoted literal")
			}
			lx.emit(Token{Type: TokenQuoted, Text: string(lx.src[start+1 : end]), Pos: start})
			lx.pos = end + 1

		case r == '\\':
			if start+1 >= len(lx.src) {
				lx.emit(Token{Type: TokenLiteral, Text: `\`, Pos: start})
				lx.pos++
				continue
			}
			lx.emit(Token{Type: TokenEscape, Text: string(lx.src[start+1]), Pos: start})
			lx.pos += 2

		case r == '[':
			end := lx.indexFrom(start+1, ']')
			if end < 0 {
				return lx.fail(start, "unterminated bracket")
			}
			lx.bracket(string(lx.src[start+1:end]), start)
			lx.pos = end + 1

		case r == '0' || r == '#' || r == '?':
			end := start
			for end < len(lx.src) && isPlaceholder(lx.src[end]) {
				end++
			}
			lx.emit(Token{Type: TokenDigits, Text: string(lx.src[start:end]), Pos: start})
			lx.seenDigits = true
			lx.pos = end

		case r == '.':
			lx.single(TokenDecimalPoint)
		case r == ',':
			lx.single(TokenComma)
		case r == '%':
			lx.single(TokenPercent)
		case r == '/':
			lx.single(TokenFraction)
		case r == '@':
			lx.single(TokenText)

		case r == '_' || r == '*':
			typ := TokenSkip
			if r == '*' {
				typ = TokenFill
			}
			if start+1 < len(lx.src) {
				lx.emit(Token{Type: typ, Text: string(lx.src[start+1]), Pos: start})
			}
			lx.pos += 2

		case (r == 'E' || r == 'e') && lx.seenDigits && (lx.peek(1) == '+' || lx.peek(1) == '-'):
			lx.emit(Token{Type: TokenExponent, Text: string(lx.src[start : start+2]), Pos: start})
			lx.pos += 2

		default:
			if n := lx.matchAmPm(); n > 0 {
				lx.emit(Token{Type: TokenAmPm, Text: string(lx.src[start : start+n]), Pos: start})
				lx.pos += n
				continue
			}
			if lx.hasFoldPrefix(nfp.TokenTypeGeneral) {
				n := len([]rune(nfp.TokenTypeGeneral))
				lx.emit(Token{Type: TokenGeneral, Text: string(lx.src[start : start+n]), Pos: start})
				lx.pos += n
				continue
			}
			if field, ok := dateLetter(r); ok {
				end := start + 1
				for end < len(lx.src) && unicode.ToLower(lx.src[end]) == unicode.ToLower(r) {
					end++
				}
				count := end - start
				if field == FieldYear && unicode.ToLower(r) == 'e' {
					count = 4
				}
				lx.emit(Token{Type: TokenDateField, Text: string(lx.src[start:end]), Pos: start, Field: field, Count: count})
				lx.pos = end
				continue
			}
			lx.emit(Token{Type: TokenLiteral, Text: string(r), Pos: start})
			lx.pos++
		}
	}
	return nil
}

func (lx *lexer) single(typ TokenType) {
	lx.emit(Token{Type: typ, Text: string(lx.src[lx.pos]), Pos: lx.pos})
	lx.pos++
}

func (lx *lexer) peek(off int) rune {
	if lx.pos+off < len(lx.src) {
		return lx.src[lx.pos+off]
	}
	return 0
}

func (lx *lexer) indexFrom(from int, r rune) int {
	for i := from; i < len(lx.src); i++ {
		if lx.src[i] == r {
			return i
		}
	}
	return -1
}

func (lx *lexer) hasFoldPrefix(s string) bool {
	rs := []rune(s)
	if lx.pos+len(rs) > len(lx.src) {
		return false
	}
	return strings.EqualFold(string(lx.src[lx.pos:lx.pos+len(rs)]), s)
}

// matchAmPm returns the rune length of an AM/PM marker at the cursor, or 0.
func (lx *lexer) matchAmPm() int {
	for _, pattern := range nfp.AmPm {
		if lx.hasFoldPrefix(pattern) {
			return len([]rune(pattern))
		}
	}
	return 0
}

// bracket classifies the content of a [...] group starting at pos.
func (lx *lexer) bracket(content string, pos int) {
	raw := "[" + content + "]"
	if c, ok := ParseColor(content); ok {
		lx.emit(Token{Type: TokenColor, Text: raw, Pos: pos, Color: c})
		return
	}
	if cond, ok := parseCondition(content); ok {
		lx.emit(Token{Type: TokenCondition, Text: raw, Pos: pos, Condition: cond})
		return
	}
	if field, n, ok := elapsedField(content); ok {
		lx.emit(Token{Type: TokenElapsed, Text: raw, Pos: pos, Field: field, Count: n})
		return
	}
	if strings.HasPrefix(content, "$") {
		lx.emit(Token{Type: TokenLocale, Text: raw, Pos: pos, Locale: parseLocale(raw)})
		return
	}
	for _, arg := range nfp.GeneralFormattingSwitchArguments {
		if strings.EqualFold(arg, content) {
			lx.emit(Token{Type: TokenSwitch, Text: raw, Pos: pos})
			return
		}
	}
	// Unknown bracket content is kept verbatim.
	lx.toks = append(lx.toks, Token{Type: TokenLiteral, Text: raw, Pos: pos})
}

// parseCondition decodes "<=100" style bracket content.  The longest
// operator from nfp's vocabulary wins, so "<=" is never read as "<".
func parseCondition(content string) (*Condition, bool) {
	op := ""
	for _, candidate := range nfp.ConditionOperators {
		if strings.HasPrefix(content, candidate) && len(candidate) > len(op) {
			op = candidate
		}
	}
	if op == "" {
		return nil, false
	}
	threshold, err := strconv.ParseFloat(strings.TrimSpace(content[len(op):]), 64)
	if err != nil {
		return nil, false
	}
	return &Condition{Op: op, Threshold: threshold}, true
}

// elapsedField recognises [h], [mm], [sss] and so on.
func elapsedField(content string) (DateField, int, bool) {
	if content == "" {
		return FieldNone, 0, false
	}
	first := unicode.ToLower(rune(content[0]))
	for _, r := range content {
		if unicode.ToLower(r) != first {
			return FieldNone, 0, false
		}
	}
	switch first {
	case 'h':
		return FieldHour, len(content), true
	case 'm':
		return FieldMinute, len(content), true
	case 's':
		return FieldSecond, len(content), true
	}
	return FieldNone, 0, false
}

// parseLocale decomposes a [$sym-LCID] group with nfp's currency/language
// tokenizer.
func parseLocale(raw string) *Locale {
	loc := &Locale{}
	ps := nfp.NumberFormatParser()
	for _, section := range ps.Parse(raw) {
		for _, item := range section.Items {
			if item.TType != nfp.TokenTypeCurrencyLanguage {
				continue
			}
			for _, part := range item.Parts {
				switch part.Token.TType {
				case nfp.TokenSubTypeCurrencyString:
					loc.Currency = part.Token.TValue
				case nfp.TokenSubTypeLanguageInfo:
					loc.LCID = part.Token.TValue
				}
			}
		}
	}
	return loc
}

func isPlaceholder(r rune) bool { return r == '0' || r == '#' || r == '?' }

func dateLetter(r rune) (DateField, bool) {
	switch unicode.ToLower(r) {
	case 'y', 'e':
		return FieldYear, true
	case 'm':
		return FieldMonth, true
	case 'd':
		return FieldDay, true
	case 'h':
		return FieldHour, true
	case 's':
		return FieldSecond, true
	}
	return FieldNone, false
}

// resolveMinutes turns m/mm runs into minutes when the nearest preceding
// field is an hour or the nearest following field is a second.  Literals and
// other non-field tokens are skipped when looking for neighbours.
func resolveMinutes(toks []Token) {
	for i := range toks {
		t := &toks[i]
		if t.Type != TokenDateField || t.Field != FieldMonth || t.Count > 2 {
			continue
		}
		if neighbourField(toks, i, -1) == FieldHour || neighbourField(toks, i, 1) == FieldSecond {
			t.Field = FieldMinute
		}
	}
}

func neighbourField(toks []Token, i, step int) DateField {
	for j := i + step; j >= 0 && j < len(toks); j += step {
		switch toks[j].Type {
		case TokenDateField, TokenElapsed:
			return toks[j].Field
		}
	}
	return FieldNone
}
