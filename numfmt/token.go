package numfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType tags a [Token].
type TokenType int

const (
	TokenLiteral      TokenType = iota // unquoted literal characters
	TokenQuoted                        // "..." literal
	TokenEscape                        // \x literal
	TokenDigits                        // run of 0 # ? placeholders
	TokenDecimalPoint                  // .
	TokenComma                         // , (grouping, scaling or literal)
	TokenPercent                       // %
	TokenExponent                      // E+ E- e+ e-
	TokenFraction                      // /
	TokenDateField                     // y m d h s e runs
	TokenAmPm                          // AM/PM, A/P
	TokenElapsed                       // [h] [mm] [ss]
	TokenColor                         // [Red], [Color3]
	TokenCondition                     // [>100]
	TokenLocale                        // [$€-407]
	TokenSwitch                        // [DBNum1]
	TokenText                          // @
	TokenGeneral                       // General
	TokenSkip                          // _x
	TokenFill                          // *x
)

var tokenTypeNames = [...]string{
	TokenLiteral:      "Literal",
	TokenQuoted:       "Quoted",
	TokenEscape:       "Escape",
	TokenDigits:       "Digits",
	TokenDecimalPoint: "DecimalPoint",
	TokenComma:        "Comma",
	TokenPercent:      "Percent",
	TokenExponent:     "Exponent",
	TokenFraction:     "Fraction",
	TokenDateField:    "DateField",
	TokenAmPm:         "AmPm",
	TokenElapsed:      "Elapsed",
	TokenColor:        "Color",
	TokenCondition:    "Condition",
	TokenLocale:       "Locale",
	TokenSwitch:       "Switch",
	TokenText:         "Text",
	TokenGeneral:      "General",
	TokenSkip:         "Skip",
	TokenFill:         "Fill",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "TokenType(" + strconv.Itoa(int(t)) + ")"
	}
	return tokenTypeNames[t]
}

// DateField identifies the calendar or clock component of a date token.
type DateField int

const (
	FieldNone DateField = iota
	FieldYear
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
)

func (f DateField) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDay:
		return "day"
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldSecond:
		return "second"
	}
	return "none"
}

// Token is one lexical element of a format section.
//
// Text always holds the source text of the token, except for Quoted and
// Escape tokens where it holds the unquoted literal, and Skip and Fill tokens
// where it holds the padding character.
type Token struct {
	Type  TokenType
	Text  string
	Pos   int       // rune offset within the section
	Field DateField // DateField and Elapsed tokens
	Count int       // repeat count of a DateField or Elapsed token

	Color     Color
	Condition *Condition
	Locale    *Locale
}

func (t Token) String() string {
	switch t.Type {
	case TokenDateField, TokenElapsed:
		return fmt.Sprintf("%s(%s×%d %q)", t.Type, t.Field, t.Count, t.Text)
	case TokenColor:
		return fmt.Sprintf("%s(%s)", t.Type, t.Color)
	case TokenCondition:
		return fmt.Sprintf("%s(%s)", t.Type, t.Condition)
	case TokenLocale:
		return fmt.Sprintf("%s(%q %s)", t.Type, t.Locale.Currency, t.Locale.LCID)
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// Condition is a [op threshold] section guard.
type Condition struct {
	Op        string
	Threshold float64
}

// Holds reports whether v satisfies the condition.
func (c Condition) Holds(v float64) bool {
	switch c.Op {
	case "<":
		return v < c.Threshold
	case "<=":
		return v <= c.Threshold
	case ">":
		return v > c.Threshold
	case ">=":
		return v >= c.Threshold
	case "<>":
		return v != c.Threshold
	case "=":
		return v == c.Threshold
	}
	return false
}

func (c *Condition) String() string {
	if c == nil {
		return ""
	}
	return c.Op + strconv.FormatFloat(c.Threshold, 'f', -1, 64)
}

// Locale is the decoded content of a [$sym-LCID] bracket.  Currency is
// rendered in place of the bracket; LCID is kept for callers but does not
// change rendering.
type Locale struct {
	Currency string
	LCID     string
}

// marksSign reports whether t is an unquoted or escaped '-' or '(' that can
// stand as the sign of the number it precedes.  Quoted text never counts.
func (t Token) marksSign() bool {
	switch t.Type {
	case TokenLiteral, TokenEscape:
		return strings.ContainsAny(t.Text, "-(")
	}
	return false
}
