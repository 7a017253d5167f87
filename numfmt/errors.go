package numfmt

import (
	"errors"
	"fmt"
)

// Sentinel errors.  Concrete errors returned by this package wrap one of
// these, so callers can test with [errors.Is].
var (
	// ErrMalformedFormat is returned by [Parse] for format strings that cannot
	// be interpreted: unterminated quotes or brackets, more than four
	// sections, or two decimal points in one numeric section.
	ErrMalformedFormat = errors.New("numfmt: malformed format")

	// ErrUnsupportedToken marks tokens that are recognised but not
	// interpreted, such as [DBNum1].  Their raw text is written as a literal
	// and they never fail a parse; see [Part.Unsupported].
	ErrUnsupportedToken = errors.New("numfmt: unsupported token")

	// ErrValueKindMismatch marks a value routed to a section that cannot
	// render it.  The value is rendered as General instead.
	ErrValueKindMismatch = errors.New("numfmt: value kind mismatch")
)

// FormatError describes where a format string is malformed.  Pos is a rune
// offset into Format.
type FormatError struct {
	Format string
	Pos    int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("numfmt: malformed format %q at offset %d: %s", e.Format, e.Pos, e.Msg)
}

func (e *FormatError) Unwrap() error { return ErrMalformedFormat }

// UnsupportedTokenError records a token that renders as its raw text.
type UnsupportedTokenError struct {
	Section int
	Token   string
	Reason  string
}

func (e *UnsupportedTokenError) Error() string {
	return fmt.Sprintf("numfmt: unsupported token %q in section %d: %s", e.Token, e.Section+1, e.Reason)
}

func (e *UnsupportedTokenError) Unwrap() error { return ErrUnsupportedToken }

// KindMismatchError reports a value that the chosen section cannot render.
type KindMismatchError struct {
	Section int
	Kind    Kind
	Value   ValueType
	Reason  string
}

func (e *KindMismatchError) Error() string {
	msg := fmt.Sprintf("numfmt: %s value in %s section %d", e.Value, e.Kind, e.Section+1)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *KindMismatchError) Unwrap() error { return ErrValueKindMismatch }
