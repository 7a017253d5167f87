// Package cellformat renders spreadsheet cell values the way a spreadsheet
// application displays them, driven by the cell's number-format string.
//
// # Quick start
//
//	eng := cellformat.New()
//	res, err := eng.Apply(`#,##0.00;[Red](#,##0.00)`, numfmt.Number(-1234.5))
//	if err != nil { ... }
//	fmt.Println(res.Text, res.Color) // (1,234.50) Red
//
// The [Engine] parses each distinct format string once and caches the
// result, so it is cheap to call [Engine.Apply] for every cell of a sheet.
// An Engine is safe for concurrent use.
//
// # Built-in formats
//
// Workbooks reference common formats by numFmtId instead of by string.
// [Engine.ApplyBuiltIn] resolves the id through [styles.BuiltInNumFmt];
// [Engine.FormatValue] takes the (id, custom string) pair exactly as it is
// stored in a workbook's style table.
//
// # Dates
//
// Dates are stored as floating-point serial numbers.  Date formats render
// them directly; for the underlying [time.Time] use [ConvertDateEx], passing
// the workbook's date system.  [ConvertDate] is the 1900-system shorthand and
// [TimeToSerial] goes the other way.
package cellformat

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TsubasaBE/go-cellformat/internal/dateformat"
	"github.com/TsubasaBE/go-cellformat/numfmt"
	"github.com/TsubasaBE/go-cellformat/styles"
)

// Version is the current version of the go-cellformat library.
const Version = "1.0.0"

// Aliases for the value and result types, so most callers only import this
// package.
type (
	Value  = numfmt.Value
	Result = numfmt.Result
	Color  = numfmt.Color
)

// Options is the plain-struct form of the functional options, convenient
// when the settings come from a configuration file.
type Options struct {
	// CacheSize bounds the parsed-format cache.  0 means unbounded.
	CacheSize int

	// Date1904 selects the 1904 date system.
	Date1904 bool

	// Logger receives diagnostics.  nil discards them.
	Logger logrus.FieldLogger
}

// Option configures an [Engine].
type Option func(*Options)

// WithCacheSize bounds the parsed-format cache to n entries with LRU
// eviction.  n <= 0 keeps the cache unbounded.
func WithCacheSize(n int) Option {
	return func(o *Options) { o.CacheSize = n }
}

// WithDate1904 selects the 1904 date system.
func WithDate1904(on bool) Option {
	return func(o *Options) { o.Date1904 = on }
}

// WithLogger sets the logger that receives malformed-format warnings,
// unsupported-token notices and fallback diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOptions replaces every setting at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// Engine applies format strings to cell values.
type Engine struct {
	cache  formatCache
	log    logrus.FieldLogger
	render numfmt.Options
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{
		cache:  newFormatCache(o.CacheSize),
		log:    log,
		render: numfmt.Options{Date1904: o.Date1904, Logger: log},
	}
}

// Parse returns the parsed form of format, from the cache when possible.
// Parse failures are cached as well; the returned error wraps
// [numfmt.ErrMalformedFormat].
func (e *Engine) Parse(format string) (*numfmt.Format, error) {
	if ent, ok := e.cache.load(format); ok {
		return ent.format, ent.err
	}
	f, err := numfmt.Parse(format)
	ent := e.cache.store(format, &cacheEntry{format: f, err: err})
	if ent.format == f && ent.err == err {
		e.report(format, f, err)
	}
	return ent.format, ent.err
}

// report logs what a fresh parse found.  It runs once per cached entry.
func (e *Engine) report(format string, f *numfmt.Format, err error) {
	if err != nil {
		e.log.WithError(err).WithField("format", format).Warn("cellformat: malformed number format")
		return
	}
	for _, p := range f.Parts {
		for _, u := range p.Unsupported {
			e.log.WithError(u).WithField("format", format).Debug("cellformat: unsupported token written as literal")
		}
	}
}

// Apply renders v with format.  A malformed format returns an error wrapping
// [numfmt.ErrMalformedFormat] together with the General rendering of v.
func (e *Engine) Apply(format string, v numfmt.Value) (numfmt.Result, error) {
	f, err := e.Parse(format)
	if err != nil {
		return numfmt.Result{Text: v.String()}, err
	}
	return f.Apply(v, e.render), nil
}

// ApplyAny is [Engine.Apply] for a dynamically typed value; see
// [numfmt.ValueOf] for the accepted types.
func (e *Engine) ApplyAny(format string, v any) (numfmt.Result, error) {
	return e.Apply(format, numfmt.ValueOf(v))
}

// ApplyBuiltIn renders v with the built-in format numFmtID.  Unknown ids
// render as General.
func (e *Engine) ApplyBuiltIn(numFmtID int, v numfmt.Value) (numfmt.Result, error) {
	return e.Apply(styles.Resolve(numFmtID, ""), v)
}

// FormatValue renders a raw cell value v using the given number format and
// returns only the display text.
//
//   - numFmtID is the numFmtId from the cell's style (0 = General).
//   - fmtStr is the custom format string; pass "" for built-in IDs that have
//     no custom override.
//
// A malformed custom format falls back to the General rendering.
func (e *Engine) FormatValue(v any, numFmtID int, fmtStr string) string {
	res, err := e.Apply(styles.Resolve(numFmtID, fmtStr), numfmt.ValueOf(v))
	if err != nil {
		return numfmt.ValueOf(v).String()
	}
	return res.Text
}

// CacheLen reports how many distinct format strings are cached.
func (e *Engine) CacheLen() int { return e.cache.len() }

// ── dates ───────────────────────────────────────────────────────────────────

// ConvertDate converts a 1900-system date serial to a [time.Time] in UTC.
//
// Spreadsheets count days since 1900-01-00, with the fractional part
// representing the time of day.  Lotus 1-2-3 incorrectly treated 1900 as a
// leap year and the bug is kept for compatibility, giving three branches:
//
//   - serial == 0  → midnight on 1900-01-01
//   - serial >= 61 → subtract one day to compensate for the phantom leap day
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//
// The time of day is rounded to the nearest second.
func ConvertDate(date float64) (time.Time, error) {
	t, err := dateformat.SerialToTime(date, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("cellformat: ConvertDate: %w", err)
	}
	return t, nil
}

// ConvertDateEx converts a date serial to a [time.Time], respecting the
// workbook's date system.  With date1904 false it is identical to
// [ConvertDate].  In the 1904 system serial 0 is 1904-01-01 and there is no
// phantom leap day.
func ConvertDateEx(date float64, date1904 bool) (time.Time, error) {
	t, err := dateformat.SerialToTime(date, date1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("cellformat: ConvertDateEx: %w", err)
	}
	return t, nil
}

// TimeToSerial converts the wall-clock reading of t to a date serial.
func TimeToSerial(t time.Time, date1904 bool) (float64, error) {
	s, err := dateformat.TimeToSerial(t, date1904)
	if err != nil {
		return 0, fmt.Errorf("cellformat: TimeToSerial: %w", err)
	}
	return s, nil
}

// IsDateFormat reports whether a number-format ID (and optional custom
// format string) carries a calendar date.
//
// Built-in date IDs follow ECMA-376 §18.8.30:
//
//	14–17, 22, 27–36, 45–47, 50–58
//
// Time-only built-ins 18–21 are excluded because they have no calendar
// component; use [styles.IsDateFormat] to include them.  For custom formats
// (id >= 164) the unquoted, unbracketed part of formatStr is scanned for
// date and time letters.
func IsDateFormat(id int, formatStr string) bool {
	switch {
	case id >= 18 && id <= 21:
		return false
	case id < styles.FirstCustomID:
		return dateformat.IsBuiltInDateID(id)
	}
	return dateformat.ScanFormatStr(formatStr)
}

// IsMalformed reports whether err marks a malformed format string.
func IsMalformed(err error) bool { return errors.Is(err, numfmt.ErrMalformedFormat) }
