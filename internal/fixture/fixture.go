// Package fixture runs format conformance suites: tables of (expected text,
// format, value) rows kept in YAML files.
//
// A suite looks like
//
//	flags:
//	  Categories: ""        # comma list; only rows in one of them run
//	  AllColors: "true"     # re-run every row with each [Color] prefixed
//	tests:
//	  - expected: "1,234.50"
//	    format: "#,##0.00"
//	    value: 1234.5
//	    categories: "number, grouping"
//
// Flags that differ from their full-run value (empty Categories, AllColors
// on) produce a warning so a narrowed run is never mistaken for a full one.
package fixture

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	cellformat "github.com/TsubasaBE/go-cellformat"
	"github.com/TsubasaBE/go-cellformat/numfmt"
)

// Flag names understood by the runner.
const (
	FlagCategories = "Categories"
	FlagAllColors  = "AllColors"
)

var listSep = regexp.MustCompile(`\s*,\s*`)

// Suite is one fixture file.
type Suite struct {
	Name  string            `yaml:"name"`
	Flags map[string]string `yaml:"flags"`
	Tests []Case            `yaml:"tests"`
}

// Case is one row of a suite.
type Case struct {
	Expected   string `yaml:"expected"`
	Format     string `yaml:"format"`
	Value      any    `yaml:"value"`
	Type       string `yaml:"type"`  // number, text, bool, blank, date, time; inferred when empty
	Color      string `yaml:"color"` // color the format itself sets, if any
	Categories string `yaml:"categories"`
}

// Load decodes a suite.
func Load(r io.Reader) (*Suite, error) {
	var s Suite
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}
	if s.Flags == nil {
		s.Flags = map[string]string{}
	}
	return &s, nil
}

// LoadFile decodes the suite stored at path.  The suite is named after the
// file when it has no name of its own.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Failure is one failed check.
type Failure struct {
	Row       int
	Format    string // the format actually applied, color prefix included
	Value     string
	Want      string
	Got       string
	WantColor numfmt.Color
	GotColor  numfmt.Color
	Err       error
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("row %d: %q with %s: %v", f.Row, f.Format, f.Value, f.Err)
	}
	return fmt.Sprintf("row %d: %q with %s: got %q (color %q), want %q (color %q)",
		f.Row, f.Format, f.Value, f.Got, f.GotColor, f.Want, f.WantColor)
}

// Report summarises a run.
type Report struct {
	Suite    string
	Rows     int // rows run
	Skipped  int // rows filtered out or empty
	Checks   int // individual format applications
	Failures []Failure
	Warnings []string
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Runner applies suites through an engine.
type Runner struct {
	Engine *cellformat.Engine
	Log    logrus.FieldLogger
}

// NewRunner returns a runner over eng.  A nil logger discards warnings.
func NewRunner(eng *cellformat.Engine, log logrus.FieldLogger) *Runner {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Runner{Engine: eng, Log: log}
}

// Run executes every selected row of s.
func (r *Runner) Run(s *Suite) *Report {
	rep := &Report{Suite: s.Name}
	categories := splitList(r.flagString(rep, s, FlagCategories, ""))
	allColors := r.flagBoolean(rep, s, FlagAllColors, true)

	for i, c := range s.Tests {
		row := i + 1
		if c.Expected == "" && c.Format == "" || !runByCategory(categories, c.Categories) {
			rep.Skipped++
			continue
		}
		rep.Rows++

		v, err := c.Cell()
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Row: row, Format: c.Format, Value: fmt.Sprint(c.Value), Err: err})
			continue
		}
		want := c.Expected
		if strings.Contains(c.Format, "a/p") {
			// a/p markers render upper-case.
			want = strings.ToUpper(want)
		}
		color := numfmt.ColorNone
		if c.Color != "" {
			var ok bool
			if color, ok = numfmt.ParseColor(c.Color); !ok {
				rep.Failures = append(rep.Failures, Failure{Row: row, Format: c.Format, Value: v.String(),
					Err: fmt.Errorf("fixture: unknown color %q", c.Color)})
				continue
			}
		}

		r.check(rep, row, c.Format, v, want, color)
		if !allColors || color != numfmt.ColorNone || !r.sweepable(c.Format, v) {
			// A row that sets its own color cannot take a second one.
			continue
		}
		for _, col := range numfmt.Palette {
			r.check(rep, row, "["+col.String()+"]"+c.Format, v, want, col)
		}
	}

	r.Log.WithFields(logrus.Fields{
		"suite":    rep.Suite,
		"rows":     rep.Rows,
		"checks":   rep.Checks,
		"failures": len(rep.Failures),
	}).Info("fixture: suite finished")
	return rep
}

// check applies format to v.  When the format does not apply to the value
// the color must stay as it was, which for a fresh cell is no color.
func (r *Runner) check(rep *Report, row int, format string, v numfmt.Value, want string, wantColor numfmt.Color) {
	rep.Checks++
	res, err := r.Engine.Apply(format, v)
	if err != nil {
		rep.Failures = append(rep.Failures, Failure{Row: row, Format: format, Value: v.String(), Err: err})
		return
	}
	if !res.Applies {
		wantColor = numfmt.ColorNone
	}
	if res.Text != want || res.Color != wantColor {
		rep.Failures = append(rep.Failures, Failure{
			Row:       row,
			Format:    format,
			Value:     v.String(),
			Want:      want,
			Got:       res.Text,
			WantColor: wantColor,
			GotColor:  res.Color,
		})
	}
}

// sweepable reports whether a color prefixed to format reaches the section
// that renders v.  Only single-section formats qualify, and a text value
// needs a text section or it passes through uncolored.
func (r *Runner) sweepable(format string, v numfmt.Value) bool {
	f, err := r.Engine.Parse(format)
	if err != nil || len(f.Parts) != 1 {
		return false
	}
	switch v.Type() {
	case numfmt.TypeNumber, numfmt.TypeDateTime:
		return true
	}
	return f.TextPart() != nil
}

func (r *Runner) flagString(rep *Report, s *Suite, name, expected string) string {
	value := s.Flags[name]
	r.warnIfUnexpected(rep, s, name, expected, value)
	return value
}

// flagBoolean treats "true", "yes" and "on" (any case) as set.
func (r *Runner) flagBoolean(rep *Report, s *Suite, name string, expected bool) bool {
	value := strings.ToLower(s.Flags[name])
	set := value == "true" || value == "yes" || value == "on"
	r.warnIfUnexpected(rep, s, name, strconv.FormatBool(expected), strconv.FormatBool(set))
	return set
}

func (r *Runner) warnIfUnexpected(rep *Report, s *Suite, name, expected, actual string) {
	if actual == expected {
		return
	}
	msg := fmt.Sprintf("%s: flag %s = %q [not %q]", s.Name, name, actual, expected)
	rep.Warnings = append(rep.Warnings, msg)
	r.Log.Warn("fixture: " + msg)
}

// splitList splits a comma list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range listSep.Split(strings.TrimSpace(s), -1) {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// runByCategory reports whether a row listed in rowCategories runs when the
// run is limited to categories.  An empty limit runs everything.
func runByCategory(categories []string, rowCategories string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, rc := range splitList(rowCategories) {
		for _, c := range categories {
			if strings.EqualFold(rc, c) {
				return true
			}
		}
	}
	return false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Cell builds the cell value of the row.
func (c Case) Cell() (numfmt.Value, error) {
	switch strings.ToLower(c.Type) {
	case "":
		return numfmt.ValueOf(c.Value), nil
	case "number":
		switch x := c.Value.(type) {
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return numfmt.Value{}, fmt.Errorf("fixture: number value: %w", err)
			}
			return numfmt.Number(f), nil
		default:
			v := numfmt.ValueOf(x)
			if v.Type() != numfmt.TypeNumber {
				return numfmt.Value{}, fmt.Errorf("fixture: %v is not a number", c.Value)
			}
			return v, nil
		}
	case "text":
		if c.Value == nil {
			return numfmt.Text(""), nil
		}
		return numfmt.Text(fmt.Sprint(c.Value)), nil
	case "bool":
		switch x := c.Value.(type) {
		case bool:
			return numfmt.Bool(x), nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return numfmt.Value{}, fmt.Errorf("fixture: bool value: %w", err)
			}
			return numfmt.Bool(b), nil
		}
		return numfmt.Value{}, fmt.Errorf("fixture: %v is not a bool", c.Value)
	case "blank":
		return numfmt.Blank(), nil
	case "date":
		s := fmt.Sprint(c.Value)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return numfmt.DateTime(t), nil
			}
		}
		return numfmt.Value{}, fmt.Errorf("fixture: unrecognised date %q", s)
	case "time":
		t, err := time.Parse(time.TimeOnly, fmt.Sprint(c.Value))
		if err != nil {
			return numfmt.Value{}, fmt.Errorf("fixture: time value: %w", err)
		}
		secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
		return numfmt.Number((float64(secs) + float64(t.Nanosecond())/1e9) / 86400), nil
	}
	return numfmt.Value{}, fmt.Errorf("fixture: unknown value type %q", c.Type)
}
