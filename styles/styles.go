// Package styles holds the built-in number formats every spreadsheet
// application knows by numFmtId, and resolves an (id, custom format) pair to
// the format string the engine should parse.
package styles

import (
	"slices"

	"github.com/TsubasaBE/go-cellformat/internal/dateformat"
)

// General is the format used when nothing else applies.
const General = "General"

// FirstCustomID is the lowest numFmtId a workbook may assign to a custom
// format.  IDs below it are reserved for built-ins, even where no built-in
// is defined.
const FirstCustomID = 164

// BuiltInNumFmt maps built-in numFmtId values to their canonical format
// strings as defined by ECMA-376 §18.8.30.  IDs 27–36 and 50–58 are
// locale-specific (CJK/Thai); the entries here are neutral Western
// fallbacks so a serial still renders as a readable date.
var BuiltInNumFmt = map[int]string{
	0:  General,
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `"$"#,##0_);\("$"#,##0\)`,
	6:  `"$"#,##0_);[Red]\("$"#,##0\)`,
	7:  `"$"#,##0.00_);\("$"#,##0.00\)`,
	8:  `"$"#,##0.00_);[Red]\("$"#,##0.00\)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	27: "mm-dd-yyyy",
	28: "d-mmm-yy",
	29: "d-mmm-yy",
	30: "m/d/yy",
	31: "yyyy-m-d",
	32: "h:mm",
	33: "h:mm:ss",
	34: "h:mm AM/PM",
	35: "h:mm:ss AM/PM",
	36: "mm-dd-yyyy",
	37: `#,##0_);\(#,##0\)`,
	38: `#,##0_);[Red]\(#,##0\)`,
	39: `#,##0.00_);\(#,##0.00\)`,
	40: `#,##0.00_);[Red]\(#,##0.00\)`,
	41: `_(* #,##0_);_(* \(#,##0\);_(* "-"_);_(@_)`,
	42: `_("$"* #,##0_);_("$"* \(#,##0\);_("$"* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* \(#,##0.00\);_(* "-"??_);_(@_)`,
	44: `_("$"* #,##0.00_);_("$"* \(#,##0.00\);_("$"* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
	50: "mm-dd-yyyy",
	51: "d-mmm-yy",
	52: "h:mm AM/PM",
	53: "h:mm:ss AM/PM",
	54: "d-mmm-yy",
	55: "h:mm AM/PM",
	56: "h:mm:ss AM/PM",
	57: "mm-dd-yyyy",
	58: "d-mmm-yy",
}

// Lookup returns the built-in format for id.
func Lookup(id int) (string, bool) {
	s, ok := BuiltInNumFmt[id]
	return s, ok
}

// Resolve returns the effective format string: custom when non-empty, the
// built-in string for id when known, or General.
func Resolve(id int, custom string) string {
	if custom != "" {
		return custom
	}
	if s, ok := BuiltInNumFmt[id]; ok {
		return s
	}
	return General
}

// IDs returns the built-in ids in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(BuiltInNumFmt))
	for id := range BuiltInNumFmt {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsDateFormat reports whether the (id, custom) pair renders a date, time
// or elapsed duration.  A custom string is scanned for date letters; without
// one the id is checked against the built-in date ranges, time-only ids
// 18–21 included.
func IsDateFormat(id int, custom string) bool {
	if custom != "" {
		return dateformat.ScanFormatStr(custom)
	}
	return dateformat.IsBuiltInDateID(id)
}
