package numfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TsubasaBE/go-cellformat/numfmt"
)

// hms returns the serial fraction of a time of day.
func hms(h, m, s float64) float64 { return (h*3600 + m*60 + s) / 86400 }

func TestDate(t *testing.T) {
	tests := []struct {
		name   string
		format string
		v      float64
		want   string
	}{
		{"iso date", "yyyy-mm-dd", 45367, "2024-03-16"},
		{"two-digit year", "mm-dd-yy", 45367, "03-16-24"},
		{"upper-case codes", "DDDD DD/MM/YYYY", 45285, "Monday 25/12/2023"},
		{"short month name", "DD-MMM", 45119, "12-Jul"},
		{"built-in d-mmm-yy", "d-mmm-yy", 45367, "16-Mar-24"},
		{"full month name", "mmmm d, yyyy", 45367, "March 16, 2024"},
		{"month initial", "mmmmm", 45292, "J"},
		{"short weekday", "ddd", 45367, "Sat"},
		{"unpadded day and month", "m/d/yyyy", 45292, "1/1/2024"},
		{"e year", "e", 45367, "2024"},
		{"switch kept as text", "[DBNum1]yyyy", 45367, "[DBNum1]2024"},
		{"serial zero", "yyyy-mm-dd", 0, "1900-01-01"},
		{"phantom leap day", "yyyy-mm-dd", 60, "1900-03-01"},
		{"after phantom day", "yyyy-mm-dd", 61, "1900-03-01"},
		{"last supported day", "yyyy-mm-dd", 2958465, "9999-12-31"},
		{"negative date renders general", "yyyy-mm-dd", -1, "-1"},
		{"past the last day renders general", "yyyy-mm-dd", 2958466, "2958466"},
		{"datetime", "yyyy-mm-dd hh:mm", 45367 + hms(13, 5, 0), "2024-03-16 13:05"},
		{"time rounds into the next day", "yyyy-mm-dd hh:mm:ss", 45367 + hms(23, 59, 59.6), "2024-03-17 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text(t, tt.format, numfmt.Number(tt.v)))
		})
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		name   string
		format string
		v      float64
		want   string
	}{
		{"clock", "h:mm:ss", hms(13, 5, 9), "13:05:09"},
		{"padded hour", "hh:mm", hms(7, 5, 0), "07:05"},
		{"a/p", "h:mm:ss a/p", hms(13, 5, 9), "1:05:09 P"},
		{"a/p morning", "h:mm a/p", hms(9, 30, 0), "9:30 A"},
		{"AM/PM", "h:mm AM/PM", 0.75, "6:00 PM"},
		{"midnight", "h:mm AM/PM", 0, "12:00 AM"},
		{"noon", "h:mm AM/PM", 0.5, "12:00 PM"},
		{"lower-case am/pm is upper-cased", "h:mm am/pm", 0.25, "6:00 AM"},
		{"minutes and seconds", "mm:ss", hms(0, 4, 7), "04:07"},
		{"fractional seconds", "mm:ss.0", hms(0, 1, 1.25), "01:01.3"},
		{"milliseconds", "hh:mm:ss.000", hms(10, 0, 0.5), "10:00:00.500"},
		{"fractional seconds round up", "ss.00", hms(0, 0, 59.999), "00.00"},
		{"seconds rounded", "h:mm:ss", hms(1, 2, 3.6), "1:02:04"},
		{"time ignores the day", "h:mm", 45367.25, "6:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text(t, tt.format, numfmt.Number(tt.v)))
		})
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name   string
		format string
		v      float64
		want   string
	}{
		{"hours past a day", "[h]:mm:ss", 1.5, "36:00:00"},
		{"built-in 46", "[h]:mm:ss", 6.5 / 24, "6:30:00"},
		{"padded hours", "[hh]:mm", hms(1, 30, 0), "01:30"},
		{"total minutes", "[mm]:ss", hms(1, 30, 15), "90:15"},
		{"total seconds", "[ss]", hms(0, 2, 5), "125"},
		{"negative duration", "[h]:mm", -0.5, "-12:00"},
		{"fractional elapsed seconds", "[s].00", 1.5 / 86400, "1.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text(t, tt.format, numfmt.Number(tt.v)))
		})
	}
}

func TestDate1904(t *testing.T) {
	f := numfmt.MustParse("yyyy-mm-dd")
	opts := numfmt.Options{Date1904: true}
	assert.Equal(t, "1904-01-01", f.Apply(numfmt.Number(0), opts).Text)
	assert.Equal(t, "1904-01-02", f.Apply(numfmt.Number(1), opts).Text)
	assert.Equal(t, "2013-01-01", f.Apply(numfmt.Number(39813), opts).Text)
}
