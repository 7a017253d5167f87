package dateformat_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-cellformat/internal/dateformat"
)

// ── SerialToTime ──────────────────────────────────────────────────────────────

func TestSerialToTime(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		date1904 bool
		want     time.Time
		wantErr  bool
	}{
		{
			name:  "1900: serial 0 gives 1900-01-01",
			input: 0,
			want:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "1900: serial 0 with time component",
			input: 0.5,
			want:  time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "1900: serial 1 gives 1900-01-01",
			input: 1,
			want:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "1900: serial 60 gives 1900-03-01 (phantom leap day)",
			input: 60,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "1900: serial 61 compensates for the leap-year bug",
			input: 61,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "1900: 41235.45578",
			input: 41235.45578,
			want:  time.Date(2012, 11, 22, 10, 56, 19, 0, time.UTC),
		},
		{
			name:  "1900: last supported day",
			input: dateformat.MaxSerial1900,
			want:  time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "1904: serial 0 gives 1904-01-01",
			input:    0,
			date1904: true,
			want:     time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "1904: serial 0 with time component",
			input:    0.5,
			date1904: true,
			want:     time.Date(1904, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "1904: serial 365 gives 1904-12-31",
			input:    365,
			date1904: true,
			want:     time.Date(1904, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "1904: serial 39813 gives 2013-01-01",
			input:    39813,
			date1904: true,
			want:     time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "NaN returns error", input: math.NaN(), wantErr: true},
		{name: "+Inf returns error", input: math.Inf(1), wantErr: true},
		{name: "negative returns error", input: -1, wantErr: true},
		{name: "1900: past the last day returns error", input: dateformat.MaxSerial1900 + 1, wantErr: true},
		{name: "1904: past the last day returns error", input: dateformat.MaxSerial1904 + 1, date1904: true, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dateformat.SerialToTime(tc.input, tc.date1904)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
		})
	}
}

// ── TimeToSerial ──────────────────────────────────────────────────────────────

func TestTimeToSerial(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		date1904 bool
		want     float64
		wantErr  bool
	}{
		{name: "1900-01-01", in: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "1900-02-28", in: time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), want: 59},
		{name: "1900-03-01", in: time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), want: 61},
		{name: "2024-01-01 noon", in: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), want: 45292.5},
		{name: "wall clock is kept", in: time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 5*3600)), want: 45292.5},
		{name: "1904 epoch", in: time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC), date1904: true, want: 0},
		{name: "1904: 2013-01-01", in: time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), date1904: true, want: 39813},
		{name: "before 1900", in: time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), wantErr: true},
		{name: "before 1904", in: time.Date(1903, 12, 31, 0, 0, 0, 0, time.UTC), date1904: true, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dateformat.TimeToSerial(tc.in, tc.date1904)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	t.Run("round trip", func(t *testing.T) {
		for _, serial := range []float64{1, 59, 61, 45367.5, 2958465} {
			ts, err := dateformat.SerialToTime(serial, false)
			require.NoError(t, err)
			back, err := dateformat.TimeToSerial(ts, false)
			require.NoError(t, err)
			assert.InDelta(t, serial, back, 1e-9)
		}
	})
}

// ── Split ─────────────────────────────────────────────────────────────────────

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		digits int
		want   dateformat.Clock
	}{
		{"noon", 1.5, 0, dateformat.Clock{Days: 1, Seconds: 43200}},
		{"rounds to the second", 0.5 + 0.4/86400, 0, dateformat.Clock{Seconds: 43200}},
		{"rolls over midnight", 0.9999999, 0, dateformat.Clock{Days: 1}},
		{"keeps milliseconds", 1.5 / 86400, 3, dateformat.Clock{Seconds: 1, Frac: 500, Digits: 3}},
		{"clamps digits", 1.5 / 86400, 9, dateformat.Clock{Seconds: 1, Frac: 500, Digits: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dateformat.Split(tc.serial, tc.digits)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("total seconds", func(t *testing.T) {
		c, err := dateformat.Split(2.25, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2*86400+6*3600), c.TotalSeconds())
	})
	t.Run("rejects out of range", func(t *testing.T) {
		for _, serial := range []float64{-0.1, math.NaN(), math.Inf(-1), 2e9} {
			_, err := dateformat.Split(serial, 0)
			assert.Error(t, err, "serial %v", serial)
		}
	})
}

// ── format detection ──────────────────────────────────────────────────────────

func TestIsBuiltInDateID(t *testing.T) {
	for _, id := range []int{14, 17, 18, 21, 22, 27, 36, 45, 47, 50, 58} {
		assert.True(t, dateformat.IsBuiltInDateID(id), "id %d", id)
	}
	for _, id := range []int{0, 1, 13, 23, 26, 37, 44, 48, 49, 59, 163, 164} {
		assert.False(t, dateformat.IsBuiltInDateID(id), "id %d", id)
	}
}

func TestScanFormatStr(t *testing.T) {
	tests := []struct {
		name      string
		formatStr string
		want      bool
	}{
		{"iso date", "yyyy-mm-dd", true},
		{"date and time", "dd/mm/yyyy hh:mm", true},
		{"time only", "h:mm:ss", true},
		{"elapsed bracket", "[h]", true},
		{"elapsed minutes", "[mm]:ss", true},
		{"e year", "e", true},
		{"numeric", "0.00", false},
		{"text", "@", false},
		{"scientific", "0.00E+00", false},
		{"general", "General", false},
		{"quoted letters", `"date"0.00`, false},
		{"escaped letter", `0\d`, false},
		{"skip code", "0_s", false},
		{"fill code", "*d0", false},
		{"color bracket", "[Red]0", false},
		{"locale bracket", "[$-409]0", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dateformat.ScanFormatStr(tc.formatStr))
		})
	}
}
