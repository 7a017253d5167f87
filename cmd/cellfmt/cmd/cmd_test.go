package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"number", []string{"format", "#,##0.00", "1234.5"}, "1,234.50\n"},
		{"negative value", []string{"format", "0.00;[Red]-0.00", "--", "-5"}, "-5.00\n"},
		{"text", []string{"format", `"<"@">"`, "hi"}, "<hi>\n"},
		{"bool", []string{"format", "0", "true"}, "TRUE\n"},
		{"blank", []string{"format", "0.00"}, "\n"},
		{"date", []string{"format", "d mmm yyyy", "2024-03-16", "--type", "date"}, "16 Mar 2024\n"},
		{"time", []string{"format", "h:mm AM/PM", "13:05:00", "-t", "time"}, "1:05 PM\n"},
		{"forced text", []string{"format", "@", "42", "-t", "text"}, "42\n"},
		{"1904 system", []string{"--date1904", "format", "yyyy-mm-dd", "0"}, "1904-01-01\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatVerbose(t *testing.T) {
	out, err := run(t, "format", "0.00;[Red]-0.00", "--verbose", "--", "-5")
	require.NoError(t, err)
	assert.Contains(t, out, `text:    "-5.00"`)
	assert.Contains(t, out, "color:   Red")
	assert.Contains(t, out, "applies: true")
	assert.Contains(t, out, "value:   number -5")
}

func TestFormatErrors(t *testing.T) {
	_, err := run(t, "format", `0"`, "1")
	assert.ErrorContains(t, err, "malformed format")

	_, err = run(t, "format", "0", "abc", "--type", "number")
	assert.Error(t, err)

	_, err = run(t, "format")
	assert.Error(t, err)
}

func TestBuiltinCommand(t *testing.T) {
	out, err := run(t, "builtin")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, out, "#,##0.00")
	assert.Contains(t, out, "[h]:mm:ss")

	out, err = run(t, "builtin", "14")
	require.NoError(t, err)
	assert.Equal(t, "mm-dd-yy\n", out)

	out, err = run(t, "builtin", "14", "45367")
	require.NoError(t, err)
	assert.Equal(t, "03-16-24\n", out)

	_, err = run(t, "builtin", "23")
	assert.ErrorContains(t, err, "not a built-in")

	_, err = run(t, "builtin", "x")
	assert.ErrorContains(t, err, "invalid numFmtId")
}

func TestTokensCommand(t *testing.T) {
	out, err := run(t, "tokens", `[Red][>=10]0.00;[DBNum1]@`)
	require.NoError(t, err)
	assert.Contains(t, out, `section 1 "[Red][>=10]0.00": number color=Red condition=>=10`)
	assert.Contains(t, out, "DecimalPoint")
	assert.Contains(t, out, `section 2 "[DBNum1]@": text`)
	assert.Contains(t, out, "unsupported: [DBNum1]")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
flags:
  AllColors: "true"
tests:
  - {expected: "1,234.50", format: "#,##0.00", value: 1234.5}
  - {expected: "75%", format: "0%", value: 0.75}
`), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
tests:
  - {expected: "wrong", format: "0", value: 1, categories: number}
  - {expected: "skipped", format: "0", value: 1, categories: other}
`), 0o644))

	out, err := run(t, "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 18 checks, 0 skipped, 0 failed")

	out, err = run(t, "check", good, bad, "--all-colors", "false", "--categories", "number")
	assert.ErrorContains(t, err, "1 checks failed")
	assert.Contains(t, out, `got "1"`)
	assert.Contains(t, out, "1 rows, 1 checks, 1 skipped, 1 failed")

	_, err = run(t, "check", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cellfmt.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[engine]\ndate1904 = true\n"), 0o644))

	out, err := run(t, "--config", cfg, "format", "yyyy-mm-dd", "0")
	require.NoError(t, err)
	assert.Equal(t, "1904-01-01\n", out)

	// Flags override the file.
	out, err = run(t, "--config", cfg, "--date1904=false", "format", "yyyy-mm-dd", "0")
	require.NoError(t, err)
	assert.Equal(t, "1900-01-01\n", out)

	_, err = run(t, "--log-level", "loud", "format", "0", "1")
	assert.ErrorContains(t, err, "log.level")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cellfmt "))
}
