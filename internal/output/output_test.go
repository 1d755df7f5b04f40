package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeCompiler mimics pdflatex: it appends one line per run to a log file
// and writes <base>.pdf into the -output-directory.
const fakeCompiler = `#!/bin/sh
dir=""
src=""
for arg in "$@"; do
  case "$arg" in
    -output-directory=*) dir="${arg#-output-directory=}" ;;
    -*) ;;
    *) src="$arg" ;;
  esac
done
echo "$@" >> "$dir/calls.log"
base=$(basename "$src" .tex)
echo "%PDF" > "$dir/$base.pdf"
echo "Output written on $base.pdf"
`

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func writeSource(t *testing.T) (string, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Jan Kowalski")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	src := filepath.Join(dir, "Jan Kowalski.tex")
	require.NoError(t, os.WriteFile(src, []byte(`\documentclass{article}`), 0o644))
	return src, dir
}

func TestCompiler_Compile(t *testing.T) {
	script := writeScript(t, "pdflatex", fakeCompiler)
	src, dir := writeSource(t)

	c := NewCompiler(CompilerOptions{Command: script, Args: []string{"-interaction=nonstopmode"}}, zaptest.NewLogger(t))
	pdf, err := c.Compile(context.Background(), src, dir)
	require.NoError(t, err)

	want, _ := filepath.Abs(filepath.Join(dir, "Jan Kowalski.pdf"))
	assert.Equal(t, want, pdf)
	assert.FileExists(t, pdf)

	calls, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(calls)), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "-interaction=nonstopmode -output-directory="))
}

func TestCompiler_ConfiguredPasses(t *testing.T) {
	script := writeScript(t, "pdflatex", fakeCompiler)
	src, dir := writeSource(t)

	c := NewCompiler(CompilerOptions{Command: script, Passes: 3}, zaptest.NewLogger(t))
	_, err := c.Compile(context.Background(), src, dir)
	require.NoError(t, err)

	calls, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(calls), "\n"))
}

func TestCompiler_NonZeroExit(t *testing.T) {
	script := writeScript(t, "pdflatex", "#!/bin/sh\necho '! Undefined control sequence.'\nexit 1\n")
	src, dir := writeSource(t)

	c := NewCompiler(CompilerOptions{Command: script}, zaptest.NewLogger(t))
	_, err := c.Compile(context.Background(), src, dir)

	var compErr *CompilationError
	require.True(t, errors.As(err, &compErr), "got %v", err)
	assert.Equal(t, 1, compErr.Pass)
	assert.Contains(t, compErr.Output, "Undefined control sequence")
	assert.Contains(t, compErr.Error(), "exited with code 1")
}

func TestCompiler_SecondPassFails(t *testing.T) {
	script := writeScript(t, "pdflatex", `#!/bin/sh
for arg in "$@"; do
  case "$arg" in -output-directory=*) dir="${arg#-output-directory=}" ;; esac
done
if [ -f "$dir/first.done" ]; then
  echo "second pass broke"
  exit 2
fi
touch "$dir/first.done"
`)
	src, dir := writeSource(t)

	_, err := NewCompiler(CompilerOptions{Command: script}, zaptest.NewLogger(t)).Compile(context.Background(), src, dir)

	var compErr *CompilationError
	require.True(t, errors.As(err, &compErr), "got %v", err)
	assert.Equal(t, 2, compErr.Pass)
	assert.Contains(t, compErr.Output, "second pass broke")
}

func TestCompiler_NoOutputFile(t *testing.T) {
	script := writeScript(t, "pdflatex", "#!/bin/sh\nexit 0\n")
	src, dir := writeSource(t)

	_, err := NewCompiler(CompilerOptions{Command: script}, zaptest.NewLogger(t)).Compile(context.Background(), src, dir)

	var compErr *CompilationError
	require.True(t, errors.As(err, &compErr), "got %v", err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompiler_MissingExecutable(t *testing.T) {
	src, dir := writeSource(t)

	c := NewCompiler(CompilerOptions{Command: filepath.Join(t.TempDir(), "no-such-compiler")}, zaptest.NewLogger(t))
	_, err := c.Compile(context.Background(), src, dir)

	var compErr *CompilationError
	assert.True(t, errors.As(err, &compErr), "got %v", err)
}

func TestCompiler_Timeout(t *testing.T) {
	script := writeScript(t, "pdflatex", "#!/bin/sh\nexec sleep 5\n")
	src, dir := writeSource(t)

	c := NewCompiler(CompilerOptions{Command: script, Timeout: 100 * time.Millisecond}, zaptest.NewLogger(t))
	_, err := c.Compile(context.Background(), src, dir)

	var compErr *CompilationError
	require.True(t, errors.As(err, &compErr), "got %v", err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPrinter_Args(t *testing.T) {
	p := NewPrinter(PrinterOptions{Options: DefaultPrintOptions}, zaptest.NewLogger(t))

	tests := []struct {
		goos string
		want []string
	}{
		{"linux", []string{"-o", "media=a4", "-o", "fit-to-page", "-o", "orientation-requested=4", "a.pdf"}},
		{"darwin", []string{"-o", "media=a4", "-o", "fit-to-page", "-o", "orientation-requested=4", "a.pdf"}},
		{"freebsd", []string{"-o", "media=a4", "-o", "fit-to-page", "-o", "orientation-requested=4", "a.pdf"}},
		{"windows", []string{"a.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p.goos = tt.goos
			assert.Equal(t, tt.want, p.Args("a.pdf"))
		})
	}
}

func TestPrinter_Print(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lp.log")
	script := writeScript(t, "lp", "#!/bin/sh\necho \"$@\" > '"+logFile+"'\necho 'request id is office-42 (1 file(s))'\n")

	p := NewPrinter(PrinterOptions{Command: script, Options: DefaultPrintOptions}, zaptest.NewLogger(t))
	p.goos = "linux"
	require.NoError(t, p.Print(context.Background(), "/tmp/Jan Kowalski.pdf"))

	got, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, "-o media=a4 -o fit-to-page -o orientation-requested=4 /tmp/Jan Kowalski.pdf\n", string(got))
}

func TestPrinter_Failure(t *testing.T) {
	script := writeScript(t, "lp", "#!/bin/sh\necho 'lp: The printer or class does not exist.' >&2\nexit 1\n")

	p := NewPrinter(PrinterOptions{Command: script}, zaptest.NewLogger(t))
	err := p.Print(context.Background(), "a.pdf")

	var printErr *PrintError
	require.True(t, errors.As(err, &printErr), "got %v", err)
	assert.Equal(t, "a.pdf", printErr.File)
	assert.Contains(t, printErr.Output, "does not exist")
}
