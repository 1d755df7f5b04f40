package output

import "fmt"

// CompilationError is returned when the document compiler fails or
// produces no output file
type CompilationError struct {
	Source string
	Pass   int
	Output string // Combined stdout and stderr of the failing pass
	Err    error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation of %s failed on pass %d: %v", e.Source, e.Pass, e.Err)
	}
	return fmt.Sprintf("compilation of %s failed on pass %d", e.Source, e.Pass)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// PrintError is returned when the print spooler exits non-zero
type PrintError struct {
	File   string
	Output string
	Err    error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("printing %s failed: %v", e.File, e.Err)
}

func (e *PrintError) Unwrap() error {
	return e.Err
}
