package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender  Category = "render"
	CategoryContent Category = "content"
	CategoryPublish Category = "publish"
	CategorySession Category = "session"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Location represents a position in a configuration or content file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ColloquyError is a structured error with file location, suggestions, and
// documentation.
type ColloquyError struct {
	// Code is a unique error identifier (e.g., "E120").
	Code string

	// Category is the error type (render, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position where the error occurred.
	Location *Location

	// Context contains surrounding file lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is input showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ColloquyError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ColloquyError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location to the error.
func (e *ColloquyError) WithLocation(file string, line, column int) *ColloquyError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithLocationFromOffset adds a file location computed from a byte offset
// into data. JSON decoders report syntax errors by offset; this turns the
// offset into a line and column for display.
func (e *ColloquyError) WithLocationFromOffset(file string, data []byte, offset int64) *ColloquyError {
	if offset < 0 || offset > int64(len(data)) {
		return e
	}

	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return e.WithLocation(file, line, col)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ColloquyError) WithSuggestion(s string) *ColloquyError {
	e.Suggestion = s
	return e
}

// WithExample adds an input example to the error.
func (e *ColloquyError) WithExample(ex string) *ColloquyError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ColloquyError) WithDetail(d string) *ColloquyError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *ColloquyError) WithContext(lines []string) *ColloquyError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *ColloquyError) Wrap(err error) *ColloquyError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a ColloquyError from a registered error code.
func New(code string) *ColloquyError {
	template, ok := registry[code]
	if !ok {
		return &ColloquyError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ColloquyError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new ColloquyError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ColloquyError {
	return &ColloquyError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ColloquyError.
func FromError(err error, code string) *ColloquyError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*ColloquyError); ok {
		return ce
	}
	return New(code).Wrap(err)
}
