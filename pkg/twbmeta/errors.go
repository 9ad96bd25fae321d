package twbmeta

import (
	"errors"
	"fmt"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/parser"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ParseError indicates the input is not well-formed XML.
type ParseError struct {
	// Path is the input file, empty for stream input.
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(path string, err error) error {
	var se *xmltree.SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	return &ParseError{Path: path, Line: se.Line, Column: se.Column, Err: se}
}

// ExtractionError represents a document that parsed but violates a structural
// assumption of the extractor.
type ExtractionError struct {
	// Category is the collection being built (e.g., "Calculated_Fields").
	Category string
	// Element describes the offending element.
	Element string
	// Line is the source line of the offending element, 0 if unknown.
	Line int
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in %s at %s: %v", e.Category, e.Element, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError, taking element details from a
// *parser.ElementError when err carries one.
func NewExtractionError(category string, err error) *ExtractionError {
	ee := &ExtractionError{Category: category, Err: err}
	var pe *parser.ElementError
	if errors.As(err, &pe) {
		ee.Element = pe.Element.String()
		ee.Line = pe.Element.Line
		ee.Err = errors.New(pe.Reason)
	}
	return ee
}
