// Package xmltree provides a small navigable XML element tree for workbook documents.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrNoRoot indicates the document contains no root element.
var ErrNoRoot = errors.New("no root element")

// Element is a single XML element with its attributes and children.
type Element struct {
	// Tag is the local element name.
	Tag string
	// Attrs maps attribute name to value. Prefixed attributes keep their prefix ("user:ui-builder").
	Attrs map[string]string
	// Children holds child elements in document order.
	Children []*Element
	// Line is the 1-based source line where the start tag ends.
	Line int

	parent *Element
	index  int // document order
}

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Ancestor returns the element n levels above e (1 is the parent).
// It returns nil when the ancestor chain is shorter than n.
func (e *Element) Ancestor(n int) *Element {
	cur := e
	for i := 0; i < n && cur != nil; i++ {
		cur = cur.parent
	}
	return cur
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Child returns the first direct child with the given tag, or nil.
func (e *Element) Child(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// String renders a short description of the element, e.g. <column name="[Calc]"> (line 12).
func (e *Element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, key := range []string{"name", "caption", "class"} {
		if v, ok := e.Attrs[key]; ok {
			fmt.Fprintf(&b, " %s=%q", key, v)
		}
	}
	b.WriteByte('>')
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

// walk visits e and all of its descendants in document order.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

// SyntaxError reports a document that could not be parsed.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	msg := e.Err.Error()
	var se *xml.SyntaxError
	if errors.As(e.Err, &se) {
		msg = se.Msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("xml syntax error at line %d, column %d: %s", e.Line, e.Column, msg)
	}
	return "xml syntax error: " + msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
