// Package parser extracts metadata records from a parsed workbook document tree.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

// ElementError reports an element that does not have the shape the extractor relies on.
type ElementError struct {
	// Element is the offending element.
	Element *xmltree.Element
	// Reason describes the violated expectation.
	Reason string
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Element, e.Reason)
}

// AttrOr returns the first non-empty attribute among names, or fallback when none is set.
func AttrOr(e *xmltree.Element, fallback string, names ...string) string {
	for _, name := range names {
		if v, ok := e.Attr(name); ok && v != "" {
			return v
		}
	}
	return fallback
}

// requireAttr is like AttrOr but fails when none of the attributes is set.
func requireAttr(e *xmltree.Element, names ...string) (string, error) {
	if v := AttrOr(e, "", names...); v != "" {
		return v, nil
	}
	return "", missingAttr(e, names)
}

// presentAttr returns the attribute value as is, empty included, and fails only
// when the attribute is absent.
func presentAttr(e *xmltree.Element, name string) (string, error) {
	if v, ok := e.Attr(name); ok {
		return v, nil
	}
	return "", missingAttr(e, []string{name})
}

func missingAttr(e *xmltree.Element, names []string) error {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return &ElementError{
		Element: e,
		Reason:  "missing required attribute " + strings.Join(quoted, " or "),
	}
}
