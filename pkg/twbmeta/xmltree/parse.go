package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte("\ufeff")

const (
	// DefaultMaxDepth is the default maximum element nesting depth.
	DefaultMaxDepth = 256
	// DefaultMaxAttrs is the default maximum number of attributes on a single element.
	DefaultMaxAttrs = 256
)

// Option configures parsing.
type Option func(*parseConfig)

type parseConfig struct {
	maxDepth int
	maxAttrs int
}

// WithMaxDepth sets the maximum element nesting depth. Values <= 0 keep the default.
func WithMaxDepth(n int) Option {
	return func(c *parseConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithMaxAttrs sets the maximum attribute count per element. Values <= 0 keep the default.
func WithMaxAttrs(n int) Option {
	return func(c *parseConfig) {
		if n > 0 {
			c.maxAttrs = n
		}
	}
}

// ParseFile parses the XML file at path.
func ParseFile(path string, opts ...Option) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Parse reads a complete XML document from r and returns its root element.
// Any syntax problem is returned as a *SyntaxError. Read errors from r are
// returned as is.
func Parse(r io.Reader, opts ...Option) (*Element, error) {
	cfg := parseConfig{
		maxDepth: DefaultMaxDepth,
		maxAttrs: DefaultMaxAttrs,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		root       *Element
		stack      []*Element
		order      int
		charsetErr error
	)

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		cr, err := charset.NewReaderLabel(label, input)
		charsetErr = err
		return cr, err
	}

	fail := func(err error) (*Element, error) {
		line, col := decoder.InputPos()
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			line = se.Line
		}
		return nil, &SyntaxError{Line: line, Column: col, Err: err}
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// an unknown encoding declaration is a document problem, not an I/O one
			var se *xml.SyntaxError
			if !errors.As(err, &se) && charsetErr == nil {
				return nil, err
			}
			return fail(err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return fail(errors.New("content after root element"))
			}
			if len(stack) >= cfg.maxDepth {
				return fail(fmt.Errorf("element <%s> exceeds max depth %d", t.Name.Local, cfg.maxDepth))
			}
			if len(t.Attr) > cfg.maxAttrs {
				return fail(fmt.Errorf("element <%s> has %d attributes, max %d", t.Name.Local, len(t.Attr), cfg.maxAttrs))
			}

			line, _ := decoder.InputPos()
			el := &Element{
				Tag:   t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
				Line:  line,
				index: order,
			}
			order++
			for _, a := range t.Attr {
				el.Attrs[attrKey(a.Name)] = a.Value
			}

			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				el.parent = parent
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.CharData:
			if len(stack) > 0 {
				continue
			}
			text := []byte(t)
			if root == nil {
				text = bytes.TrimPrefix(text, utf8BOM)
			}
			if len(bytes.TrimSpace(text)) == 0 {
				continue
			}
			if root == nil {
				return fail(errors.New("text before root element"))
			}
			return fail(errors.New("content after root element"))

		case xml.EndElement:
			// the decoder already rejects mismatched end tags
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return fail(ErrNoRoot)
	}
	return root, nil
}

// attrKey flattens an attribute name. Undeclared prefixes come back from the
// decoder as the Space value, declared ones as their namespace URL.
func attrKey(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
