package xmltree

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type axis int

const (
	axisChild axis = iota
	axisDescendant
	axisParent
)

type step struct {
	axis     axis
	tag      string // "*" matches any tag
	attr     string // predicate attribute, empty when there is no predicate
	hasValue bool
	value    string
}

func (s step) matches(e *Element) bool {
	if s.tag != "*" && s.tag != e.Tag {
		return false
	}
	if s.attr == "" {
		return true
	}
	v, ok := e.Attrs[s.attr]
	if !ok {
		return false
	}
	return !s.hasValue || v == s.value
}

// Path is a compiled element path query.
//
// The supported syntax is a subset of ElementPath:
//
//	tag        child elements named tag
//	*          any child element
//	.          the context element
//	..         the parent element
//	a/b        b children of a children
//	.//b, a//b b at any depth below the context
//	[@attr]    elements carrying attr
//	[@attr='v'] elements whose attr equals v (double quotes work too)
type Path struct {
	expr  string
	steps []step
}

// Compile parses a path expression.
func Compile(expr string) (*Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("xmltree: empty path")
	}
	if strings.HasPrefix(expr, "/") {
		return nil, fmt.Errorf("xmltree: absolute path %q not supported", expr)
	}

	segments := strings.Split(expr, "/")
	p := &Path{expr: expr}
	descendant := false
	for i, seg := range segments {
		switch seg {
		case "":
			if i == len(segments)-1 || descendant {
				return nil, fmt.Errorf("xmltree: malformed path %q", expr)
			}
			descendant = true
			continue
		case ".":
			if descendant {
				return nil, fmt.Errorf("xmltree: malformed path %q", expr)
			}
			continue
		case "..":
			if descendant {
				return nil, fmt.Errorf("xmltree: malformed path %q", expr)
			}
			p.steps = append(p.steps, step{axis: axisParent})
			continue
		}

		s, err := parseStep(seg)
		if err != nil {
			return nil, fmt.Errorf("xmltree: path %q: %w", expr, err)
		}
		if descendant {
			s.axis = axisDescendant
		}
		descendant = false
		p.steps = append(p.steps, s)
	}
	return p, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) *Path {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Path) String() string {
	return p.expr
}

func parseStep(seg string) (step, error) {
	tag, pred, hasPred := strings.Cut(seg, "[")
	if tag == "" {
		return step{}, fmt.Errorf("missing tag in %q", seg)
	}
	s := step{axis: axisChild, tag: tag}
	if !hasPred {
		return s, nil
	}

	if !strings.HasPrefix(pred, "@") || !strings.HasSuffix(pred, "]") {
		return step{}, fmt.Errorf("unsupported predicate in %q", seg)
	}
	pred = strings.TrimSuffix(strings.TrimPrefix(pred, "@"), "]")

	name, value, hasValue := strings.Cut(pred, "=")
	if name == "" {
		return step{}, fmt.Errorf("missing attribute name in %q", seg)
	}
	s.attr = name
	if hasValue {
		if len(value) < 2 || (value[0] != '\'' && value[0] != '"') || value[len(value)-1] != value[0] {
			return step{}, fmt.Errorf("attribute value must be quoted in %q", seg)
		}
		s.hasValue = true
		s.value = value[1 : len(value)-1]
	}
	return s, nil
}

// FindAll returns every element matched by the path, starting at e, in document order.
func (p *Path) FindAll(e *Element) []*Element {
	current := []*Element{e}
	for _, s := range p.steps {
		seen := make(map[*Element]bool)
		var next []*Element
		add := func(el *Element) {
			if !seen[el] {
				seen[el] = true
				next = append(next, el)
			}
		}

		for _, el := range current {
			switch s.axis {
			case axisParent:
				if el.parent != nil {
					add(el.parent)
				}
			case axisChild:
				for _, c := range el.Children {
					if s.matches(c) {
						add(c)
					}
				}
			case axisDescendant:
				for _, c := range el.Children {
					c.walk(func(d *Element) {
						if s.matches(d) {
							add(d)
						}
					})
				}
			}
		}

		slices.SortFunc(next, func(a, b *Element) int {
			return cmp.Compare(a.index, b.index)
		})
		current = next
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

// Find returns the first element matched by the path, or nil.
func (p *Path) Find(e *Element) *Element {
	if found := p.FindAll(e); len(found) > 0 {
		return found[0]
	}
	return nil
}

// FindAll compiles expr and returns every matching element below e.
// It panics on a malformed expression; use Compile for untrusted input.
func (e *Element) FindAll(expr string) []*Element {
	return MustCompile(expr).FindAll(e)
}

// Find compiles expr and returns the first matching element below e, or nil.
func (e *Element) Find(expr string) *Element {
	return MustCompile(expr).Find(e)
}
