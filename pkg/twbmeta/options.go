// Package twbmeta extracts datasource, worksheet, dashboard, calculated field and
// parameter metadata from workbook (.twb) documents.
package twbmeta

import "github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"

// Options configures document loading.
type Options struct {
	// MaxDepth limits element nesting. Zero uses xmltree.DefaultMaxDepth.
	MaxDepth int
	// MaxAttrs limits attributes per element. Zero uses xmltree.DefaultMaxAttrs.
	MaxAttrs int
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		MaxDepth: xmltree.DefaultMaxDepth,
		MaxAttrs: xmltree.DefaultMaxAttrs,
	}
}

func (o Options) parseOptions() []xmltree.Option {
	return []xmltree.Option{
		xmltree.WithMaxDepth(o.MaxDepth),
		xmltree.WithMaxAttrs(o.MaxAttrs),
	}
}
