package twbmeta

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/parser"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

// Extract reads the workbook document at path and extracts its metadata.
func Extract(path string, opts Options) (*models.Metadata, error) {
	root, err := Load(path, opts)
	if err != nil {
		return nil, err
	}

	md, err := ExtractTree(root)
	if err != nil {
		return nil, err
	}
	md.BookName = filepath.Base(path)
	return md, nil
}

// ExtractReader is like Extract but reads the document from r.
func ExtractReader(r io.Reader, opts Options) (*models.Metadata, error) {
	root, err := xmltree.Parse(r, opts.parseOptions()...)
	if err != nil {
		return nil, newParseError("", err)
	}
	return ExtractTree(root)
}

// Load parses the document at path into an element tree.
func Load(path string, opts Options) (*xmltree.Element, error) {
	root, err := xmltree.ParseFile(path, opts.parseOptions()...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		var se *xmltree.SyntaxError
		if errors.As(err, &se) {
			return nil, newParseError(path, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return root, nil
}

// ExtractTree builds the five record collections from a parsed document.
// Worksheets are collected before dashboards so zones can be matched against them.
func ExtractTree(root *xmltree.Element) (*models.Metadata, error) {
	md := models.NewMetadata("")

	md.Datasources = append(md.Datasources, parser.ExtractDatasources(root)...)

	calcs, err := parser.ExtractCalculatedFields(root)
	if err != nil {
		return nil, NewExtractionError(models.SheetCalculatedFields, err)
	}
	md.CalculatedFields = append(md.CalculatedFields, calcs...)

	params, err := parser.ExtractParameters(root)
	if err != nil {
		return nil, NewExtractionError(models.SheetParameters, err)
	}
	md.Parameters = append(md.Parameters, params...)

	worksheets, err := parser.ExtractWorksheets(root)
	if err != nil {
		return nil, NewExtractionError(models.SheetWorksheets, err)
	}
	md.Worksheets = append(md.Worksheets, worksheets...)

	dashboards, err := parser.ExtractDashboards(root, md.Worksheets)
	if err != nil {
		return nil, NewExtractionError(models.SheetDashboards, err)
	}
	md.Dashboards = append(md.Dashboards, dashboards...)

	return md, nil
}
