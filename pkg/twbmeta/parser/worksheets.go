package parser

import (
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

var worksheetPath = xmltree.MustCompile(".//worksheets/worksheet")

// ExtractWorksheets returns one record per worksheet under a worksheets container.
// The name is recorded as written, even when empty.
func ExtractWorksheets(root *xmltree.Element) ([]models.Worksheet, error) {
	var result []models.Worksheet
	for _, ws := range worksheetPath.FindAll(root) {
		name, err := presentAttr(ws, "name")
		if err != nil {
			return nil, err
		}
		result = append(result, models.Worksheet{Name: name})
	}
	return result, nil
}
