package parser

import (
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

var parameterPath = xmltree.MustCompile(".//parameters/parameter")

// ExtractParameters returns one record per parameter directly under a parameters container.
func ExtractParameters(root *xmltree.Element) ([]models.Parameter, error) {
	var result []models.Parameter
	for _, p := range parameterPath.FindAll(root) {
		internal, err := requireAttr(p, "name")
		if err != nil {
			return nil, err
		}
		result = append(result, models.Parameter{
			ParameterName: AttrOr(p, internal, "caption"),
			InternalName:  internal,
			DataType:      AttrOr(p, models.NotAvailable, "datatype"),
			CurrentValue:  AttrOr(p, models.NotAvailable, "value"),
		})
	}
	return result, nil
}
