package parser

import (
	"strings"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

// OwnerDistance is how many levels above a calculated column its datasource sits
// (column -> columns container -> datasource). No further search is made.
const OwnerDistance = 2

var columnPath = xmltree.MustCompile(".//column")

// ExtractCalculatedFields returns one record per column that has a direct calculation child.
func ExtractCalculatedFields(root *xmltree.Element) ([]models.CalculatedField, error) {
	var result []models.CalculatedField
	for _, col := range columnPath.FindAll(root) {
		calc := col.Child("calculation")
		if calc == nil {
			continue
		}

		name, err := requireAttr(col, "caption", "name")
		if err != nil {
			return nil, err
		}

		owner := col.Ancestor(OwnerDistance)
		if owner == nil {
			return nil, &ElementError{Element: col, Reason: "no owning datasource two levels up"}
		}

		formula := models.NotAvailable
		if v, ok := calc.Attr("formula"); ok {
			formula = strings.TrimSpace(v)
		}

		result = append(result, models.CalculatedField{
			FieldName:  name,
			Formula:    formula,
			Datasource: AttrOr(owner, models.UnknownDatasource, "caption", "name"),
		})
	}
	return result, nil
}
