package parser

import (
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

var datasourcePath = xmltree.MustCompile(".//datasource")

// ExtractDatasources returns one record per datasource element at any depth.
func ExtractDatasources(root *xmltree.Element) []models.Datasource {
	var result []models.Datasource
	for _, ds := range datasourcePath.FindAll(root) {
		record := models.Datasource{
			Name:            AttrOr(ds, models.NotAvailable, "caption", "name"),
			ConnectionClass: models.NotAvailable,
			DatabaseName:    models.NotAvailable,
			Server:          models.NotAvailable,
			Username:        models.NotAvailable,
		}
		if conn := ds.Child("connection"); conn != nil {
			record.ConnectionClass = AttrOr(conn, models.NotAvailable, "class")
			record.DatabaseName = AttrOr(conn, models.NotAvailable, "dbname")
			record.Server = AttrOr(conn, models.NotAvailable, "server")
			record.Username = AttrOr(conn, models.NotAvailable, "username")
		}
		result = append(result, record)
	}
	return result
}
