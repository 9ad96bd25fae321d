package parser

import (
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/xmltree"
)

var (
	dashboardPath = xmltree.MustCompile(".//window[@class='dashboard']")
	zonePath      = xmltree.MustCompile(".//zone[@name]")
)

// ExtractDashboards pairs every dashboard window with the worksheets its zones show.
// Only zones naming a worksheet in known produce a record; layout containers,
// text objects and other zones are skipped.
func ExtractDashboards(root *xmltree.Element, known []models.Worksheet) ([]models.Dashboard, error) {
	names := make(map[string]bool, len(known))
	for _, ws := range known {
		names[ws.Name] = true
	}

	var result []models.Dashboard
	for _, window := range dashboardPath.FindAll(root) {
		dashboard, err := requireAttr(window, "name")
		if err != nil {
			return nil, err
		}
		for _, zone := range zonePath.FindAll(window) {
			sheet, _ := zone.Attr("name")
			if sheet == "" || !names[sheet] {
				continue
			}
			result = append(result, models.Dashboard{
				DashboardName:      dashboard,
				ContainedWorksheet: sheet,
			})
		}
	}
	return result, nil
}
