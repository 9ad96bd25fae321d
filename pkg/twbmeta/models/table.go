package models

// Collection names, used as report sheet names.
const (
	SheetDatasources      = "Datasources"
	SheetWorksheets       = "Worksheets"
	SheetDashboards       = "Dashboards"
	SheetCalculatedFields = "Calculated_Fields"
	SheetParameters       = "Parameters"
)

// Column headers per collection, in report column order.
var (
	DatasourceColumns      = []string{"Datasource Name", "Connection Class", "Database Name", "Server", "Username"}
	WorksheetColumns       = []string{"Worksheet Name"}
	DashboardColumns       = []string{"Dashboard Name", "Contained Worksheet"}
	CalculatedFieldColumns = []string{"Field Name", "Formula", "Datasource"}
	ParameterColumns       = []string{"Parameter Name", "Internal Name", "Data Type", "Current Value"}
)

// Table is a flat tabular view of one record collection.
type Table struct {
	// Name is the collection (sheet) name.
	Name string
	// Columns holds the header labels.
	Columns []string
	// Rows holds one string slice per record, aligned with Columns.
	Rows [][]string
}

// Tables returns the five collections as tables in report order.
// Empty collections are included with no rows; callers decide whether to skip them.
func (m *Metadata) Tables() []Table {
	tables := []Table{
		{Name: SheetDatasources, Columns: DatasourceColumns},
		{Name: SheetWorksheets, Columns: WorksheetColumns},
		{Name: SheetDashboards, Columns: DashboardColumns},
		{Name: SheetCalculatedFields, Columns: CalculatedFieldColumns},
		{Name: SheetParameters, Columns: ParameterColumns},
	}
	for _, d := range m.Datasources {
		tables[0].Rows = append(tables[0].Rows, []string{d.Name, d.ConnectionClass, d.DatabaseName, d.Server, d.Username})
	}
	for _, w := range m.Worksheets {
		tables[1].Rows = append(tables[1].Rows, []string{w.Name})
	}
	for _, d := range m.Dashboards {
		tables[2].Rows = append(tables[2].Rows, []string{d.DashboardName, d.ContainedWorksheet})
	}
	for _, c := range m.CalculatedFields {
		tables[3].Rows = append(tables[3].Rows, []string{c.FieldName, c.Formula, c.Datasource})
	}
	for _, p := range m.Parameters {
		tables[4].Rows = append(tables[4].Rows, []string{p.ParameterName, p.InternalName, p.DataType, p.CurrentValue})
	}
	return tables
}
