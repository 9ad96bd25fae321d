package models

// UnknownDatasource is recorded when a calculated field's owning datasource has no name.
const UnknownDatasource = "Unknown Datasource"

// CalculatedField represents a column defined by a formula.
type CalculatedField struct {
	// FieldName is the column caption, falling back to its internal name.
	FieldName string `json:"field_name" yaml:"field_name"`
	// Formula is the calculation formula with surrounding whitespace removed.
	Formula string `json:"formula" yaml:"formula"`
	// Datasource is the display name of the datasource owning the column.
	Datasource string `json:"datasource" yaml:"datasource"`
}
