package models

// Parameter represents a workbook parameter.
type Parameter struct {
	// ParameterName is the display caption, falling back to the internal name.
	ParameterName string `json:"parameter_name" yaml:"parameter_name"`
	// InternalName is the parameter name attribute.
	InternalName string `json:"internal_name" yaml:"internal_name"`
	// DataType is the declared datatype (e.g., string, integer, date).
	DataType string `json:"data_type" yaml:"data_type"`
	// CurrentValue is the parameter's current value.
	CurrentValue string `json:"current_value" yaml:"current_value"`
}
