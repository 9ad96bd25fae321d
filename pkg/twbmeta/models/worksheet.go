package models

// Worksheet represents a worksheet defined in the workbook.
type Worksheet struct {
	// Name is the worksheet name attribute as written in the document.
	Name string `json:"name" yaml:"name"`
}
