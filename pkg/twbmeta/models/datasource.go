// Package models defines the metadata records extracted from workbook documents.
package models

// NotAvailable is the value recorded for any attribute absent from the document.
const NotAvailable = "N/A"

// Datasource represents a datasource definition and its connection details.
type Datasource struct {
	// Name is the datasource caption, falling back to its internal name.
	Name string `json:"name" yaml:"name"`
	// ConnectionClass is the connector class (e.g., postgres, excel-direct).
	ConnectionClass string `json:"connection_class" yaml:"connection_class"`
	// DatabaseName is the database (or file) the connection points at.
	DatabaseName string `json:"database_name" yaml:"database_name"`
	// Server is the server host.
	Server string `json:"server" yaml:"server"`
	// Username is the login used by the connection.
	Username string `json:"username" yaml:"username"`
}
