package models

// Metadata holds the five record collections extracted from one workbook document.
// Every collection keeps document order.
type Metadata struct {
	// BookName is the source file name (no path), empty when extracted from a stream.
	BookName string `json:"book_name,omitempty" yaml:"book_name,omitempty"`
	// Datasources lists every datasource found anywhere in the document.
	Datasources []Datasource `json:"datasources" yaml:"datasources"`
	// Worksheets lists the worksheets under the worksheets container.
	Worksheets []Worksheet `json:"worksheets" yaml:"worksheets"`
	// Dashboards lists dashboard/worksheet pairings.
	Dashboards []Dashboard `json:"dashboards" yaml:"dashboards"`
	// CalculatedFields lists columns carrying a calculation.
	CalculatedFields []CalculatedField `json:"calculated_fields" yaml:"calculated_fields"`
	// Parameters lists the parameters under the parameters container.
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
}

// NewMetadata returns a Metadata with all collections empty but non-nil,
// so serialized output always carries every key.
func NewMetadata(bookName string) *Metadata {
	return &Metadata{
		BookName:         bookName,
		Datasources:      []Datasource{},
		Worksheets:       []Worksheet{},
		Dashboards:       []Dashboard{},
		CalculatedFields: []CalculatedField{},
		Parameters:       []Parameter{},
	}
}

// Empty reports whether every collection is empty.
func (m *Metadata) Empty() bool {
	for _, t := range m.Tables() {
		if len(t.Rows) > 0 {
			return false
		}
	}
	return true
}
