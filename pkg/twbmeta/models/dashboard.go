package models

// Dashboard pairs a dashboard with one worksheet it displays.
// A dashboard showing N worksheets yields N records.
type Dashboard struct {
	// DashboardName is the dashboard window name.
	DashboardName string `json:"dashboard_name" yaml:"dashboard_name"`
	// ContainedWorksheet is the name of a worksheet placed in one of the dashboard zones.
	ContainedWorksheet string `json:"contained_worksheet" yaml:"contained_worksheet"`
}
