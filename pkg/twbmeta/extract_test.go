package twbmeta

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
)

func TestExtract(t *testing.T) {
	md, err := Extract(filepath.Join("testdata", "superstore.twb"), DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if md.BookName != "superstore.twb" {
		t.Errorf("Expected book name 'superstore.twb', got %q", md.BookName)
	}

	// Two top-level datasources plus the reference inside the worksheet view.
	if len(md.Datasources) != 3 {
		t.Fatalf("Expected 3 datasources, got %d: %+v", len(md.Datasources), md.Datasources)
	}
	expectedDS := models.Datasource{
		Name:            "Sample - Superstore",
		ConnectionClass: "postgres",
		DatabaseName:    "superstore",
		Server:          "db.example.com",
		Username:        "analyst",
	}
	if md.Datasources[0] != expectedDS {
		t.Errorf("Datasource 0 = %+v, expected %+v", md.Datasources[0], expectedDS)
	}
	if md.Datasources[1].Name != "Targets" || md.Datasources[1].Server != "N/A" {
		t.Errorf("Unexpected datasource 1: %+v", md.Datasources[1])
	}

	expectedCalcs := []models.CalculatedField{
		{FieldName: "Profit Ratio", Formula: "SUM([Profit])/SUM([Sales])", Datasource: "Sample - Superstore"},
		{FieldName: "Order Year", Formula: "YEAR([Order Date])", Datasource: "Sample - Superstore"},
		{FieldName: "[Gap]", Formula: "N/A", Datasource: "Targets"},
	}
	if len(md.CalculatedFields) != len(expectedCalcs) {
		t.Fatalf("Expected %d calculated fields, got %+v", len(expectedCalcs), md.CalculatedFields)
	}
	for i := range expectedCalcs {
		if md.CalculatedFields[i] != expectedCalcs[i] {
			t.Errorf("Calculated field %d = %+v, expected %+v", i, md.CalculatedFields[i], expectedCalcs[i])
		}
	}

	if len(md.Parameters) != 2 {
		t.Fatalf("Expected 2 parameters, got %+v", md.Parameters)
	}
	if md.Parameters[1].ParameterName != "[Parameter 2]" || md.Parameters[1].CurrentValue != `"West"` {
		t.Errorf("Unexpected parameter 1: %+v", md.Parameters[1])
	}

	if len(md.Worksheets) != 2 || md.Worksheets[0].Name != "Sales by Region" {
		t.Errorf("Unexpected worksheets: %+v", md.Worksheets)
	}

	expectedDash := []models.Dashboard{
		{DashboardName: "Overview", ContainedWorksheet: "Sales by Region"},
		{DashboardName: "Overview", ContainedWorksheet: "Profit Trend"},
	}
	if len(md.Dashboards) != len(expectedDash) {
		t.Fatalf("Expected %d dashboard records, got %+v", len(expectedDash), md.Dashboards)
	}
	for i := range expectedDash {
		if md.Dashboards[i] != expectedDash[i] {
			t.Errorf("Dashboard %d = %+v, expected %+v", i, md.Dashboards[i], expectedDash[i])
		}
	}
}

func TestExtractReaderExamples(t *testing.T) {
	t.Run("single datasource", func(t *testing.T) {
		doc := `<workbook><datasources><datasource caption='Sales'><connection class='postgres' dbname='salesdb' server='db.local' username='svc'/></datasource></datasources></workbook>`
		md, err := ExtractReader(strings.NewReader(doc), DefaultOptions())
		if err != nil {
			t.Fatalf("ExtractReader failed: %v", err)
		}
		tables := md.Tables()
		if got := tables[0].Rows; len(got) != 1 || strings.Join(got[0], ",") != "Sales,postgres,salesdb,db.local,svc" {
			t.Errorf("Unexpected datasource rows %v", got)
		}
		for _, tbl := range tables[1:] {
			if len(tbl.Rows) != 0 {
				t.Errorf("Expected %s to be empty, got %v", tbl.Name, tbl.Rows)
			}
		}
	})

	t.Run("dashboard cross reference", func(t *testing.T) {
		doc := `<workbook>
  <worksheets><worksheet name='Revenue'/><worksheet name='Costs'/></worksheets>
  <windows>
    <window class='dashboard' name='Exec Summary'>
      <zones><zone name='Revenue'/><zone name='Notes'/></zones>
    </window>
  </windows>
</workbook>`
		md, err := ExtractReader(strings.NewReader(doc), DefaultOptions())
		if err != nil {
			t.Fatalf("ExtractReader failed: %v", err)
		}
		if len(md.Dashboards) != 1 || md.Dashboards[0] != (models.Dashboard{DashboardName: "Exec Summary", ContainedWorksheet: "Revenue"}) {
			t.Errorf("Unexpected dashboards %+v", md.Dashboards)
		}
	})
}

func TestExtractParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.twb")
	if err := os.WriteFile(path, []byte("<workbook>\n  <datasources>\n    <datasource name='x'"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	md, err := Extract(path, DefaultOptions())
	if md != nil {
		t.Errorf("Expected no result on parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *ParseError, got %T (%v)", err, err)
	}
	if pe.Path != path || pe.Line != 3 {
		t.Errorf("Expected location %s:3, got %s:%d", path, pe.Path, pe.Line)
	}
}

func TestExtractReaderRejectsStrayText(t *testing.T) {
	const body = "<workbook><worksheets><worksheet name='A'/></worksheets></workbook>"
	for _, doc := range []string{body + "trailing junk", "leading junk" + body} {
		md, err := ExtractReader(strings.NewReader(doc), DefaultOptions())
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ExtractReader(%q): expected *ParseError, got %v", doc, err)
		}
		if md != nil {
			t.Errorf("ExtractReader(%q): expected no metadata", doc)
		}
	}

	md, err := ExtractReader(strings.NewReader("\ufeff"+body), DefaultOptions())
	if err != nil {
		t.Fatalf("BOM-prefixed document failed: %v", err)
	}
	if len(md.Worksheets) != 1 {
		t.Errorf("Expected 1 worksheet, got %+v", md.Worksheets)
	}
}

func TestExtractFileNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.twb"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestExtractionError(t *testing.T) {
	doc := "<workbook>\n<column name='[Orphan]'><calculation formula='1'/></column>\n</workbook>"
	_, err := ExtractReader(strings.NewReader(doc), DefaultOptions())

	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("Expected *ExtractionError, got %T (%v)", err, err)
	}
	if ee.Category != "Calculated_Fields" {
		t.Errorf("Expected category Calculated_Fields, got %q", ee.Category)
	}
	if ee.Line != 2 || !strings.Contains(ee.Element, "[Orphan]") {
		t.Errorf("Unexpected element details %q (line %d)", ee.Element, ee.Line)
	}
}

func TestExtractDepthLimit(t *testing.T) {
	doc := "<a><b><c/></b></a>"
	_, err := ExtractReader(strings.NewReader(doc), Options{MaxDepth: 2})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("Expected *ParseError for depth limit, got %v", err)
	}
}
