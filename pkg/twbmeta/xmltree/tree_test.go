package xmltree

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

const sampleDoc = `<?xml version='1.0' encoding='utf-8' ?>
<workbook xmlns:user='http://www.tableausoftware.com/xml/user'>
  <datasources>
    <datasource caption='Sales' name='federated.1'>
      <connection class='postgres' dbname='salesdb' />
      <column name='[Profit Ratio]' user:auto-column='numeric'>
        <calculation class='tableau' formula='SUM([Profit])/SUM([Sales])' />
      </column>
    </datasource>
  </datasources>
  <windows>
    <window class='worksheet' name='Revenue' />
    <window class='dashboard' name='Exec Summary'>
      <zones>
        <zone name='Revenue'>
          <zone name='Nested' />
        </zone>
      </zones>
    </window>
  </windows>
</workbook>`

func mustParse(t *testing.T, doc string) *Element {
	t.Helper()
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return root
}

func TestParse(t *testing.T) {
	root := mustParse(t, sampleDoc)

	if root.Tag != "workbook" {
		t.Errorf("Expected root tag 'workbook', got %q", root.Tag)
	}
	if root.Parent() != nil {
		t.Errorf("Expected root to have no parent")
	}
	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 root children, got %d", len(root.Children))
	}

	ds := root.Children[0].Children[0]
	if v, ok := ds.Attr("caption"); !ok || v != "Sales" {
		t.Errorf("Expected caption 'Sales', got %q (present: %v)", v, ok)
	}
	if ds.Line != 4 {
		t.Errorf("Expected datasource on line 4, got %d", ds.Line)
	}
	if ds.Child("connection") == nil {
		t.Errorf("Expected a connection child")
	}
	if ds.Child("missing") != nil {
		t.Errorf("Expected nil for a missing child")
	}

	col := ds.Child("column")
	if _, ok := col.Attr("http://www.tableausoftware.com/xml/user:auto-column"); !ok {
		t.Errorf("Expected namespaced attribute, got attrs %v", col.Attrs)
	}
}

func TestAncestor(t *testing.T) {
	root := mustParse(t, sampleDoc)
	calc := root.Find(".//calculation")
	if calc == nil {
		t.Fatal("calculation not found")
	}

	tests := []struct {
		n        int
		expected string
	}{
		{0, "calculation"},
		{1, "column"},
		{2, "datasource"},
		{3, "datasources"},
		{4, "workbook"},
	}
	for _, tt := range tests {
		got := calc.Ancestor(tt.n)
		if got == nil || got.Tag != tt.expected {
			t.Errorf("Ancestor(%d) = %v, expected <%s>", tt.n, got, tt.expected)
		}
	}
	if got := calc.Ancestor(5); got != nil {
		t.Errorf("Ancestor(5) = %v, expected nil", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
	}{
		{"truncated tag", "<workbook>\n<datasource name='x'", 2},
		{"unclosed element", "<workbook>\n<datasources>\n</workbook>", 3},
		{"empty document", "", 0},
		{"second root", "<a/><b/>", 1},
		{"text after root", "<workbook>\n</workbook>\ntrailing junk", 3},
		{"text before root", "leading junk<workbook/>", 1},
		{"unknown encoding", "<?xml version='1.0' encoding='no-such-charset'?><workbook/>", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Expected *SyntaxError, got %T (%v)", err, err)
			}
			if tt.line > 0 && se.Line != tt.line {
				t.Errorf("Expected error on line %d, got %d (%v)", tt.line, se.Line, se)
			}
		})
	}
}

func TestParseIgnorableTopLevel(t *testing.T) {
	docs := []string{
		"\ufeff<?xml version='1.0' encoding='utf-8'?>\n<workbook/>",
		"\ufeff<workbook/>",
		"<?xml version='1.0'?>\n\n<!-- c -->\n<workbook/>\n\n",
	}
	for _, doc := range docs {
		root, err := Parse(strings.NewReader(doc))
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", doc, err)
			continue
		}
		if root.Tag != "workbook" {
			t.Errorf("Parse(%q) root = %q", doc, root.Tag)
		}
	}
}

func TestParseReadError(t *testing.T) {
	errRead := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("<workbook><worksheets>"), iotest.ErrReader(errRead))

	_, err := Parse(r)
	if !errors.Is(err, errRead) {
		t.Fatalf("Expected the read error, got %v", err)
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		t.Errorf("Read error should not be reported as a syntax error: %v", err)
	}
}

func TestParseNoRoot(t *testing.T) {
	_, err := Parse(strings.NewReader("<?xml version='1.0'?>\n<!-- nothing -->"))
	if !errors.Is(err, ErrNoRoot) {
		t.Errorf("Expected ErrNoRoot, got %v", err)
	}
}

func TestParseLimits(t *testing.T) {
	deep := strings.Repeat("<a>", 5) + strings.Repeat("</a>", 5)
	if _, err := Parse(strings.NewReader(deep), WithMaxDepth(4)); err == nil {
		t.Errorf("Expected depth limit error")
	}
	if _, err := Parse(strings.NewReader(deep), WithMaxDepth(5)); err != nil {
		t.Errorf("Expected depth 5 to parse, got %v", err)
	}

	wide := `<a x='1' y='2' z='3'/>`
	if _, err := Parse(strings.NewReader(wide), WithMaxAttrs(2)); err == nil {
		t.Errorf("Expected attribute limit error")
	}
}

func TestParseCharset(t *testing.T) {
	// "Caf\xe9" is Latin-1 for Café.
	doc := "<?xml version='1.0' encoding='ISO-8859-1'?><workbook><datasource caption='Caf\xe9'/></workbook>"
	root := mustParse(t, doc)
	ds := root.Child("datasource")
	if got, _ := ds.Attr("caption"); got != "Café" {
		t.Errorf("Expected decoded caption 'Café', got %q", got)
	}
}

func TestElementString(t *testing.T) {
	root := mustParse(t, sampleDoc)
	ds := root.Find(".//datasource")
	expected := `<datasource name="federated.1" caption="Sales"> (line 4)`
	if got := ds.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
