package htmltable

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---- Parse() tests ----

func TestParse_ListsTablesWithIndexAndAttrs(t *testing.T) {
	src := `
<!doctype html><html><body>
  <table id="t1" name="alpha">
    <tr><th>A</th><th>B</th></tr>
    <tr><td>1</td><td>2</td></tr>
  </table>

  <table id="empty"></table>

  <div>
    <table id="t2">
      <tr><th>X</th><th>Y</th><th>Z</th></tr>
      <tr><td>p</td><td>q</td><td>r</td></tr>
    </table>
  </div>
</body></html>`

	tables, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	if tables[0].Index != 1 || tables[0].ID != "t1" || tables[0].Name != "alpha" {
		t.Fatalf("unexpected table[0] metadata: %+v", tables[0])
	}
	// the empty table still counts for the index
	if tables[1].Index != 3 || tables[1].ID != "t2" || tables[1].Name != "" {
		t.Fatalf("unexpected table[1] metadata: %+v", tables[1])
	}
	if !strings.HasPrefix(tables[1].HTML, `<table id="t2">`) {
		t.Fatalf("unexpected table[1] markup: %q", tables[1].HTML)
	}
}

func TestParse_TableMarkupConvertsToRows(t *testing.T) {
	src := `<table id="t1"><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>
<table id="t2"><tr><th>X</th></tr><tr><td>p</td></tr><tr><td>q</td></tr></table>`

	tables, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	rows, err := ToDataFrame(tables[1].HTML, nil)
	if err != nil {
		t.Fatalf("ToDataFrame error: %v", err)
	}
	assertRows(t, rows, []Row{NewRow("X", "p"), NewRow("X", "q")}, "table t2")
}

func TestParse_ErrorFromReader(t *testing.T) {
	r := &errReader{err: errors.New("boom")}
	_, err := Parse(r)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

type errReader struct{ err error }

func (e *errReader) Read(p []byte) (int, error) { return 0, e.err }

// ---- ParseSelector / Apply tests ----

func TestParseSelector_EmptyAndWhitespace(t *testing.T) {
	sel, err := ParseSelector("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sel.Empty() {
		t.Fatalf("expected empty selector, got %+v", sel)
	}
}

func TestParseSelector_MixedIndexesAndNames(t *testing.T) {
	sel, err := ParseSelector(" 1,foo,  2 ,bar,, ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sel.Indexes[1]; !ok {
		t.Fatalf("expected index 1 selected")
	}
	if _, ok := sel.Indexes[2]; !ok {
		t.Fatalf("expected index 2 selected")
	}
	if _, ok := sel.Names["foo"]; !ok {
		t.Fatalf("expected name foo selected")
	}
	if _, ok := sel.Names["bar"]; !ok {
		t.Fatalf("expected name bar selected")
	}
}

func TestParseSelector_InvalidIndex(t *testing.T) {
	for _, in := range []string{"0", "-1", " 0,foo"} {
		_, err := ParseSelector(in)
		if err == nil {
			t.Fatalf("expected error for %q, got nil", in)
		}
	}
}

func TestSelectorApply_SelectsByIndexOrIDOrName(t *testing.T) {
	tables := []Table{
		{Index: 1, ID: "t1", Name: "alpha"},
		{Index: 2, ID: "t2", Name: "beta"},
		{Index: 3, ID: "", Name: "gamma"},
		{Index: 4, ID: "", Name: ""},
	}

	sel := Selector{
		Indexes: map[int]struct{}{2: {}},
		Names:   map[string]struct{}{"t1": {}, "gamma": {}},
	}
	got := sel.Apply(tables)

	if len(got) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(got))
	}
	if got[0].Index != 1 { // matched by ID t1
		t.Fatalf("expected first match Index=1, got %d", got[0].Index)
	}
	if got[1].Index != 2 { // matched by index 2
		t.Fatalf("expected second match Index=2, got %d", got[1].Index)
	}
	if got[2].Index != 3 { // matched by name gamma
		t.Fatalf("expected third match Index=3, got %d", got[2].Index)
	}
}

func TestSelectorApply_EmptySelectorReturnsInput(t *testing.T) {
	tables := []Table{{Index: 1}, {Index: 2}}
	sel := Selector{Indexes: map[int]struct{}{}, Names: map[string]struct{}{}}

	got := sel.Apply(tables)
	if len(got) != len(tables) {
		t.Fatalf("expected unchanged length, got %d", len(got))
	}
	for i := range tables {
		if got[i].Index != tables[i].Index {
			t.Fatalf("unexpected element at %d", i)
		}
	}
}

// ---- CSVEncoder tests ----

func TestCSVEncoder_Encode_HeaderAndBlankLineBetweenFrames(t *testing.T) {
	a := []Row{NewRow("a", "1", "b", "2"), NewRow("a", "3")}
	b := []Row{NewRow("x", "p")}

	var buf bytes.Buffer
	enc := NewCSVEncoder()
	if err := enc.Encode(&buf, a, b); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	// short rows are padded with empty fields
	want := "a,b\n1,2\n3,\n\nx\np\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected CSV output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestCSVEncoder_Encode_CustomDelimiterNoHeader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewCSVEncoder()
	enc.Comma = ';'
	enc.NoHeader = true
	if err := enc.Encode(&buf, []Row{NewRow("a", "1", "b", "2")}); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	want := "1;2\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected CSV output: %q want %q", buf.String(), want)
	}
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestCSVEncoder_Encode_PropagatesWriterError(t *testing.T) {
	enc := NewCSVEncoder()
	err := enc.Encode(errWriter{}, []Row{NewRow("a", "b"), NewRow("a", "d")})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ---- test helpers ----

func assertRows(t *testing.T, got, want []Row, label string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s: row count mismatch: got %d want %d\ngot=%v\nwant=%v", label, len(got), len(want), got, want)
	}
	for i := range want {
		gk, wk := got[i].Keys(), want[i].Keys()
		if strings.Join(gk, "\x00") != strings.Join(wk, "\x00") {
			t.Fatalf("%s: row[%d] keys mismatch: got %q want %q", label, i, gk, wk)
		}
		for _, k := range wk {
			if got[i].Value(k) != want[i].Value(k) {
				t.Fatalf("%s: mismatch at [%d][%q]: got %q want %q", label, i, k, got[i].Value(k), want[i].Value(k))
			}
		}
	}
}
