package htmltable

import (
	"encoding/json"
	"testing"
)

func TestRecord_KeepsFirstInsertionOrder(t *testing.T) {
	var r Row
	r.Set("b", "1")
	r.Set("a", "2")
	r.Set("b", "3")

	keys := r.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("unexpected keys %q", keys)
	}
	if r.Value("b") != "3" {
		t.Fatalf("expected overwritten value, got %q", r.Value("b"))
	}
	if _, ok := r.Get("c"); ok {
		t.Fatal("unexpected key c")
	}
}

func TestAssemble_ShortRowsAreNotPadded(t *testing.T) {
	rows := Assemble([][]string{{"1", "2", "3"}, {"4"}, {"5", "6", "7", "8"}}, []string{"a", "*b", "c"})

	assertRows(t, rows, []Row{
		NewRow("a", "1", "*b", "2", "c", "3"),
		NewRow("a", "4"),
		NewRow("a", "5", "*b", "6", "c", "7"),
	}, "assembled")
	if rows[1].Has("*b") || rows[1].Len() != 1 {
		t.Fatalf("short row was padded: %v", rows[1].Map())
	}
}

func TestRecord_MarshalJSONInOrder(t *testing.T) {
	b, err := json.Marshal([]Row{NewRow("z", "1", "a", "x\"y")})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `[{"z":"1","a":"x\"y"}]`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}
}

func TestColumns_FirstAppearance(t *testing.T) {
	cols := Columns([]Row{NewRow("a", "1"), NewRow("b", "2", "a", "3"), NewRow("c", "4")})
	if len(cols) != 3 || cols[0] != "a" || cols[1] != "b" || cols[2] != "c" {
		t.Fatalf("unexpected columns %q", cols)
	}
}
