package icons

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestExtract_DefaultViewBox(t *testing.T) {
	doc, err := Decode([]byte(`{"icons":[{"tags":["home"],"paths":["M0 0"]}]}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := Extract([]ExportDocument{doc})
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != "if-home" {
		t.Errorf("Name = %q, want %q", got[0].Name, "if-home")
	}
	if !slices.Equal(got[0].Paths, []string{"M0 0"}) {
		t.Errorf("Paths = %v, want [M0 0]", got[0].Paths)
	}
	if got[0].ViewBox != 1024 {
		t.Errorf("ViewBox = %d, want 1024", got[0].ViewBox)
	}
}

func TestExtract_JSONShape(t *testing.T) {
	got := Extract([]ExportDocument{{Icons: []ExportIcon{{Tags: []string{"home"}, Paths: []string{"M0 0"}}}}})

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"name":"if-home","paths":["M0 0"],"viewBox":1024}]`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestExtract_SkipsIncompleteEntries(t *testing.T) {
	doc, err := Decode([]byte(`{
		"height": 512,
		"icons": [
			{"tags":[],"paths":["M1 1"]},
			{"paths":["M2 2"]},
			{"tags":["nopaths"],"paths":[]},
			{"tags":["noPathsKey"]},
			{"tags":["star","favorite"],"paths":["M3 3","M4 4"]}
		]
	}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := Extract([]ExportDocument{doc})
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(got), got)
	}
	if got[0].Name != "if-star" {
		t.Errorf("Name = %q, want %q (first tag only)", got[0].Name, "if-star")
	}
	if got[0].ViewBox != 512 {
		t.Errorf("ViewBox = %d, want 512", got[0].ViewBox)
	}
	if len(got[0].Paths) != 2 {
		t.Errorf("Paths = %v, want 2 paths", got[0].Paths)
	}
}

func TestExtract_MultipleDocumentsKeepOrder(t *testing.T) {
	h := 16.0
	docs := []ExportDocument{
		{Icons: []ExportIcon{{Tags: []string{"b"}, Paths: []string{"p"}}}},
		{Height: &h, Icons: []ExportIcon{{Tags: []string{"a"}, Paths: []string{"p"}}, {Tags: []string{"a"}, Paths: []string{"q"}}}},
	}

	got := Extract(docs)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// Colliding names are kept as separate records.
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	if !slices.Equal(names, []string{"if-b", "if-a", "if-a"}) {
		t.Errorf("names = %v", names)
	}
	if got[0].ViewBox != 1024 || got[1].ViewBox != 16 {
		t.Errorf("viewBoxes = %d, %d; want 1024, 16", got[0].ViewBox, got[1].ViewBox)
	}
}

func TestNewExtractor_CustomSettings(t *testing.T) {
	x := NewExtractor("ic-", 24)
	got := x.Document(ExportDocument{Icons: []ExportIcon{{Tags: []string{"cog"}, Paths: []string{"M0"}}}})
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != "ic-cog" || got[0].ViewBox != 24 {
		t.Errorf("record = %+v, want ic-cog/24", got[0])
	}
}

func TestNewExtractor_Defaults(t *testing.T) {
	x := NewExtractor("", 0)
	if x.prefix != DefaultPrefix {
		t.Errorf("prefix = %q, want %q", x.prefix, DefaultPrefix)
	}
	if x.viewBox != DefaultViewBox {
		t.Errorf("viewBox = %d, want %d", x.viewBox, DefaultViewBox)
	}
}

func TestExtractBytes(t *testing.T) {
	x := NewExtractor(DefaultPrefix, DefaultViewBox)

	tests := []struct {
		name        string
		data        string
		wantSkipped bool
		wantCount   int
	}{
		{"valid", `{"icons":[{"tags":["a"],"paths":["M0"]}]}`, false, 1},
		{"no icons key", `{"height":32}`, false, 0},
		{"truncated", `{"icons":[`, true, 0},
		{"array root", `[1,2,3]`, true, 0},
		{"icons not a list", `{"icons":"nope"}`, true, 0},
		{"empty file", ``, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := x.ExtractBytes("input.json", []byte(tt.data))
			if res.Skipped() != tt.wantSkipped {
				t.Errorf("Skipped() = %v, want %v (err=%v)", res.Skipped(), tt.wantSkipped, res.Err)
			}
			if len(res.Records) != tt.wantCount {
				t.Errorf("len(Records) = %d, want %d", len(res.Records), tt.wantCount)
			}
			if res.Source != "input.json" {
				t.Errorf("Source = %q, want input.json", res.Source)
			}
		})
	}
}
