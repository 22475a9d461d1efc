package feature

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFlightSchema(t *testing.T) {
	s := DefaultFlightSchema()
	if s.Len() != 27 {
		t.Fatalf("Len() = %d, want 27", s.Len())
	}
	// 数值列顺序为 month, year, day
	for col, want := range map[string]int{"month": 24, "year": 25, "day": 26} {
		if got, ok := s.Index(col); !ok || got != want {
			t.Errorf("Index(%q) = %d, %v, want %d", col, got, ok, want)
		}
	}
	if got := s.Categories(PrefixFlightType); len(got) != 3 || got[0] != "economic" || got[2] != "premium" {
		t.Errorf("Categories(flightType_) = %v", got)
	}
	if got := s.Categories(PrefixOrigin); len(got) != 9 || got[0] != "Florianopolis (SC)" {
		t.Errorf("Categories(from_) = %v", got)
	}
}

func TestNewSchema_Validation(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr bool
	}{
		{name: "valid", columns: []string{"from_A", "month", "day", "year"}},
		{name: "empty", columns: nil, wantErr: true},
		{name: "duplicate", columns: []string{"from_A", "from_A", "month", "day", "year"}, wantErr: true},
		{name: "blank column", columns: []string{" ", "month", "day", "year"}, wantErr: true},
		{name: "missing year", columns: []string{"from_A", "month", "day"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.columns, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSchema() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSchemaFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feature_meta.json")
	data := `{"feature_columns": ["agency_X", "day", "month", "year"], "model_version": "v2"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSchemaFromFile(path)
	if err != nil {
		t.Fatalf("LoadSchemaFromFile() error = %v", err)
	}
	if s.ModelVersion != "v2" || s.Len() != 4 {
		t.Errorf("schema = %+v", s)
	}
	if i, _ := s.Index("day"); i != 1 {
		t.Errorf("Index(day) = %d, want 1", i)
	}
}
