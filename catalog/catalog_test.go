package catalog

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/store"
)

func TestNew(t *testing.T) {
	c, err := New([]core.Listing{
		{Place: "Paris", Days: 3, Price: 120, Name: "A"},
		{Place: "Rome", Days: 2, Price: 80, Name: "B"},
		{Place: "Paris", Days: 2, Price: 95, Name: "C"},
		{Place: "Berlin", Days: 1, Price: 0, Name: "D"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
	if got := strings.Join(c.Places(), ","); got != "Berlin,Paris,Rome" {
		t.Errorf("Places() = %s", got)
	}
	paris := c.ListingsIn("Paris")
	if len(paris) != 2 || paris[0].Name != "A" || paris[1].Name != "C" {
		t.Errorf("ListingsIn(Paris) = %v", paris)
	}
	if paris[0] != c.Listings()[0] {
		t.Error("ListingsIn should share pointers with Listings")
	}
	if len(c.ListingsIn("Tokyo")) != 0 {
		t.Error("ListingsIn(Tokyo) should be empty")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		listing core.Listing
	}{
		{"empty place", core.Listing{Place: " ", Days: 1, Price: 1, Name: "A"}},
		{"empty name", core.Listing{Place: "Paris", Days: 1, Price: 1}},
		{"zero days", core.Listing{Place: "Paris", Days: 0, Price: 1, Name: "A"}},
		{"negative price", core.Listing{Place: "Paris", Days: 1, Price: -1, Name: "A"}},
		{"nan price", core.Listing{Place: "Paris", Days: 1, Price: math.NaN(), Name: "A"}},
		{"inf price", core.Listing{Place: "Paris", Days: 1, Price: math.Inf(1), Name: "A"}},
		{"negative inf price", core.Listing{Place: "Paris", Days: 1, Price: math.Inf(-1), Name: "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]core.Listing{tt.listing})
			if !core.IsInvalidInput(err) {
				t.Errorf("New() error = %v, want invalid input", err)
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	data := "name, price, place, days, rating\n" +
		"A,120.5,Paris,3,4.1\n" +
		"\"Hotel, B\",95,Paris,3,3.9\n"
	listings, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	want := []core.Listing{
		{Place: "Paris", Days: 3, Price: 120.5, Name: "A"},
		{Place: "Paris", Days: 3, Price: 95, Name: "Hotel, B"},
	}
	if len(listings) != len(want) {
		t.Fatalf("ParseCSV() returned %d listings, want %d", len(listings), len(want))
	}
	for i := range want {
		if listings[i] != want[i] {
			t.Errorf("listing[%d] = %+v, want %+v", i, listings[i], want[i])
		}
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"missing column", "place,days,name\nParis,3,A\n"},
		{"bad days", "place,days,price,name\nParis,x,1,A\n"},
		{"bad price", "place,days,price,name\nParis,3,cheap,A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV(strings.NewReader(tt.data)); err == nil {
				t.Error("ParseCSV() expected error")
			}
		})
	}
}

func TestLoad_RejectsNaNPriceFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotels.csv")
	data := "place,days,price,name\nParis,2,NaN,Ghost\nParis,2,95,B\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(context.Background(), &FileSource{Path: path})
	if !core.IsInvalidInput(err) {
		t.Fatalf("Load() error = %v, want invalid input", err)
	}
	if !strings.Contains(err.Error(), "finite") {
		t.Errorf("Load() error = %v, want mention of finite price", err)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "hotels.csv")
	jsonPath := filepath.Join(dir, "hotels.json")
	os.WriteFile(csvPath, []byte("place,days,price,name\nParis,3,120,A\n"), 0o644)
	os.WriteFile(jsonPath, []byte(`[{"place":"Rome","days":2,"price":80,"name":"B"}]`), 0o644)

	for _, path := range []string{csvPath, jsonPath} {
		c, err := Load(context.Background(), &FileSource{Path: path})
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if c.Len() != 1 {
			t.Errorf("Load(%s) Len() = %d, want 1", path, c.Len())
		}
	}

	if _, err := Load(context.Background(), &FileSource{Path: filepath.Join(dir, "missing.csv")}); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestStoreSource(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	src := &StoreSource{Store: ms}
	ctx := context.Background()

	if _, err := src.Load(ctx); !core.IsNotFound(err) {
		t.Fatalf("Load() on empty store error = %v, want not found", err)
	}

	listings := []core.Listing{
		{Place: "Paris", Days: 3, Price: 120, Name: "A"},
		{Place: "Paris", Days: 3, Price: 95, Name: "B"},
	}
	if err := src.Save(ctx, listings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	c, err := Load(ctx, src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.ListingsIn("Paris"); len(got) != 2 || got[1].Name != "B" {
		t.Errorf("ListingsIn(Paris) = %v", got)
	}

	if err := src.Save(ctx, []core.Listing{{Place: "Paris"}}); !core.IsInvalidInput(err) {
		t.Errorf("Save(invalid) error = %v, want invalid input", err)
	}
}

func TestPostgresSource(t *testing.T) {
	dsn := os.Getenv("TRIPKIT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TRIPKIT_TEST_POSTGRES_DSN not set")
	}
	src, err := NewPostgresSource(dsn, "")
	if err != nil {
		t.Fatalf("NewPostgresSource() error = %v", err)
	}
	defer src.Close()
	if _, err := Load(context.Background(), src); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestNewPostgresSource_InvalidTable(t *testing.T) {
	_, err := NewPostgresSource("postgres://localhost/db", "hotels; DROP TABLE x")
	if !core.IsInvalidInput(err) {
		t.Errorf("NewPostgresSource() error = %v, want invalid input", err)
	}
}
