package feature

import (
	"math"
	"testing"
)

func TestFeatureScaler_Transform(t *testing.T) {
	schema, _ := NewSchema([]string{"from_A", "month", "day", "year"}, "")
	scaler := FeatureScaler{
		"month": {Mean: 6, Std: 2},
		"year":  {Mean: 2024, Std: 0}, // std <= 0 保持原值
	}

	got, err := scaler.Transform(schema, []float64{1, 10, 15, 2025})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	want := []float64{1, 2, 15, 2025}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFeatureScaler_TransformLengthMismatch(t *testing.T) {
	schema := DefaultFlightSchema()
	if _, err := (FeatureScaler{}).Transform(schema, []float64{1, 2}); err == nil {
		t.Fatal("Transform() expected error for length mismatch")
	}
}

func TestParseScaler(t *testing.T) {
	s, err := ParseScaler([]byte(`{"day": {"mean": 15.5, "std": 8.8}}`))
	if err != nil {
		t.Fatalf("ParseScaler() error = %v", err)
	}
	if s["day"].Mean != 15.5 || s["day"].Std != 8.8 {
		t.Errorf("day = %+v", s["day"])
	}
	if _, err := ParseScaler([]byte(`[1,2]`)); err == nil {
		t.Error("ParseScaler() expected error for array input")
	}
}
