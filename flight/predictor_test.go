package flight

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
)

type recordingModel struct {
	price float64
	err   error
	got   []float64
	calls int
}

func (m *recordingModel) Name() string { return "recording" }

func (m *recordingModel) Predict(_ context.Context, vector []float64) (float64, error) {
	m.calls++
	m.got = vector
	return m.price, m.err
}

type failingScaler struct{}

func (failingScaler) Transform(*feature.Schema, []float64) ([]float64, error) {
	return nil, errors.New("scaler not fitted")
}

var natalToRecife = feature.FlightQuery{
	Origin:      "Natal (RN)",
	Destination: "Recife (PE)",
	FlightType:  "premium",
	Agency:      "Rainbow",
	Month:       5,
	Day:         10,
	Year:        2024,
}

func TestPredictor_PredictFlightPrice(t *testing.T) {
	schema := feature.DefaultFlightSchema()
	scaler := feature.FeatureScaler{"year": {Mean: 2024, Std: 1}}
	m := &recordingModel{price: 931.57}

	p := NewPredictor(schema, scaler, m)
	got, err := p.PredictFlightPrice(context.Background(), natalToRecife)
	if err != nil {
		t.Fatalf("PredictFlightPrice() error = %v", err)
	}
	if got != 931.57 {
		t.Errorf("PredictFlightPrice() = %v, want 931.57", got)
	}

	// 模型收到的是标准化后的向量
	yearIdx, _ := schema.Index("year")
	monthIdx, _ := schema.Index("month")
	if m.got[yearIdx] != 0 {
		t.Errorf("scaled year = %v, want 0", m.got[yearIdx])
	}
	if m.got[monthIdx] != 5 {
		t.Errorf("month = %v, want 5 (not in scaler)", m.got[monthIdx])
	}
}

func TestPredictor_InferenceFailed(t *testing.T) {
	schema := feature.DefaultFlightSchema()
	boom := errors.New("model crashed")

	tests := []struct {
		name   string
		scaler Scaler
		model  *recordingModel
		cause  error
	}{
		{name: "model error", model: &recordingModel{err: boom}, cause: boom},
		{name: "scaler error", scaler: failingScaler{}, model: &recordingModel{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPredictor(schema, tt.scaler, tt.model)
			_, err := p.PredictFlightPrice(context.Background(), natalToRecife)
			if !core.IsInferenceFailed(err) {
				t.Fatalf("error = %v, want INFERENCE_FAILED", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("error = %v, want wrapping %v", err, tt.cause)
			}
		})
	}
}

func TestPredictor_UnknownCategory(t *testing.T) {
	schema := feature.DefaultFlightSchema()
	q := natalToRecife
	q.Agency = "Unknown Air"

	lenient := NewPredictor(schema, nil, &recordingModel{price: 1})
	if _, err := lenient.PredictFlightPrice(context.Background(), q); err != nil {
		t.Fatalf("lenient PredictFlightPrice() error = %v", err)
	}

	m := &recordingModel{price: 1}
	strict := NewPredictor(schema, nil, m, WithStrictCategories(true))
	_, err := strict.PredictFlightPrice(context.Background(), q)
	if !core.IsUnknownCategory(err) {
		t.Fatalf("strict error = %v, want UNKNOWN_CATEGORY", err)
	}
	if m.calls != 0 {
		t.Errorf("model called %d times in strict mode, want 0", m.calls)
	}
}
