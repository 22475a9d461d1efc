package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
	"github.com/rushteam/tripkit/hotel"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		hotels []hotel.Result
	}{
		{name: "with hotels", hotels: []hotel.Result{{Name: "B", Price: 95}, {Name: "Hôtel A", Price: 120}}},
		{name: "no hotels", hotels: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, Trip{
				Flight: feature.FlightQuery{
					Origin: "Natal (RN)", Destination: "Recife (PE)", FlightType: "premium",
					Agency: "Rainbow", Month: 5, Day: 10, Year: 2024,
				},
				FlightPrice: 745.23,
				Hotel:       core.HotelQuery{Place: "Paris", Days: 3, MaxPricePerDay: 150, TopN: 5},
				Hotels:      tt.hotels,
				GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Errorf("output does not start with %%PDF-: %q", buf.Bytes()[:min(8, buf.Len())])
			}
		})
	}
}
