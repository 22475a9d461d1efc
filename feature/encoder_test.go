package feature

import (
	"strings"
	"testing"
)

func TestFlightEncoder_Encode(t *testing.T) {
	schema := DefaultFlightSchema()
	enc := NewFlightEncoder(schema)

	q := FlightQuery{
		Origin:      "Natal (RN)",
		Destination: "Recife (PE)",
		FlightType:  "premium",
		Agency:      "Rainbow",
		Month:       5,
		Day:         10,
		Year:        2024,
	}
	vec := enc.Encode(q)

	if len(vec) != schema.Len() {
		t.Fatalf("len(vec) = %d, want %d", len(vec), schema.Len())
	}

	want := map[string]float64{
		"from_Natal (RN)":         1,
		"destination_Recife (PE)": 1,
		"flightType_premium":      1,
		"agency_Rainbow":          1,
		"month":                   5,
		"day":                     10,
		"year":                    2024,
	}
	for i, col := range schema.FeatureColumns {
		if got := vec[i]; got != want[col] {
			t.Errorf("%s = %v, want %v", col, got, want[col])
		}
	}
}

func TestFlightEncoder_OneHotPerGroup(t *testing.T) {
	schema := DefaultFlightSchema()
	enc := NewFlightEncoder(schema)
	prefixes := []string{PrefixOrigin, PrefixDestination, PrefixFlightType, PrefixAgency}

	for _, origin := range schema.Categories(PrefixOrigin) {
		for _, dest := range schema.Categories(PrefixDestination) {
			for _, ft := range schema.Categories(PrefixFlightType) {
				for _, agency := range schema.Categories(PrefixAgency) {
					vec := enc.Encode(FlightQuery{
						Origin: origin, Destination: dest, FlightType: ft, Agency: agency,
						Month: 1, Day: 1, Year: 2023,
					})
					ones := make(map[string]int)
					for i, col := range schema.FeatureColumns {
						for _, p := range prefixes {
							if strings.HasPrefix(col, p) {
								switch vec[i] {
								case 1:
									ones[p]++
								case 0:
								default:
									t.Fatalf("%s = %v, want 0 or 1", col, vec[i])
								}
							}
						}
					}
					for _, p := range prefixes {
						if ones[p] != 1 {
							t.Fatalf("group %s has %d ones for %s/%s/%s/%s, want 1", p, ones[p], origin, dest, ft, agency)
						}
					}
				}
			}
		}
	}
}

func TestFlightEncoder_UnknownCategory(t *testing.T) {
	tests := []struct {
		name        string
		query       FlightQuery
		zeroPrefix  string
		wantUnknown []string
	}{
		{
			name:        "unknown origin",
			query:       FlightQuery{Origin: "Lisbon", Destination: "Recife (PE)", FlightType: "economic", Agency: "CloudFy"},
			zeroPrefix:  PrefixOrigin,
			wantUnknown: []string{"from_Lisbon"},
		},
		{
			name:        "unknown agency",
			query:       FlightQuery{Origin: "Natal (RN)", Destination: "Recife (PE)", FlightType: "economic", Agency: "SkyHigh"},
			zeroPrefix:  PrefixAgency,
			wantUnknown: []string{"agency_SkyHigh"},
		},
		{
			name:        "case matters",
			query:       FlightQuery{Origin: "Natal (RN)", Destination: "Recife (PE)", FlightType: "Premium", Agency: "Rainbow"},
			zeroPrefix:  PrefixFlightType,
			wantUnknown: []string{"flightType_Premium"},
		},
	}

	schema := DefaultFlightSchema()
	enc := NewFlightEncoder(schema)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := enc.Encode(tt.query)
			for i, col := range schema.FeatureColumns {
				if strings.HasPrefix(col, tt.zeroPrefix) && vec[i] != 0 {
					t.Errorf("%s = %v, want 0", col, vec[i])
				}
			}
			unknown := enc.UnknownCategories(tt.query)
			if len(unknown) != len(tt.wantUnknown) || unknown[0] != tt.wantUnknown[0] {
				t.Errorf("UnknownCategories() = %v, want %v", unknown, tt.wantUnknown)
			}
		})
	}
}

func TestFlightEncoder_NumericNotValidated(t *testing.T) {
	schema := DefaultFlightSchema()
	vec := NewFlightEncoder(schema).Encode(FlightQuery{Month: 13, Day: 0, Year: 1999})

	for col, want := range map[string]float64{"month": 13, "day": 0, "year": 1999} {
		i, _ := schema.Index(col)
		if vec[i] != want {
			t.Errorf("%s = %v, want %v", col, vec[i], want)
		}
	}
}
