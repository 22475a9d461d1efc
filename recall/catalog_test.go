package recall

import (
	"context"
	"testing"

	"github.com/rushteam/tripkit/core"
)

type sliceProvider []*core.Listing

func (p sliceProvider) Listings() []*core.Listing { return p }

type indexedProvider struct {
	sliceProvider
}

func (p indexedProvider) ListingsIn(place string) []*core.Listing {
	var out []*core.Listing
	for _, l := range p.sliceProvider {
		if l.Place == place {
			out = append(out, l)
		}
	}
	return out
}

func TestCatalog(t *testing.T) {
	listings := sliceProvider{
		{Place: "Paris", Days: 3, Price: 120, Name: "A"},
		{Place: "Rome", Days: 3, Price: 80, Name: "B"},
		{Place: "Paris", Days: 2, Price: 95, Name: "C"},
	}
	rctx := &core.RecommendContext{Query: core.HotelQuery{Place: "Paris"}}

	tests := []struct {
		name       string
		provider   ListingProvider
		wantNames  []string
		wantSource string
	}{
		{name: "full scan", provider: listings, wantNames: []string{"A", "B", "C"}, wantSource: "full_scan"},
		{name: "place index", provider: indexedProvider{listings}, wantNames: []string{"A", "C"}, wantSource: "place_index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Catalog{Provider: tt.provider}
			got, err := r.Process(context.Background(), rctx, nil)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("Process() returned %d items, want %d", len(got), len(tt.wantNames))
			}
			for i, it := range got {
				if it.Listing.Name != tt.wantNames[i] {
					t.Errorf("item[%d] = %s, want %s", i, it.Listing.Name, tt.wantNames[i])
				}
				if it.Score != it.Listing.Price {
					t.Errorf("item[%d] score = %v, want price %v", i, it.Score, it.Listing.Price)
				}
				if it.Labels["recall_source"].Value != tt.wantSource {
					t.Errorf("item[%d] recall_source = %q, want %q", i, it.Labels["recall_source"].Value, tt.wantSource)
				}
			}
		})
	}
}

func TestCatalog_NilProvider(t *testing.T) {
	r := &Catalog{}
	got, err := r.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("Process() = %v, %v", got, err)
	}
}
