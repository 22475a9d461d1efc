package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/tripkit/core"
)

func TestTopNNode(t *testing.T) {
	in := []*core.Item{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	tests := []struct {
		name      string
		n         int
		queryTopN int
		want      int
	}{
		{name: "fixed n", n: 2, want: 2},
		{name: "fixed n overrides query", n: 1, queryTopN: 3, want: 1},
		{name: "from query", queryTopN: 2, want: 2},
		{name: "larger than items", queryTopN: 10, want: 3},
		{name: "zero", want: 0},
		{name: "negative", queryTopN: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			rctx := &core.RecommendContext{Query: core.HotelQuery{TopN: tt.queryTopN}}
			got, err := node.Process(context.Background(), rctx, in)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Process() returned %d items, want %d", len(got), tt.want)
			}
			for i := range got {
				if got[i] != in[i] {
					t.Errorf("item[%d] = %s, want %s", i, got[i].ID, in[i].ID)
				}
			}
		})
	}
}
