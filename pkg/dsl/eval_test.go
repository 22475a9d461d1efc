package dsl

import (
	"testing"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pkg/utils"
)

func TestProgram_Eval(t *testing.T) {
	item := core.NewItem("0", &core.Listing{Place: "Paris", Days: 2, Price: 120, Name: "Hotel A"})
	item.PutLabel("recall_source", utils.Label{Value: "place_index", Source: "recall"})
	rctx := &core.RecommendContext{
		Query:  core.HotelQuery{Place: "Paris", Days: 2, MaxPricePerDay: 150, TopN: 5},
		Params: map[string]any{"vip": true},
	}

	tests := []struct {
		expr string
		want bool
	}{
		{expr: `listing.place == "Paris"`, want: true},
		{expr: `listing.days == 3`, want: false},
		{expr: `listing.price <= 150.0`, want: true},
		{expr: `listing.name.startsWith("Hotel")`, want: true},
		{expr: `listing.price > rctx.query.max_price_per_day * 0.5`, want: true},
		{expr: `rctx.query.top_n == 5 && rctx.params.vip`, want: true},
		{expr: `label.recall_source == "full_scan"`, want: false},
		{expr: `item.score == 120.0`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := prg.Eval(item, rctx)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, expr := range []string{"", "listing.price <", "1 +"} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("Compile(%q) expected error", expr)
		}
	}
}

func TestProgram_EvalNonBoolean(t *testing.T) {
	prg, err := Compile(`listing.price * 2.0`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	item := core.NewItem("0", &core.Listing{Price: 10})
	if _, err := prg.Eval(item, &core.RecommendContext{}); err == nil {
		t.Error("Eval() expected error for non-boolean result")
	}
}
