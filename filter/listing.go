package filter

import (
	"context"

	"github.com/rushteam/tripkit/core"
)

// PlaceFilter 过滤掉城市与查询不一致的记录（精确匹配，区分大小写）。
type PlaceFilter struct{}

func (f *PlaceFilter) Name() string { return "filter.place" }

func (f *PlaceFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	return item.Listing.Place != rctx.Query.Place, nil
}

// DaysFilter 过滤掉住宿天数与查询不一致的记录。
// 天数是精确匹配而不是“至多”：3 晚的报价永远不会出现在 2 晚的查询里，即使更便宜。
type DaysFilter struct{}

func (f *DaysFilter) Name() string { return "filter.days" }

func (f *DaysFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	return item.Listing.Days != rctx.Query.Days, nil
}

// BudgetFilter 只保留 price <= MaxPricePerDay 的记录。
// 比较任一侧为 NaN 时条件不成立，记录被过滤。
type BudgetFilter struct{}

func (f *BudgetFilter) Name() string { return "filter.budget" }

func (f *BudgetFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	return !(item.Listing.Price <= rctx.Query.MaxPricePerDay), nil
}
