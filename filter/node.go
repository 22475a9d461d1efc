package filter

import (
	"context"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pipeline"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该物品就会被过滤掉；输出保持输入顺序。
type FilterNode struct {
	Filters []Filter

	// FailOpen 为 true 时过滤器出错视为保留；默认出错即过滤（规则无法判定的记录不推荐）
	FailOpen bool
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil || item.Listing == nil {
			continue
		}
		if n.shouldFilter(ctx, rctx, item) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (n *FilterNode) shouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) bool {
	for _, f := range n.Filters {
		ok, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			if n.FailOpen {
				continue
			}
			return true
		}
		if ok {
			return true
		}
	}
	return false
}
