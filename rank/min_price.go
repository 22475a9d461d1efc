package rank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/pkg/utils"
)

// MinPriceNode 按酒店名称聚合，每个名称只保留价格最低的一条记录，然后按价格升序排序。
// - Score 设置为组内最低价
// - 价格相同的组保持首次出现的顺序（稳定排序），保证结果确定
// - 写入 labels：group_size（组内记录数）
type MinPriceNode struct{}

func (n *MinPriceNode) Name() string        { return "rank.min_price" }
func (n *MinPriceNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *MinPriceNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	pos := make(map[string]int, len(items))
	sizes := make(map[string]int, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Listing == nil {
			continue
		}
		name := it.Listing.Name
		sizes[name]++
		i, ok := pos[name]
		if !ok {
			pos[name] = len(out)
			out = append(out, it)
			continue
		}
		// 替换组代表但保留组首次出现的位置
		if it.Listing.Price < out[i].Listing.Price {
			out[i] = it
		}
	}

	for _, it := range out {
		it.Score = it.Listing.Price
		it.PutLabel("group_size", utils.Label{Value: strconv.Itoa(sizes[it.Listing.Name]), Source: "rank"})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out, nil
}
