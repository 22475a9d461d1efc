package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/pkg/utils"
)

// ListingProvider 提供只读的酒店目录。
type ListingProvider interface {
	Listings() []*core.Listing
}

// PlaceIndex 是可选扩展：按城市直接取出目录子集，避免扫描全表。
// 返回的顺序必须与目录原始顺序一致（排序的并列规则依赖它）。
type PlaceIndex interface {
	ListingsIn(place string) []*core.Listing
}

// Catalog 是目录召回源：把目录记录转换为 Item 交给后续 Filter / Rank 节点。
// - 如果 Provider 实现了 PlaceIndex，只召回 rctx.Query.Place 对应的记录
// - 否则召回全部记录
// Item 顺序与目录顺序一致，Item.ID 为其在召回结果中的序号。
type Catalog struct {
	Provider ListingProvider
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，忽略上游 items
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if r.Provider == nil {
		return nil, nil
	}

	var listings []*core.Listing
	source := "full_scan"
	if idx, ok := r.Provider.(PlaceIndex); ok && rctx != nil {
		listings = idx.ListingsIn(rctx.Query.Place)
		source = "place_index"
	} else {
		listings = r.Provider.Listings()
	}

	out := make([]*core.Item, 0, len(listings))
	for i, l := range listings {
		it := core.NewItem(strconv.Itoa(i), l)
		it.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
