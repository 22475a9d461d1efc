package rerank

import (
	"context"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个物品。
// 通常在排序（Rank）节点之后使用，用于限制返回结果数量。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.MinPriceNode{},     // 排序
//	        &rerank.TopNNode{N: 5},   // 截取 Top 5
//	    },
//	}
type TopNNode struct {
	// N 要保留的物品数量（Top N）
	// 如果 N <= 0，则使用请求中的 rctx.Query.TopN
	// 请求中的 TopN 也 <= 0 时返回空结果
	// 如果 N > len(items)，则返回所有物品
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.Query.TopN
	}
	if limit <= 0 {
		return []*core.Item{}, nil
	}

	// 如果物品数量小于等于 N，直接返回
	if len(items) <= limit {
		return items, nil
	}

	// 截取前 N 个物品
	return items[:limit], nil
}
