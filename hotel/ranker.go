// Package hotel 提供酒店推荐：按城市、天数、每日预算过滤目录，每家酒店取最低价后升序截取 Top-N。
package hotel

import (
	"context"
	"log/slog"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/filter"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/rank"
	"github.com/rushteam/tripkit/recall"
	"github.com/rushteam/tripkit/rerank"
)

// Scene 是酒店推荐的场景名，写入 RecommendContext.Scene
const Scene = "hotel"

// Result 是一条推荐结果：酒店名与其最低每日价格。
type Result struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog 是 Ranker 需要的目录能力，catalog.Catalog 实现了它。
type Catalog interface {
	recall.ListingProvider
	Places() []string
}

// Ranker 基于 Pipeline 的酒店推荐器，构建后只读，可并发使用。
type Ranker struct {
	catalog  Catalog
	pipeline *pipeline.Pipeline
	rules    []filter.Filter
	logger   *slog.Logger
}

// Option 配置 Ranker
type Option func(*Ranker)

// WithPipeline 使用自定义 Pipeline 替换默认链路（通常来自 YAML 配置）。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(r *Ranker) {
		r.pipeline = p
	}
}

// WithRules 在默认链路的过滤阶段追加规则（如 CEL 下架规则）。
// 使用 WithPipeline 时不生效。
func WithRules(rules ...filter.Filter) Option {
	return func(r *Ranker) {
		r.rules = append(r.rules, rules...)
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) {
		r.logger = logger
	}
}

// NewRanker 创建 Ranker。
func NewRanker(c Catalog, opts ...Option) *Ranker {
	r := &Ranker{
		catalog: c,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.pipeline == nil {
		r.pipeline = DefaultPipeline(c, r.rules...)
	}
	return r
}

// DefaultPipeline 返回默认链路：
//
//	recall.catalog -> filter(place, days, budget, rules...) -> rank.min_price -> rerank.topn
func DefaultPipeline(provider recall.ListingProvider, rules ...filter.Filter) *pipeline.Pipeline {
	filters := []filter.Filter{&filter.PlaceFilter{}, &filter.DaysFilter{}, &filter.BudgetFilter{}}
	filters = append(filters, rules...)
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Catalog{Provider: provider},
			&filter.FilterNode{Filters: filters},
			&rank.MinPriceNode{},
			&rerank.TopNNode{},
		},
	}
}

// Places 返回目录中所有城市（去重、排序）。
func (r *Ranker) Places() []string {
	return r.catalog.Places()
}

// Recommend 返回满足条件的酒店，按价格升序，最多 q.TopN 条。
// 没有匹配时返回空切片；Pipeline 出错时记录日志并返回空切片，不向调用方返回错误。
func (r *Ranker) Recommend(ctx context.Context, q core.HotelQuery) []Result {
	if q.TopN <= 0 {
		return []Result{}
	}
	rctx := &core.RecommendContext{
		RequestID: core.RequestIDFromContext(ctx),
		Scene:     Scene,
		Query:     q,
	}
	items, err := r.pipeline.Run(ctx, rctx, nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "hotel pipeline failed",
			"request_id", rctx.RequestID, "place", q.Place, "days", q.Days, "error", err)
		return []Result{}
	}
	return toResults(items, q.TopN)
}

// Recommend 是无状态的函数形式，语义与 Ranker.Recommend 相同，目录无需预先校验。
func Recommend(listings []core.Listing, q core.HotelQuery) []Result {
	if q.TopN <= 0 {
		return []Result{}
	}
	provider := make(listingSlice, 0, len(listings))
	for i := range listings {
		provider = append(provider, &listings[i])
	}
	items, err := DefaultPipeline(provider).Run(context.Background(), &core.RecommendContext{Scene: Scene, Query: q}, nil)
	if err != nil {
		return []Result{}
	}
	return toResults(items, q.TopN)
}

func toResults(items []*core.Item, topN int) []Result {
	if len(items) > topN {
		items = items[:topN]
	}
	out := make([]Result, 0, len(items))
	for _, it := range items {
		if it == nil || it.Listing == nil {
			continue
		}
		out = append(out, Result{Name: it.Listing.Name, Price: it.Listing.Price})
	}
	return out
}

type listingSlice []*core.Listing

func (s listingSlice) Listings() []*core.Listing { return s }
