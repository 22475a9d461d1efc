package core

import "github.com/rushteam/tripkit/pkg/utils"

// Listing 是酒店目录中的一条记录：某酒店在某城市、某住宿天数下的每日价格。
// 目录加载后只读，多个请求可以并发共享同一个 *Listing。
type Listing struct {
	Place string  `json:"place"`
	Days  int     `json:"days"`
	Price float64 `json:"price"`
	Name  string  `json:"name"`
}

// Item 是推荐链路中的统一承载结构：目录记录、分数、标签。
// Score 用于排序决策（酒店链路中即价格，越小越靠前）；Labels 用于解释与观测。
type Item struct {
	ID      string
	Score   float64
	Listing *Listing
	Labels  map[string]utils.Label
}

// NewItem 用目录记录创建 Item，Score 初始化为记录价格。
func NewItem(id string, l *Listing) *Item {
	it := &Item{
		ID:      id,
		Listing: l,
		Labels:  make(map[string]utils.Label),
	}
	if l != nil {
		it.Score = l.Price
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
