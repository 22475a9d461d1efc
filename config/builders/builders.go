// Package builders 注册内置 Node 的配置构建逻辑，在入口处匿名导入即可生效。
package builders

import (
	"fmt"

	"github.com/rushteam/tripkit/config"
	"github.com/rushteam/tripkit/filter"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/pkg/conv"
	"github.com/rushteam/tripkit/rank"
	"github.com/rushteam/tripkit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rank.min_price", BuildMinPriceNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildFilterNode 构建过滤节点，配置示例：
//
//	filters:
//	  - type: place
//	  - type: days
//	  - type: budget
//	  - type: expr
//	    expr: 'listing.name.startsWith("Closed")'
//	fail_open: false
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "place":
			filters = append(filters, &filter.PlaceFilter{})
		case "days":
			filters = append(filters, &filter.DaysFilter{})
		case "budget":
			filters = append(filters, &filter.BudgetFilter{})
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""))
			if err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{
		Filters:  filters,
		FailOpen: conv.ConfigGet(cfg, "fail_open", false),
	}, nil
}

func BuildMinPriceNode(map[string]interface{}) (pipeline.Node, error) {
	return &rank.MinPriceNode{}, nil
}

// BuildTopNNode 构建截断节点；n 缺省或 <= 0 时使用请求中的 top_n。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
