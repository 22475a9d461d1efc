package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/tripkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境，定义变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("listing", cel.DynType),
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次，可被多个 goroutine 并发 Eval。
//
// 表达式语法（CEL 标准语法）：
//   - 记录字段：listing.place == "Paris" / listing.days == 2 / listing.price <= 150.0
//   - 字符串：listing.name.startsWith("Ibis") / listing.name.contains("Hostel")
//   - 请求参数：listing.price > rctx.query.max_price_per_day * 0.5
//   - 标签：label.recall_source == "place_index"
//   - 逻辑：listing.place == "Paris" && listing.price < 50.0
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。空表达式返回错误。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式
func (p *Program) Expr() string { return p.expr }

// Eval 对单个 Item 执行表达式，返回布尔结果。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 返回错误，规则中应先用 has() 判断
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	listing := map[string]interface{}{}
	labels := map[string]interface{}{}
	itemMap := map[string]interface{}{}
	if item != nil {
		if l := item.Listing; l != nil {
			listing = map[string]interface{}{
				"place": l.Place,
				"days":  l.Days,
				"price": l.Price,
				"name":  l.Name,
			}
		}
		for k, v := range item.Labels {
			labels[k] = v.Value
		}
		itemMap = map[string]interface{}{
			"id":    item.ID,
			"score": item.Score,
		}
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		params := rctx.Params
		if params == nil {
			params = map[string]any{}
		}
		rctxMap = map[string]interface{}{
			"request_id": rctx.RequestID,
			"scene":      rctx.Scene,
			"query": map[string]interface{}{
				"place":             rctx.Query.Place,
				"days":              rctx.Query.Days,
				"max_price_per_day": rctx.Query.MaxPricePerDay,
				"top_n":             rctx.Query.TopN,
			},
			"params": params,
		}
	}

	return map[string]interface{}{
		"listing": listing,
		"item":    itemMap,
		"label":   labels,
		"rctx":    rctxMap,
	}
}
