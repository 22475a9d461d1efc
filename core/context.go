package core

import "context"

// HotelQuery 是酒店推荐的请求参数，每个请求构造一次，用完即弃。
type HotelQuery struct {
	Place          string  `json:"place"`
	Days           int     `json:"days"`
	MaxPricePerDay float64 `json:"max_price_per_day"`
	TopN           int     `json:"top_n"`
}

// RecommendContext 承载请求级信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	RequestID string
	Scene     string

	// Query 是本次酒店推荐的约束条件，Filter / TopN 节点从这里读取
	Query HotelQuery

	// Params 请求级扩展参数，CEL 规则中可通过 rctx.params 访问
	Params map[string]any
}

type requestIDKey struct{}

// ContextWithRequestID 把请求 ID 写入 context，供下游日志与 RecommendContext 使用。
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext 读取请求 ID，不存在时返回空串。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
